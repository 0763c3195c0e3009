// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"iter"

	"github.com/flowstack/agentkit-go/internal/xiter"
	"github.com/flowstack/agentkit-go/types"
)

// RunFunc is the user-supplied closure a [CustomAgent] streams events from.
type RunFunc func(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error]

// CustomAgent wraps an arbitrary [RunFunc] so application code that needs
// logic no orchestration agent expresses (conditionals over session state,
// fan-out to non-agent subsystems, etc.) can still participate in the
// before/after-agent callback machinery and plugin chain that every other
// agent gets from [types.BaseAgent].
//
// The before/after short-circuit state machine lives entirely in
// [types.BaseAgent.Run]; CustomAgent only supplies the STREAM step.
type CustomAgent struct {
	base *types.BaseAgent

	runFn RunFunc
}

var _ types.Agent = (*CustomAgent)(nil)

// NewCustomAgent creates a [CustomAgent] named name that streams events from
// runFn. A nil runFn is valid for a BEFORE/AFTER-only agent whose entire
// contribution comes from its before/after callbacks.
func NewCustomAgent(name string, runFn RunFunc, opts ...types.Option) *CustomAgent {
	a := &CustomAgent{
		base:  types.NewBaseAgent(name, opts...),
		runFn: runFn,
	}
	a.base.SetDelegate(a)

	return a
}

// AsLLMAgent implements [types.Agent].
func (a *CustomAgent) AsLLMAgent() (types.LLMAgent, bool) {
	return nil, false
}

// Name implements [types.Agent].
func (a *CustomAgent) Name() string {
	return a.base.Name()
}

// Description implements [types.Agent].
func (a *CustomAgent) Description() string {
	return a.base.Description()
}

// ParentAgent implements [types.Agent].
func (a *CustomAgent) ParentAgent() types.Agent {
	return a.base.ParentAgent()
}

// SubAgents implements [types.Agent].
func (a *CustomAgent) SubAgents() []types.Agent {
	return a.base.SubAgents()
}

// BeforeAgentCallbacks implements [types.Agent].
func (a *CustomAgent) BeforeAgentCallbacks() []types.AgentCallback {
	return a.base.BeforeAgentCallbacks()
}

// AfterAgentCallbacks implements [types.Agent].
func (a *CustomAgent) AfterAgentCallbacks() []types.AgentCallback {
	return a.base.AfterAgentCallbacks()
}

// Execute implements [types.Agent]. This is the STREAM step of the
// before/stream/after state machine: each yielded event has its author
// defaulted to this agent's name if the closure left it unset.
func (a *CustomAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if a.runFn == nil {
			return
		}
		for event, err := range a.runFn(ctx, ictx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if event.Author == "" {
				event.Author = a.Name()
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// ExecuteLive implements [types.Agent].
func (a *CustomAgent) ExecuteLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return xiter.Error[types.Event](types.NotImplementedError("ExecuteLive not supported for CustomAgent"))
}

// Run implements [types.Agent].
func (a *CustomAgent) Run(ctx context.Context, parentContext *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return a.base.Run(ctx, parentContext)
}

// RunLive implements [types.Agent].
func (a *CustomAgent) RunLive(ctx context.Context, parentContext *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return a.base.RunLive(ctx, parentContext)
}

// RootAgent implements [types.Agent].
func (a *CustomAgent) RootAgent() types.Agent {
	return a.base.RootAgent()
}

// FindAgent implements [types.Agent].
func (a *CustomAgent) FindAgent(name string) types.Agent {
	return a.base.FindAgent(name)
}

// FindSubAgent implements [types.Agent].
func (a *CustomAgent) FindSubAgent(name string) types.Agent {
	return a.base.FindSubAgent(name)
}
