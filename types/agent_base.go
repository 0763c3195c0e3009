// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

)

// BaseAgent represents the base agent.
type BaseAgent struct {
	*Config

	// delegate is the concrete agent embedding this BaseAgent. Go has no
	// virtual dispatch: when a concrete type overrides Execute/ExecuteLive,
	// calls made from within BaseAgent's own methods (Run, RunLive,
	// createInvocationContext) would otherwise still resolve to BaseAgent's
	// stub implementations. A concrete agent must call SetDelegate(self)
	// after construction so those calls reach the override instead.
	delegate Agent
}

var _ Agent = (*BaseAgent)(nil)

// SetDelegate registers the concrete agent that BaseAgent.Run/RunLive
// dispatch Execute/ExecuteLive calls to, and that the invocation context's
// Agent field is set to. Must be called once, right after construction, by
// any type that embeds *BaseAgent and overrides Execute or ExecuteLive.
func (a *BaseAgent) SetDelegate(delegate Agent) {
	a.delegate = delegate
}

// self returns the delegate if one was registered, or the BaseAgent itself.
func (a *BaseAgent) self() Agent {
	if a.delegate != nil {
		return a.delegate
	}
	return a
}

// AsLLMAgent implements [types.Agent].
func (a *BaseAgent) AsLLMAgent() (LLMAgent, bool) {
	return nil, false
}

// NewBaseAgent creates a new agent configuration with the given name.
func NewBaseAgent(name string, opts ...Option) *BaseAgent {
	base := &BaseAgent{
		Config: NewConfig(name),
	}
	for _, opt := range opts {
		opt.apply(base.Config)
	}

	for _, subAgent := range base.subAgents {
		if subAgent.ParentAgent() != nil {
			panic(fmt.Errorf("agent %s already has a parent agent, current parent: %s, trying to add: %s", subAgent.Name(), subAgent.ParentAgent().Name(), base.Name()))
		}
	}

	return base
}

// Name implements [Agent].
func (a *BaseAgent) Name() string {
	return a.Config.Name
}

// Description implements [Agent].
func (a *BaseAgent) Description() string {
	return a.Config.Description
}

// ParentAgent implements [types.Agent].
func (a *BaseAgent) ParentAgent() Agent {
	return a.parentAgent
}

// SubAgents implements [types.Agent].
func (a *BaseAgent) SubAgents() []Agent {
	return a.subAgents
}

// AddSubAgents appends sub-agents after construction. Agent types whose
// constructor applies functional options to an already-built *BaseAgent
// (rather than threading them through NewBaseAgent's own opts) call this to
// support a WithSubAgents-style option of their own.
func (a *BaseAgent) AddSubAgents(agents ...Agent) {
	a.subAgents = append(a.subAgents, agents...)
}

// BeforeAgentCallbacks implements [Agent].
func (a *BaseAgent) BeforeAgentCallbacks() []AgentCallback {
	return a.beforeAgentCallbacks
}

// AfterAgentCallbacks implements [Agent].
func (a *BaseAgent) AfterAgentCallbacks() []AgentCallback {
	return a.afterAgentCallbacks
}

// Run implements [Agent].
func (a *BaseAgent) Run(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		parentContext = a.createInvocationContext(parentContext)

		pluginEvent, err := a.handlePluginBeforeAgent(ctx, parentContext)
		if err != nil {
			yield(nil, err)
			return
		}
		if pluginEvent != nil {
			if !yield(pluginEvent, nil) {
				return
			}
			return
		}

		beforeEvent, err := a.handleBeforeAgentCallbacks(ctx, parentContext)
		if err != nil {
			yield(nil, err)
			return
		}
		if beforeEvent != nil {
			if !yield(beforeEvent, nil) {
				return
			}
			if parentContext.EndInvocation {
				return
			}
		}

		for event, err := range a.self().Execute(ctx, parentContext) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}

		if parentContext.EndInvocation {
			return
		}

		afterEvent, err := a.handleAfterAgentCallback(ctx, parentContext)
		if err != nil {
			yield(nil, err)
			return
		}
		if afterEvent != nil {
			if !yield(afterEvent, nil) {
				return
			}
		}

		pluginAfterEvent, err := a.handlePluginAfterAgent(ctx, parentContext)
		if err != nil {
			yield(nil, err)
			return
		}
		if pluginAfterEvent != nil {
			if !yield(pluginAfterEvent, nil) {
				return
			}
		}
	}
}

// handlePluginBeforeAgent runs the plugin chain's before_agent hook. A
// non-nil content short-circuits the agent body entirely.
func (a *BaseAgent) handlePluginBeforeAgent(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	content, err := ictx.Plugins.BeforeAgent(NewCallbackContext(ictx))
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	ictx.EndInvocation = true
	return NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(a.Config.Name).
		WithBranch(ictx.Branch).
		WithContent(content).
		WithActions(NewEventActions()), nil
}

// handlePluginAfterAgent runs the plugin chain's after_agent hook.
func (a *BaseAgent) handlePluginAfterAgent(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	content, err := ictx.Plugins.AfterAgent(NewCallbackContext(ictx))
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(a.Config.Name).
		WithBranch(ictx.Branch).
		WithContent(content).
		WithActions(NewEventActions()), nil
}

// RunLive implements [Agent].
func (a *BaseAgent) RunLive(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		parentContext = a.createInvocationContext(parentContext)

		for event, err := range a.self().ExecuteLive(ctx, parentContext) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// Execute implements [Agent].
func (a *BaseAgent) Execute(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		yield(nil, NotImplementedError("Execute for Base is not implemented"))
		return
	}
}

// ExecuteLive implements [Agent].
func (a *BaseAgent) ExecuteLive(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		yield(nil, NotImplementedError("ExecuteLive for Base is not implemented"))
		return
	}
}

// RootAgent implements [Agent].
func (a *BaseAgent) RootAgent() Agent {
	rootAgent := a.self()
	for {
		parentAgent := rootAgent.ParentAgent()
		if parentAgent == nil {
			break
		}
		rootAgent = parentAgent
	}

	return rootAgent
}

// FindAgent implements [Agent].
func (a *BaseAgent) FindAgent(name string) Agent {
	return a.findAgent(name)
}

// findAgent finds the agent with the given name in this agent and its descendants.
func (a *BaseAgent) findAgent(name string) Agent {
	if name == a.Config.Name {
		return a.self()
	}
	return a.FindSubAgent(name)
}

// FindSubAgent finds the agent with the given name in this agent's descendants.
func (a *BaseAgent) FindSubAgent(name string) Agent {
	for _, subAgent := range a.subAgents {
		if result := subAgent.FindAgent(name); result != nil {
			return result
		}
	}
	return nil
}

// createInvocationContext creates a new invocation context for this agent.
func (a *BaseAgent) createInvocationContext(parentContext *InvocationContext) *InvocationContext {
	parentContext.Agent = a.self()
	if parentContext.Branch != "" {
		parentContext.Branch += "." + a.Name()
	}
	return parentContext
}

// handleBeforeAgentCallback runs the beforeAgentCallbacks if it exists.
func (a *BaseAgent) handleBeforeAgentCallbacks(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	var event *Event

	if len(a.beforeAgentCallbacks) == 0 {
		return event, nil
	}

	callbackCtx := NewCallbackContext(ictx)
	for _, callbacks := range a.beforeAgentCallbacks {
		beforeAgentCallbackContent, err := callbacks(callbackCtx)
		if err != nil {
			a.logger.ErrorContext(ctx, "before callback error", slog.Any("error", err))
			return nil, err
		}
		if beforeAgentCallbackContent != nil {
			event = NewEvent().
				WithInvocationID(ictx.InvocationID).
				WithAuthor(a.Config.Name).
				WithBranch(ictx.Branch).
				WithContent(beforeAgentCallbackContent).
				WithActions(callbackCtx.EventActions())
			ictx.EndInvocation = true
			return event, nil
		}
	}

	if callbackCtx.State().HasDelta() {
		event = NewEvent().
			WithInvocationID(ictx.InvocationID).
			WithAuthor(a.Config.Name).
			WithBranch(ictx.Branch).
			WithActions(callbackCtx.EventActions())
	}

	return event, nil
}

// handleAfterAgentCallback runs the afterAgentCallbacks if it exists.
func (a *BaseAgent) handleAfterAgentCallback(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	var event *Event

	if len(a.afterAgentCallbacks) == 0 {
		return event, nil
	}

	callbackCtx := NewCallbackContext(ictx)
	for _, callbacks := range a.afterAgentCallbacks {
		afterAgentCallbackContent, err := callbacks(callbackCtx)
		if err != nil {
			a.logger.ErrorContext(ctx, "before callback error", slog.Any("error", err))
			return nil, err
		}
		if afterAgentCallbackContent != nil {
			event = NewEvent().
				WithAuthor(a.Config.Name).
				WithBranch(ictx.Branch).
				WithContent(afterAgentCallbackContent).
				WithActions(callbackCtx.EventActions())
			return event, nil
		}

		if callbackCtx.State().HasDelta() {
			event = NewEvent().
				WithInvocationID(ictx.InvocationID).
				WithAuthor(a.Config.Name).
				WithBranch(ictx.Branch).
				WithContent(afterAgentCallbackContent).
				WithActions(callbackCtx.EventActions())
		}
	}

	return event, nil
}
