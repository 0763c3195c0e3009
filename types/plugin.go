// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"log/slog"

	"google.golang.org/genai"
)

// Plugin hook signatures.
//
// Every hook is optional; a [Plugin] only sets the fields it cares about.
// A hook returning a non-nil value (or, for OnUserMessage/OnEvent, a
// non-nil replacement) short-circuits the chain: see [PluginChain].

// OnUserMessageCallback may rewrite the incoming user content before it is
// turned into a session event.
type OnUserMessageCallback func(ictx *InvocationContext, userContent *genai.Content) (*genai.Content, error)

// BeforeRunCallback runs once per turn, after the user event is committed.
// A non-nil content short-circuits the entire turn: the runner synthesizes
// an event from the root agent carrying that content instead of driving
// the agent tree.
type BeforeRunCallback func(ictx *InvocationContext) (*genai.Content, error)

// AfterRunCallback runs once per turn after the agent loop drains. Its
// return value is ignored; it exists for cleanup/metrics side effects only.
type AfterRunCallback func(ictx *InvocationContext) error

// OnEventCallback may rewrite an event before it is committed to the
// session and yielded to the caller.
type OnEventCallback func(ictx *InvocationContext, event *Event) (*Event, error)

// PluginBeforeAgentCallback runs before an agent's body executes. A non-nil
// content short-circuits the agent body.
type PluginBeforeAgentCallback func(cctx *CallbackContext) (*genai.Content, error)

// PluginAfterAgentCallback runs after an agent's body executes and may
// replace its output.
type PluginAfterAgentCallback func(cctx *CallbackContext) (*genai.Content, error)

// PluginBeforeModelCallback runs before the model call. A non-nil response
// bypasses the model call entirely.
type PluginBeforeModelCallback func(cctx *CallbackContext, request *LLMRequest) (*LLMResponse, error)

// PluginAfterModelCallback runs after the model call and may replace the
// response.
type PluginAfterModelCallback func(cctx *CallbackContext, response *LLMResponse) (*LLMResponse, error)

// OnModelErrorCallback may recover a model-call failure by returning a
// non-nil replacement response.
type OnModelErrorCallback func(cctx *CallbackContext, request *LLMRequest, modelErr error) (*LLMResponse, error)

// PluginBeforeToolCallback runs before a tool call. A non-nil result
// bypasses the tool call entirely.
type PluginBeforeToolCallback func(tctx *ToolContext, tool Tool, args map[string]any) (map[string]any, error)

// PluginAfterToolCallback runs after a tool call and may replace its
// result.
type PluginAfterToolCallback func(tctx *ToolContext, tool Tool, args, result map[string]any) (map[string]any, error)

// OnToolErrorCallback may recover a tool-call failure by returning a
// non-nil replacement result.
type OnToolErrorCallback func(tctx *ToolContext, tool Tool, args map[string]any, toolErr error) (map[string]any, error)

// Plugin is a named bundle of optional hooks at the runner, agent, model,
// and tool layers. Plugins are assembled into a [PluginChain] and run in
// chain order at each hook point.
type Plugin struct {
	Name string

	OnUserMessage OnUserMessageCallback
	BeforeRun     BeforeRunCallback
	AfterRun      AfterRunCallback
	OnEvent       OnEventCallback

	BeforeAgent PluginBeforeAgentCallback
	AfterAgent  PluginAfterAgentCallback

	BeforeModel  PluginBeforeModelCallback
	AfterModel   PluginAfterModelCallback
	OnModelError OnModelErrorCallback

	BeforeTool  PluginBeforeToolCallback
	AfterTool   PluginAfterToolCallback
	OnToolError OnToolErrorCallback
}

// PluginChain runs an ordered list of [Plugin] at each hook point.
//
// Chain semantics (per hook): iterate plugins in order, skipping those with
// the hook unset; the first plugin whose callback returns a non-nil value
// short-circuits and that value is returned. AfterRun ignores return
// values; it is a notification fan-out only. A nil *PluginChain is a valid
// no-op chain so every call site can invoke it unconditionally.
type PluginChain struct {
	plugins []*Plugin
	logger  *slog.Logger
}

// NewPluginChain builds a [PluginChain] from plugins, rejecting duplicate
// names.
func NewPluginChain(plugins []*Plugin) (*PluginChain, error) {
	seen := make(map[string]bool, len(plugins))
	var dups []string
	for _, p := range plugins {
		if seen[p.Name] {
			dups = append(dups, p.Name)
			continue
		}
		seen[p.Name] = true
	}
	if len(dups) > 0 {
		return nil, NewDuplicatePluginsError(dups...)
	}

	return &PluginChain{
		plugins: plugins,
		logger:  slog.Default().With("component", "plugin_chain"),
	}, nil
}

// OnUserMessage runs the on_user_message chain.
func (c *PluginChain) OnUserMessage(ictx *InvocationContext, userContent *genai.Content) (*genai.Content, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.OnUserMessage == nil {
			continue
		}
		content, err := p.OnUserMessage(ictx, userContent)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return content, nil
		}
	}
	return nil, nil
}

// BeforeRun runs the before_run chain.
func (c *PluginChain) BeforeRun(ictx *InvocationContext) (*genai.Content, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.BeforeRun == nil {
			continue
		}
		content, err := p.BeforeRun(ictx)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return content, nil
		}
	}
	return nil, nil
}

// AfterRun runs the after_run chain. Notify-only: errors are logged, not
// propagated, and no plugin can halt another from running.
func (c *PluginChain) AfterRun(ictx *InvocationContext) {
	if c == nil {
		return
	}
	for _, p := range c.plugins {
		if p.AfterRun == nil {
			continue
		}
		if err := p.AfterRun(ictx); err != nil {
			c.logger.Warn("after_run plugin callback failed", slog.String("plugin", p.Name), slog.Any("error", err))
		}
	}
}

// OnEvent runs the on_event chain.
func (c *PluginChain) OnEvent(ictx *InvocationContext, event *Event) (*Event, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.OnEvent == nil {
			continue
		}
		modified, err := p.OnEvent(ictx, event)
		if err != nil {
			return nil, err
		}
		if modified != nil {
			return modified, nil
		}
	}
	return nil, nil
}

// BeforeAgent runs the before_agent chain.
func (c *PluginChain) BeforeAgent(cctx *CallbackContext) (*genai.Content, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.BeforeAgent == nil {
			continue
		}
		content, err := p.BeforeAgent(cctx)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return content, nil
		}
	}
	return nil, nil
}

// AfterAgent runs the after_agent chain.
func (c *PluginChain) AfterAgent(cctx *CallbackContext) (*genai.Content, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.AfterAgent == nil {
			continue
		}
		content, err := p.AfterAgent(cctx)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return content, nil
		}
	}
	return nil, nil
}

// BeforeModel runs the before_model chain. A non-nil response bypasses the
// model call.
func (c *PluginChain) BeforeModel(cctx *CallbackContext, request *LLMRequest) (*LLMResponse, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.BeforeModel == nil {
			continue
		}
		response, err := p.BeforeModel(cctx, request)
		if err != nil {
			return nil, err
		}
		if response != nil {
			return response, nil
		}
	}
	return nil, nil
}

// AfterModel runs the after_model chain.
func (c *PluginChain) AfterModel(cctx *CallbackContext, response *LLMResponse) (*LLMResponse, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.AfterModel == nil {
			continue
		}
		replacement, err := p.AfterModel(cctx, response)
		if err != nil {
			return nil, err
		}
		if replacement != nil {
			return replacement, nil
		}
	}
	return nil, nil
}

// OnModelError runs the on_model_error chain, giving plugins a chance to
// recover from a model-call failure.
func (c *PluginChain) OnModelError(cctx *CallbackContext, request *LLMRequest, modelErr error) (*LLMResponse, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.OnModelError == nil {
			continue
		}
		response, err := p.OnModelError(cctx, request, modelErr)
		if err != nil {
			return nil, err
		}
		if response != nil {
			return response, nil
		}
	}
	return nil, nil
}

// BeforeTool runs the before_tool chain. A non-nil result bypasses the
// tool call.
func (c *PluginChain) BeforeTool(tctx *ToolContext, tool Tool, args map[string]any) (map[string]any, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.BeforeTool == nil {
			continue
		}
		result, err := p.BeforeTool(tctx, tool, args)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

// AfterTool runs the after_tool chain.
func (c *PluginChain) AfterTool(tctx *ToolContext, tool Tool, args, result map[string]any) (map[string]any, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.AfterTool == nil {
			continue
		}
		replacement, err := p.AfterTool(tctx, tool, args, result)
		if err != nil {
			return nil, err
		}
		if replacement != nil {
			return replacement, nil
		}
	}
	return nil, nil
}

// OnToolError runs the on_tool_error chain, giving plugins a chance to
// recover from a tool-call failure.
func (c *PluginChain) OnToolError(tctx *ToolContext, tool Tool, args map[string]any, toolErr error) (map[string]any, error) {
	if c == nil {
		return nil, nil
	}
	for _, p := range c.plugins {
		if p.OnToolError == nil {
			continue
		}
		result, err := p.OnToolError(tctx, tool, args, toolErr)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}
