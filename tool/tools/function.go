// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"maps"
	"reflect"
	"runtime"
	"strings"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/tool"
	"github.com/flowstack/agentkit-go/types"
)

// Function represents a user-defined function that can be called with a context.
type Function func(ctx context.Context, args map[string]any) (any, error)

// FunctionTool represents a tool that wraps a user-defined function.
type FunctionTool struct {
	*tool.Tool

	fn          Function
	declaration *genai.FunctionDeclaration
}

var _ types.Tool = (*FunctionTool)(nil)

// NewFunctionTool returns the new FunctionTool with the given name, description and function.
func NewFunctionTool(fn Function) *FunctionTool {
	funcName := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if idx := strings.LastIndex(funcName, "."); idx > -1 {
		funcName = funcName[idx+1:]
	}

	return &FunctionTool{
		Tool: tool.NewTool(funcName, "", false),
		fn:   fn,
	}
}

// NewNamedFunctionTool returns a new FunctionTool registered under an
// explicit name rather than one derived from fn's reflection data. Use this
// for tools built from an inline closure, where the reflected name (e.g.
// "func1") is neither stable nor meaningful to the model.
func NewNamedFunctionTool(name, description string, fn Function) *FunctionTool {
	return &FunctionTool{
		Tool: tool.NewTool(name, description, false),
		fn:   fn,
	}
}

// Name implements [types.Tool].
func (t *FunctionTool) Name() string {
	return t.Tool.Name()
}

// Description implements [types.Tool].
func (t *FunctionTool) Description() string {
	return t.Tool.Description()
}

// IsLongRunning implements [types.Tool].
func (t *FunctionTool) IsLongRunning() bool {
	return t.Tool.IsLongRunning()
}

// GetDeclaration implements [types.Tool].
//
// The declaration is always built under t.Name(), not a name re-derived from
// the function value's reflection data, so that a tool registered under an
// explicit name (see [NewNamedFunctionTool]) stays callable: the LLM can only
// invoke what the declaration names, and request.ToolMap dispatches by
// t.Name().
func (t *FunctionTool) GetDeclaration() *genai.FunctionDeclaration {
	funcDecl, err := buildFunctionDeclaration(t.fn, WithName(t.Name()), WithDescription(t.Description()))
	if err != nil {
		panic(err)
	}
	return funcDecl
}

// Run implements [types.Tool].
func (t *FunctionTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	argsToCall := maps.Clone(args)

	return t.fn(ctx, argsToCall)
}

// ProcessLLMRequest implements [types.Tool].
func (t *FunctionTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	request.AppendTools(t)
	return nil
}
