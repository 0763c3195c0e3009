// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides concrete tool implementations for extending agent
// capabilities.
//
// # Available Tools
//
//   - FunctionTool: wraps an arbitrary Go function as a tool, with the
//     declaration derived from the function via reflection
//     (see automatic_function_calling_util.go) or supplied explicitly.
//   - ExampleTool: injects few-shot examples into the system instruction,
//     sourced from a static slice, a [example.Provider] such as the Vertex AI
//     example store, or a dotprompt file (see [NewPromptExampleTool]).
//   - DockerExecTool: runs a shell command inside a short-lived container.
//     Declared long-running: the model receives an immediate placeholder
//     response and the container's stdout and exit code arrive later as an
//     out-of-band function response.
//   - TranscribeTool: transcribes an audio payload with Cloud Speech.
//
// # Function Tool Creation
//
// Create tools from Go functions with automatic schema generation:
//
//	weather := tools.NewNamedFunctionTool("get_weather",
//		"Returns the current weather for a city.",
//		func(ctx context.Context, args map[string]any) (any, error) {
//			return lookupWeather(args["city"].(string))
//		})
//
//	agent, err := agent.NewLLMAgent(ctx, "assistant",
//		agent.WithTools(weather),
//	)
//
// The declaration handed to the model is always built under the tool's
// registered name, so tools built from inline closures stay callable.
//
// # Long-Running Tools
//
// A tool reporting IsLongRunning() == true participates in the flow's
// long-running protocol: the flow records the call id in the event's
// long-running ids, the immediate placeholder response terminates the
// current turn, and the real result resumes the conversation when the
// caller appends it as a user message.
//
// # Schema Utilities
//
// gemini_schema_util.go converts JSON Schema declarations into the genai
// schema shape, normalizing type unions, nullable markers, and property
// ordering along the way. It is shared by every tool that declares a
// parameters schema.
package tools
