// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package llmprocessor mirrors the llmflow package's flow constructors for
// callers that cannot import llmflow directly.
//
// The agent package needs to hand each LLMAgent a SingleFlow or AutoFlow,
// but llmflow itself imports the agent package (its processors introspect
// *agent.LLMAgent), so a direct import would cycle. This package declares
// layout-compatible flow types and binds their behavior to the llmflow
// implementations with go:linkname, giving the agent package a
// dependency-free handle on the real flows:
//
//	flow := llmprocessor.NewSingleFlow() // runs llmflow.(*LLMFlow).Run
//
// The LLMFlow struct here must stay field-for-field compatible with
// llmflow.LLMFlow; the blank fields exist only to pin that layout.
//
// The processor pipeline contract itself (LLMRequestProcessor,
// LLMResponseProcessor) lives in the types package, and the stock
// processor sets are documented in the llmflow package.
package llmprocessor
