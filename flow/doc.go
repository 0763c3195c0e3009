// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package flow provides the execution pipelines that drive LLM agents.
//
// A flow owns the loop between an agent and its model: it assembles the
// request, calls the model, converts responses into events, dispatches any
// function calls the model asked for, and decides when the turn is over.
// Agents delegate their Execute step to a flow so that orchestration
// (sequential, parallel, loop, transfer) and model plumbing stay separate.
//
// # Flow Types
//
// Two flows cover the two agent shapes:
//
//   - llmflow.SingleFlow: an agent plus its tools. No sub-agents; the flow
//     loops model call -> tool fan-out until a final response.
//   - llmflow.AutoFlow: SingleFlow plus agent transfer. A synthetic
//     transfer_to_agent tool is offered to the model and a requested
//     transfer hands the invocation to the target agent's own flow.
//
// # Processor Pipeline
//
// Each flow is parameterized by ordered request and response processors
// (see the llmprocessor package for the pipeline contract):
//
//	flow := llmflow.NewSingleFlow()
//	// request:  Basic -> Instructions -> Identity -> Content -> NLPlanning
//	// response: NLPlanning
//
// Request processors mutate the outgoing request (generation config, system
// instruction, conversation history projection, planning preamble); response
// processors post-process the model's output before it becomes an event.
//
// # Event Discipline
//
// Flows yield events lazily. The caller (normally runner.Runner) commits
// each non-partial event to the session before the next one is produced, so
// downstream observers never see an event the session does not contain.
// Model errors, an unknown transfer target and the iteration ceiling are
// materialized as error events carrying an error code and message, keeping
// them ordered with the rest of the stream; errors from request and response
// processors are passed through the iterator's error value.
package flow
