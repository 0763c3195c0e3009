// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package llmflow implements the model/tool loop shared by every LLM agent.
//
// # LLMFlow
//
// LLMFlow runs a bounded loop of steps. One step is: run the request
// processors, run the before_model chain, call the model (unless a plugin
// short-circuited it), run the after_model chain and response processors,
// yield the model event, then fan out any function calls and yield the
// merged function-response event. The loop ends on a final response, an
// escalation, an agent transfer, an error, or the iteration ceiling
// (DefaultMaxIterations, overridable per run).
//
// # Request Processors
//
//   - BasicLlmRequestProcessor: model selection and generation config.
//   - InstructionsLlmRequestProcessor: agent and global instructions, with
//     {state} and {artifact.name} template interpolation.
//   - IdentityLlmRequestProcessor: tells the model who it is.
//   - ContentLLMRequestProcessor: projects session events into the request
//     contents, rewriting foreign-agent events into context messages.
//   - NLPlanningRequestProcessor: planner preamble; runs after contents so
//     planning sections can be marked as thoughts.
//   - AgentTransferLlmRequestProcessor (AutoFlow only): injects the
//     transfer_to_agent tool and the instructions describing the transfer
//     targets.
//
// # Response Processors
//
//   - NLPlanningResponseProcessor: splits planning sections out of the
//     response and stashes planner state in the callback context.
//
// # Tool Fan-Out
//
// HandleFunctionCalls dispatches every function call in a model response
// concurrently. Each call gets its own ToolContext keyed by the call id and
// runs before_tool -> tool -> after_tool with on_tool_error recovery; a
// failed call degrades to an {"error": message} function response. The
// per-call events are merged back in call order: conflicting state keys
// take the last writer by index with a warning, artifact deltas union,
// escalate and skip_summarization OR-reduce, and the first transfer target
// wins. A long-running call that returns no result gets a
// {"status": "pending"} placeholder response; the ids of long-running calls
// are recorded on the model-response event's LongRunningToolIDs.
//
// # Live Mode
//
// RunLive drives the same agent surface over a bidirectional model
// connection: a send task pumps the LiveRequestQueue into the connection
// while the receive loop converts streamed responses (including audio
// transcriptions) into events.
package llmflow
