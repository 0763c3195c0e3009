// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner drives a single turn of an agent tree against a user
// message, wiring together the session, artifact, and memory services and
// the runner-wide plugin chain around the agent's own [github.com/flowstack/agentkit-go/flow/llmflow.LLMFlow].
//
// A turn:
//
//  1. Resolves (or creates) the session named by appName/userID/sessionID.
//  2. Runs the on_user_message plugin hook, then commits the (possibly
//     rewritten) user message as a session event.
//  3. Runs the before_run plugin hook. A non-nil content short-circuits the
//     turn: the runner synthesizes a root-agent event from that content
//     instead of driving the agent tree.
//  4. Drives the root agent via [types.Agent.Run], committing each
//     non-partial event to the session (after the on_event plugin hook)
//     before yielding it to the caller.
//  5. Runs the after_run plugin hook for cleanup/metrics side effects.
//
// Agent-to-agent transfer and escalation are handled inside the flow layer
// itself (see llmflow's transfer-to-agent handling); the runner only ever
// drives the root agent.
package runner
