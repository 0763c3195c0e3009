// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agentkit is a code-first Go toolkit for building, evaluating, and
// deploying AI agents with flexibility and control.
package agentkit

// Version is the version of AgentKit.
var Version = "v0.0.0"
