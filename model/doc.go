// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model holds the conversation-role constants shared by the agent
// and flow packages, and the [types.Model] implementations for the supported
// providers: [GenaiModel] (Gemini), [AnthropicModel] (Claude) and
// [VertexModel] (Vertex AI). [Resolve] builds one of them from a
// [ResolveConfig]; an application may also implement [types.Model] itself.
package model
