// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"iter"
	"os"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/types"
)

// VertexDefaultModel is the default model name for [VertexModel].
const VertexDefaultModel = "gemini-2.0-flash"

// VertexModel wraps [google.golang.org/genai]'s client configured against the
// Vertex AI backend rather than the Gemini Developer API, so it shares its
// request/response plumbing with [GenaiModel] but authenticates with
// application-default Google Cloud credentials and bills to a GCP project.
type VertexModel struct {
	modelName string
	client    *genai.Client
}

var _ types.Model = (*VertexModel)(nil)

// NewVertexModel creates a [VertexModel] for modelName against project and
// location, falling back to the GOOGLE_CLOUD_PROJECT and
// GOOGLE_CLOUD_LOCATION environment variables when empty.
func NewVertexModel(ctx context.Context, project, location, modelName string) (*VertexModel, error) {
	if modelName == "" {
		modelName = VertexDefaultModel
	}
	if project == "" {
		project = os.Getenv("GOOGLE_CLOUD_PROJECT")
		if project == "" {
			return nil, fmt.Errorf("%w: either project arg or %q environment variable must be set", types.ErrProviderUnavailable, "GOOGLE_CLOUD_PROJECT")
		}
	}
	if location == "" {
		location = os.Getenv("GOOGLE_CLOUD_LOCATION")
		if location == "" {
			location = "us-central1"
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create vertex ai client: %w", types.ErrProviderUnavailable, err)
	}

	return &VertexModel{modelName: modelName, client: client}, nil
}

// Name implements [types.Model].
func (m *VertexModel) Name() string { return m.modelName }

// SupportedModels implements [types.Model].
func (m *VertexModel) SupportedModels() []string {
	return []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	}
}

// Connect implements [types.Model].
func (m *VertexModel) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	return newGenaiConnection(ctx, m.modelName, m.client, request)
}

// GenerateContent implements [types.Model].
func (m *VertexModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	g := &GenaiModel{modelName: m.modelName, client: m.client}
	return g.GenerateContent(ctx, request)
}

// StreamGenerateContent implements [types.Model].
func (m *VertexModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	g := &GenaiModel{modelName: m.modelName, client: m.client}
	return g.StreamGenerateContent(ctx, request)
}
