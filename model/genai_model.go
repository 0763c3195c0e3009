// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"os"
	"runtime"
	"strings"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/pkg/logging"
	"github.com/flowstack/agentkit-go/types"
)

// GenaiDefaultModel is the default model name for [GenaiModel].
const GenaiDefaultModel = "gemini-2.0-flash"

// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
const EnvGoogleAPIKey = "GOOGLE_API_KEY"

// GenaiModel wraps [google.golang.org/genai]'s client, the model every
// content- and tool-declaration conversion in this module is already shaped
// around.
type GenaiModel struct {
	modelName string
	client    *genai.Client
}

var _ types.Model = (*GenaiModel)(nil)

// NewGenaiModel creates a [GenaiModel] for modelName using apiKey, falling
// back to [EnvGoogleAPIKey] when apiKey is empty.
func NewGenaiModel(ctx context.Context, apiKey, modelName string) (*GenaiModel, error) {
	if modelName == "" {
		modelName = GenaiDefaultModel
	}
	if apiKey == "" {
		apiKey = os.Getenv(EnvGoogleAPIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("%w: either apiKey or %q environment variable must be set", types.ErrProviderUnavailable, EnvGoogleAPIKey)
		}
	}

	cfg := &genai.ClientConfig{
		APIKey: apiKey,
		HTTPOptions: genai.HTTPOptions{
			Headers: make(http.Header),
		},
	}
	versionHeader := fmt.Sprintf("agentkit-go go/%s", runtime.Version())
	cfg.HTTPOptions.Headers.Set("x-goog-api-client", versionHeader)
	cfg.HTTPOptions.Headers.Set("user-agent", versionHeader)

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %w", types.ErrProviderUnavailable, err)
	}

	return &GenaiModel{modelName: modelName, client: client}, nil
}

// Name implements [types.Model].
func (m *GenaiModel) Name() string {
	return m.modelName
}

// SupportedModels implements [types.Model].
//
// See https://ai.google.dev/gemini-api/docs/models.
func (m *GenaiModel) SupportedModels() []string {
	return []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

// Connect implements [types.Model].
func (m *GenaiModel) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	return newGenaiConnection(ctx, m.modelName, m.client, request)
}

func (m *GenaiModel) appendUserContent(contents []*genai.Content) []*genai.Content {
	if len(contents) > 0 && contents[len(contents)-1].Role == genai.RoleUser {
		return contents
	}
	return append(contents, genai.NewContentFromText(
		"Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.",
		genai.RoleUser,
	))
}

// GenerateContent implements [types.Model].
func (m *GenaiModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	contents := m.appendUserContent(request.Contents)

	resp, err := m.client.Models.GenerateContent(ctx, m.modelName, contents, request.Config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	logging.FromContext(ctx).DebugContext(ctx, "genai response", "text", resp.Text())

	return types.NewLLMResponseFromGenerateContentResponse(resp), nil
}

// StreamGenerateContent implements [types.Model].
func (m *GenaiModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		contents := m.appendUserContent(request.Contents)
		stream := m.client.Models.GenerateContentStream(ctx, m.modelName, contents, request.Config)

		var buf strings.Builder
		for resp, err := range stream {
			if err != nil {
				yield(nil, err)
				return
			}
			if ctx.Err() != nil || resp == nil {
				return
			}

			llmResp := types.NewLLMResponseFromGenerateContentResponse(resp)
			if llmResp.Content != nil && len(llmResp.Content.Parts) > 0 && llmResp.Content.Parts[0].Text != "" {
				buf.WriteString(llmResp.Content.Parts[0].Text)
				llmResp.WithPartial(true)
			}
			if !yield(llmResp, nil) {
				return
			}
		}
	}
}
