// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropic_bedrock "github.com/anthropics/anthropic-sdk-go/bedrock"
	anthropic_option "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	anthropic_vertex "github.com/anthropics/anthropic-sdk-go/vertex"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/pkg/logging"
	"github.com/flowstack/agentkit-go/types"
)

// ClaudeMode selects which backend serves an [AnthropicModel]'s requests.
type ClaudeMode int

const (
	// ClaudeModeAnthropic talks directly to the Anthropic API.
	ClaudeModeAnthropic ClaudeMode = iota

	// ClaudeModeVertexAI talks to Claude models served from Vertex AI.
	ClaudeModeVertexAI

	// ClaudeModeBedrock talks to Claude models served from AWS Bedrock.
	ClaudeModeBedrock
)

func detectClaudeDefaultModel(mode ClaudeMode) string {
	switch mode {
	case ClaudeModeAnthropic:
		return string(anthropic.ModelClaude3_5Sonnet20241022)
	case ClaudeModeVertexAI:
		return "claude-3-5-sonnet-v2@20241022"
	case ClaudeModeBedrock:
		return "anthropic.claude-3-5-sonnet-20241022-v2:0"
	default:
		return ""
	}
}

var genAIRoles = []string{genai.RoleModel, RoleAssistant}

func toClaudeRole(role string) anthropic.MessageParamRole {
	if slices.Contains(genAIRoles, role) {
		return anthropic.MessageParamRoleAssistant
	}
	return anthropic.MessageParamRoleUser
}

func partToMessageBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, error) {
	switch {
	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), nil

	case part.FunctionCall != nil:
		fc := part.FunctionCall
		if fc.Name == "" {
			return anthropic.ContentBlockParamUnion{}, errors.New("function call name is empty")
		}
		return anthropic.NewToolUseBlock(fc.ID, fc.Args, fc.Name), nil

	case part.FunctionResponse != nil:
		fr := part.FunctionResponse
		content, ok := fr.Response["result"].(string)
		if !ok {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("function response %q has no string result", fr.Name)
		}
		return anthropic.NewToolResultBlock(fr.ID, content, false), nil
	}

	return anthropic.ContentBlockParamUnion{}, fmt.Errorf("unsupported part type: %#v", part)
}

func contentToMessageParam(content *genai.Content) anthropic.MessageParam {
	msg := anthropic.MessageParam{
		Role:    toClaudeRole(content.Role),
		Content: make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts)),
	}
	for _, part := range content.Parts {
		block, err := partToMessageBlock(part)
		if err != nil {
			continue
		}
		msg.Content = append(msg.Content, block)
	}
	return msg
}

func contentBlockToPart(block anthropic.ContentBlockUnion) (*genai.Part, error) {
	switch b := block.AsAny().(type) {
	case anthropic.TextBlock:
		return genai.NewPartFromText(b.Text), nil

	case anthropic.ToolUseBlock:
		args := map[string]any{}
		_ = json.Unmarshal(b.Input, &args)
		part := genai.NewPartFromFunctionCall(b.Name, args)
		part.FunctionCall.ID = b.ID
		return part, nil

	default:
		return nil, fmt.Errorf("unsupported content block type %T", b)
	}
}

func funcDeclarationToToolParam(decl *genai.FunctionDeclaration) (anthropic.ToolUnionParam, error) {
	if decl.Name == "" {
		return anthropic.ToolUnionParam{}, errors.New("function declaration name is empty")
	}

	properties := make(map[string]*genai.Schema)
	if params := decl.Parameters; params != nil && params.Properties != nil {
		for k, v := range params.Properties {
			properties[k] = v
		}
	}
	inputSchema := anthropic.ToolInputSchemaParam{
		Type:       constant.ValueOf[constant.Object]().Default(),
		Properties: properties,
	}

	toolUnion := anthropic.ToolUnionParamOfTool(inputSchema, decl.Name)
	toolUnion.OfTool.Description = param.NewOpt(decl.Description)
	return toolUnion, nil
}

func buildMessageParams(modelName string, request *types.LLMRequest) (anthropic.MessageNewParams, error) {
	messages := make([]anthropic.MessageParam, 0, len(request.Contents))
	for _, content := range request.Contents {
		if content.Role == RoleSystem {
			continue
		}
		messages = append(messages, contentToMessageParam(content))
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		Messages:  messages,
		MaxTokens: 4096,
	}

	if config := request.Config; config != nil {
		if config.MaxOutputTokens > 0 {
			params.MaxTokens = int64(config.MaxOutputTokens)
		}
		if config.Temperature != nil {
			params.Temperature = anthropic.Float(float64(*config.Temperature))
		}
		if config.TopK != nil {
			params.TopK = anthropic.Int(int64(*config.TopK))
		}
		if config.TopP != nil {
			params.TopP = anthropic.Float(float64(*config.TopP))
		}
		if config.SystemInstruction != nil {
			for _, part := range config.SystemInstruction.Parts {
				params.System = append(params.System, anthropic.TextBlockParam{Text: part.Text})
			}
		}
		if len(config.Tools) > 0 && config.Tools[0].FunctionDeclarations != nil {
			tools := make([]anthropic.ToolUnionParam, 0, len(config.Tools[0].FunctionDeclarations))
			for _, decl := range config.Tools[0].FunctionDeclarations {
				toolUnion, err := funcDeclarationToToolParam(decl)
				if err != nil {
					return params, err
				}
				tools = append(tools, toolUnion)
			}
			params.Tools = tools
		}
	}

	if len(request.ToolMap) > 0 {
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{
				Type: constant.ValueOf[constant.Auto]().Default(),
			},
		}
	}

	return params, nil
}

func messageToLLMResponse(message *anthropic.Message) *types.LLMResponse {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, block := range message.Content {
		part, err := contentBlockToPart(block)
		if err != nil {
			continue
		}
		parts = append(parts, part)
	}

	return &types.LLMResponse{
		Content: &genai.Content{Role: genai.RoleModel, Parts: parts},
	}
}

// AnthropicModel wraps [github.com/anthropics/anthropic-sdk-go], serving Claude
// models from the Anthropic API, Vertex AI, or Bedrock depending on [ClaudeMode].
type AnthropicModel struct {
	modelName string
	client    anthropic.Client
}

var _ types.Model = (*AnthropicModel)(nil)

// NewAnthropicModel creates an [AnthropicModel] for modelName, falling back to
// a mode-appropriate default when modelName is empty.
func NewAnthropicModel(ctx context.Context, modelName string, mode ClaudeMode) (*AnthropicModel, error) {
	if modelName == "" {
		modelName = detectClaudeDefaultModel(mode)
	}

	var ropts []anthropic_option.RequestOption
	switch mode {
	case ClaudeModeAnthropic:
		ropts = append(ropts, anthropic.DefaultClientOptions()...)

	case ClaudeModeVertexAI:
		region := cmp.Or(os.Getenv("GOOGLE_CLOUD_LOCATION"), os.Getenv("GOOGLE_CLOUD_REGION"))
		if region == "" {
			return nil, fmt.Errorf("%w: %q or %q is required", types.ErrProviderUnavailable, "GOOGLE_CLOUD_LOCATION", "GOOGLE_CLOUD_REGION")
		}
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			return nil, fmt.Errorf("%w: %q is required", types.ErrProviderUnavailable, "GOOGLE_CLOUD_PROJECT")
		}
		ropts = append(ropts, anthropic_vertex.WithGoogleAuth(ctx, region, projectID, aiplatform.DefaultAuthScopes()...))

	case ClaudeModeBedrock:
		ropts = append(ropts, anthropic_bedrock.WithLoadDefaultConfig(ctx))

	default:
		return nil, fmt.Errorf("%w: unsupported claude mode %d", types.ErrProviderUnavailable, mode)
	}

	return &AnthropicModel{
		modelName: modelName,
		client:    anthropic.NewClient(ropts...),
	}, nil
}

// Name implements [types.Model].
func (m *AnthropicModel) Name() string { return m.modelName }

// SupportedModels implements [types.Model].
//
// See https://docs.anthropic.com/en/docs/about-claude/models/all-models.
func (m *AnthropicModel) SupportedModels() []string {
	return []string{
		string(anthropic.ModelClaude3_7SonnetLatest),
		string(anthropic.ModelClaude3_7Sonnet20250219),
		string(anthropic.ModelClaude3_5HaikuLatest),
		string(anthropic.ModelClaude3_5Haiku20241022),
		string(anthropic.ModelClaudeSonnet4_0),
		string(anthropic.ModelClaude3_5SonnetLatest),
		string(anthropic.ModelClaude3_5Sonnet20241022),
		string(anthropic.ModelClaudeOpus4_0),

		"claude-3-7-sonnet@20250219",
		"claude-3-5-haiku@20241022",
		"claude-sonnet-4@20250514",
		"claude-3-5-sonnet-v2@20241022",
		"claude-opus-4@20250514",

		"anthropic.claude-3-7-sonnet-20250219-v1:0",
		"anthropic.claude-3-5-haiku-20241022-v1:0",
		"anthropic.claude-sonnet-4-20250514-v1:0",
		"anthropic.claude-3-5-sonnet-20241022-v2:0",
		"anthropic.claude-opus-4-20250514-v1:0",
	}
}

// Connect implements [types.Model].
//
// Claude exposes no bidirectional streaming transport comparable to Gemini's
// live API; callers that need live audio/video turns must select a
// [GenaiModel] instead.
func (m *AnthropicModel) Connect(context.Context, *types.LLMRequest) (types.ModelConnection, error) {
	return nil, types.NotImplementedError("anthropic model has no live connection")
}

// GenerateContent implements [types.Model].
func (m *AnthropicModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	params, err := buildMessageParams(m.modelName, request)
	if err != nil {
		return nil, err
	}

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}
	logging.FromContext(ctx).DebugContext(ctx, "claude response", "stop_reason", message.StopReason)

	return messageToLLMResponse(message), nil
}

// StreamGenerateContent implements [types.Model].
func (m *AnthropicModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		params, err := buildMessageParams(m.modelName, request)
		if err != nil {
			yield(nil, err)
			return
		}

		stream := m.client.Messages.NewStreaming(ctx, params)
		if ctx.Err() != nil || stream == nil {
			return
		}

		var message anthropic.Message
		var text strings.Builder
		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
			if !ok {
				continue
			}
			textDelta, ok := delta.Delta.AsAny().(anthropic.TextDelta)
			if !ok || textDelta.Text == "" {
				continue
			}
			text.WriteString(textDelta.Text)

			resp := &types.LLMResponse{
				Content: genai.NewContentFromText(text.String(), genai.RoleModel),
				Partial: true,
			}
			if !yield(resp, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield(nil, fmt.Errorf("claude stream error: %w", err))
			return
		}

		yield(messageToLLMResponse(&message), nil)
	}
}
