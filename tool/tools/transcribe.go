// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/tool"
	"github.com/flowstack/agentkit-go/types"
)

// TranscribeTool transcribes a single inline audio blob supplied as a
// function-call argument, exposing Cloud Speech-to-Text as an on-demand
// tool rather than the implicit live-audio bundling the runtime does for
// streaming input.
type TranscribeTool struct {
	*tool.Tool

	client          *speech.Client
	languageCode    string
	sampleRateHertz int32
}

var _ types.Tool = (*TranscribeTool)(nil)

// TranscribeToolOption configures a [TranscribeTool].
type TranscribeToolOption func(*TranscribeTool)

// WithTranscribeLanguage sets the BCP-47 language code passed to the
// recognizer. Defaults to "en-US".
func WithTranscribeLanguage(code string) TranscribeToolOption {
	return func(t *TranscribeTool) { t.languageCode = code }
}

// WithTranscribeSampleRate sets the expected audio sample rate in Hertz.
// Defaults to 16000, matching 16-bit PCM mono audio.
func WithTranscribeSampleRate(hertz int32) TranscribeToolOption {
	return func(t *TranscribeTool) { t.sampleRateHertz = hertz }
}

// NewTranscribeTool creates a [TranscribeTool] using application-default
// credentials.
func NewTranscribeTool(ctx context.Context, opts ...TranscribeToolOption) (*TranscribeTool, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: speech.DefaultAuthScopes(),
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials for speech: %w", err)
	}

	client, err := speech.NewClient(ctx, option.WithAuthCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	t := &TranscribeTool{
		Tool:            tool.NewTool("transcribe_audio", "Transcribes a base64-encoded LINEAR16 PCM audio clip to text.", false),
		client:          client,
		languageCode:    "en-US",
		sampleRateHertz: 16000,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// GetDeclaration implements [types.Tool].
func (t *TranscribeTool) GetDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"audio_base64": {
					Type:        genai.TypeString,
					Description: "base64-encoded LINEAR16 PCM audio bytes",
				},
			},
			Required: []string{"audio_base64"},
		},
	}
}

// Run implements [types.Tool].
func (t *TranscribeTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	raw, _ := args["audio_base64"].(string)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("transcribe_audio: %q argument is required", "audio_base64")
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("transcribe_audio: decode audio_base64: %w", err)
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: t.sampleRateHertz,
			LanguageCode:    t.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	}

	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("transcribe_audio: recognize: %w", err)
	}

	var transcripts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		transcripts = append(transcripts, result.Alternatives[0].Transcript)
	}

	return map[string]any{
		"transcript": strings.Join(transcripts, " "),
	}, nil
}

// ProcessLLMRequest implements [types.Tool].
func (t *TranscribeTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	request.AppendTools(t)
	return nil
}

// Close releases the underlying Speech client connection.
func (t *TranscribeTool) Close() error {
	return t.client.Close()
}
