// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/pkg/logging"
	"github.com/flowstack/agentkit-go/types"
)

// genaiConnection implements [types.ModelConnection] over a [genai.Session]
// live-connect transport.
type genaiConnection struct {
	model   string
	client  *genai.Client
	session *genai.Session

	mu      sync.Mutex
	closed  bool
	history []*genai.Content
}

var _ types.ModelConnection = (*genaiConnection)(nil)

func newGenaiConnection(ctx context.Context, modelName string, client *genai.Client, request *types.LLMRequest) (*genaiConnection, error) {
	cfg := &genai.LiveConnectConfig{}
	if request != nil && request.LiveConnectConfig != nil {
		cfg = request.LiveConnectConfig
	}

	session, err := client.Live.Connect(ctx, modelName, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect live session: %w", err)
	}

	return &genaiConnection{model: modelName, client: client, session: session}, nil
}

// SendHistory implements [types.ModelConnection].
func (c *genaiConnection) SendHistory(ctx context.Context, history []*genai.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection is closed")
	}
	c.history = history
	if len(history) == 0 {
		return nil
	}
	last := history[len(history)-1]
	if last.Role != genai.RoleUser {
		return nil
	}
	return c.session.SendClientContent(genai.LiveClientContentInput{Turns: history})
}

// SendContent implements [types.ModelConnection].
func (c *genaiConnection) SendContent(ctx context.Context, content *genai.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection is closed")
	}
	c.history = append(c.history, content)
	return c.session.SendClientContent(genai.LiveClientContentInput{Turns: []*genai.Content{content}})
}

// SendRealtime implements [types.ModelConnection].
func (c *genaiConnection) SendRealtime(ctx context.Context, blob []byte, mimeType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection is closed")
	}
	return c.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: blob, MIMEType: mimeType},
	})
}

// Receive implements [types.ModelConnection].
func (c *genaiConnection) Receive(ctx context.Context) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		var text string
		for {
			message, err := c.session.Receive()
			if err != nil {
				yield(nil, err)
				return
			}
			logging.FromContext(ctx).DebugContext(ctx, "genai live message received")

			if sc := message.ServerContent; sc != nil {
				if sc.ModelTurn != nil && len(sc.ModelTurn.Parts) > 0 {
					part := sc.ModelTurn.Parts[0]
					resp := &types.LLMResponse{Content: sc.ModelTurn, Interrupted: sc.Interrupted}
					if part.Text != "" {
						text += part.Text
						resp.Partial = true
					}
					if !yield(resp, nil) {
						return
					}
				}
				if sc.TurnComplete {
					if text != "" {
						if !yield(&types.LLMResponse{Content: genai.NewContentFromText(text, genai.RoleModel)}, nil) {
							return
						}
						text = ""
					}
					yield(&types.LLMResponse{TurnComplete: true, Interrupted: sc.Interrupted}, nil)
					return
				}
			}

			if message.ToolCall != nil && len(message.ToolCall.FunctionCalls) > 0 {
				parts := make([]*genai.Part, len(message.ToolCall.FunctionCalls))
				for i, fc := range message.ToolCall.FunctionCalls {
					parts[i] = &genai.Part{FunctionCall: fc}
				}
				if !yield(&types.LLMResponse{Content: genai.NewContentFromParts(parts, genai.RoleModel)}, nil) {
					return
				}
			}
		}
	}
}

// Close implements [types.ModelConnection].
func (c *genaiConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.session.Close()
}
