// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/dotprompt/go/dotprompt"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/example"
)

// PromptExampleProvider is an [example.Provider] that sources its few-shot
// examples from a dotprompt-authored .prompt file's "examples" front-matter
// field, re-reading and re-parsing the file on every call so edits to the
// file take effect without restarting the process.
type PromptExampleProvider struct {
	path string
}

var _ example.Provider = (*PromptExampleProvider)(nil)

// NewPromptExampleProvider creates a [PromptExampleProvider] reading from path.
func NewPromptExampleProvider(path string) *PromptExampleProvider {
	return &PromptExampleProvider{path: path}
}

// promptExamplesMetadata mirrors the shape of the "examples" front-matter
// field this provider expects: a list of input/output pairs.
type promptExamplesMetadata struct {
	Examples []struct {
		Input  string   `json:"input"`
		Output []string `json:"output"`
	} `json:"examples"`
}

// GetExamples implements [example.Provider]. query is currently unused: the
// file is small enough that returning its whole example set on every call is
// cheaper than maintaining a relevance index.
func (p *PromptExampleProvider) GetExamples(ctx context.Context, query string) ([]*example.Example, error) {
	source, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file %q: %w", p.path, err)
	}

	parsed, err := dotprompt.ParseDocument(string(source))
	if err != nil {
		return nil, fmt.Errorf("parse prompt file %q: %w", p.path, err)
	}

	rawMeta, err := json.Marshal(parsed.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal front matter of %q: %w", p.path, err)
	}
	var meta promptExamplesMetadata
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, fmt.Errorf("decode examples front matter of %q: %w", p.path, err)
	}

	examples := make([]*example.Example, 0, len(meta.Examples))
	for _, e := range meta.Examples {
		outputs := make([]*genai.Content, 0, len(e.Output))
		for _, out := range e.Output {
			outputs = append(outputs, genai.NewContentFromText(out, genai.RoleModel))
		}
		examples = append(examples, &example.Example{
			Input:  genai.NewContentFromText(e.Input, genai.RoleUser),
			Output: outputs,
		})
	}

	return examples, nil
}

// NewPromptExampleTool builds an [ExampleTool] whose few-shot examples are
// sourced from the dotprompt file at path, for callers who want
// prompt-authored examples instead of a hardcoded []*example.Example slice.
func NewPromptExampleTool(path string) *ExampleTool[example.Provider] {
	return NewExampleTool[example.Provider](NewPromptExampleProvider(path))
}
