// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"context"
	"iter"
	"testing"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/agent"
	"github.com/flowstack/agentkit-go/types"
)

func textAgent(name, text string) *agent.CustomAgent {
	runFn := func(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
		return func(yield func(*types.Event, error) bool) {
			yield(types.NewEvent().WithContent(&genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}), nil)
		}
	}
	return agent.NewCustomAgent(name, runFn)
}

// TestSequentialAgentRunsSubAgentsInOrder checks the composability
// of orchestration agents: a SequentialAgent runs every
// sub-agent, in declaration order, each contributing its own event.
func TestSequentialAgentRunsSubAgentsInOrder(t *testing.T) {
	first := textAgent("first", "one")
	second := textAgent("second", "two")
	third := textAgent("third", "three")

	root := agent.NewSequentialAgent("pipeline", first, second, third)
	ictx := newTestInvocationContext(t, root)

	var authors []string
	for event, err := range root.Run(context.Background(), ictx) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		authors = append(authors, event.Author)
	}

	want := []string{"first", "second", "third"}
	if len(authors) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(authors), authors)
	}
	for i := range want {
		if authors[i] != want[i] {
			t.Errorf("event %d: expected author %q, got %q", i, want[i], authors[i])
		}
	}
}
