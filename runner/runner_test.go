// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner_test

import (
	"context"
	"iter"
	"testing"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/agent"
	"github.com/flowstack/agentkit-go/runner"
	"github.com/flowstack/agentkit-go/session"
	"github.com/flowstack/agentkit-go/types"
)

// echoModel is a fake [types.Model] that always answers with a single fixed
// text response and never requests a tool call.
type echoModel struct {
	reply string
}

func (m *echoModel) Name() string               { return "echo-model" }
func (m *echoModel) SupportedModels() []string   { return []string{"echo-model"} }
func (m *echoModel) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	return nil, types.NotImplementedError("echoModel does not support live connections")
}

func (m *echoModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	return (&types.LLMResponse{}).
		WithContent(genai.NewContentFromText(m.reply, genai.RoleModel)), nil
}

func (m *echoModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(nil, types.NotImplementedError("echoModel does not support streaming"))
	}
}

func newEchoAgent(t *testing.T, name, reply string) types.Agent {
	t.Helper()
	a, err := agent.NewLLMAgent(context.Background(), name,
		agent.WithModel(&echoModel{reply: reply}),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent: %v", err)
	}
	return a
}

func TestRunnerSimpleEcho(t *testing.T) {
	ctx := context.Background()
	root := newEchoAgent(t, "root_agent", "hello there")

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	msg := genai.NewContentFromText("hi", genai.RoleUser)

	var events []*types.Event
	for event, err := range r.Run(ctx, "user1", "sess1", msg, &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}

	last := events[len(events)-1]
	if last.Author != "root_agent" {
		t.Errorf("expected final event authored by root_agent, got %q", last.Author)
	}
	if last.Content == nil || len(last.Content.Parts) == 0 || last.Content.Parts[0].Text != "hello there" {
		t.Errorf("expected final event content %q, got %+v", "hello there", last.Content)
	}
	if !last.IsFinalResponse() {
		t.Error("expected final event to be a final response")
	}
}

func TestRunnerPersistsSessionEvents(t *testing.T) {
	ctx := context.Background()
	root := newEchoAgent(t, "root_agent", "ack")
	sessionSvc := session.NewInMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: sessionSvc,
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	msg := genai.NewContentFromText("ping", genai.RoleUser)
	for _, err := range r.Run(ctx, "user1", "sess1", msg, &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stored, err := sessionSvc.GetSession(ctx, "testapp", "user1", "sess1", nil)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	if len(stored.Events()) < 2 {
		t.Fatalf("expected at least 2 persisted events (user + model), got %d", len(stored.Events()))
	}
	if stored.Events()[0].Author != "user" {
		t.Errorf("expected first event authored by user, got %q", stored.Events()[0].Author)
	}
}

func TestRunnerBeforeRunPluginShortCircuits(t *testing.T) {
	ctx := context.Background()
	root := newEchoAgent(t, "root_agent", "should not be reached")

	shortCircuit := genai.NewContentFromText("cached answer", genai.RoleModel)
	plugin := &types.Plugin{
		Name: "cache",
		BeforeRun: func(ictx *types.InvocationContext) (*genai.Content, error) {
			return shortCircuit, nil
		},
	}

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
		Plugins:        []*types.Plugin{plugin},
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	msg := genai.NewContentFromText("hi", genai.RoleUser)

	var events []*types.Event
	for event, err := range r.Run(ctx, "user1", "sess1", msg, &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected the user event plus 1 synthesized event from the short-circuit, got %d", len(events))
	}
	if events[0].Author != "user" {
		t.Errorf("expected the user event first, got author %q", events[0].Author)
	}
	if events[1].Author != "root_agent" {
		t.Errorf("expected the synthesized event authored by root_agent, got %q", events[1].Author)
	}
	if events[1].Content.Parts[0].Text != "cached answer" {
		t.Errorf("expected short-circuit content, got %+v", events[1].Content)
	}
}

// roundModel answers with a function-call on its first invocation and a
// fixed text response on every subsequent one, letting tests drive a
// complete model -> tool -> model round.
type roundModel struct {
	toolName  string
	finalText string
	calls     int
}

func (m *roundModel) Name() string             { return "round-model" }
func (m *roundModel) SupportedModels() []string { return []string{"round-model"} }
func (m *roundModel) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	return nil, types.NotImplementedError("roundModel does not support live connections")
}

func (m *roundModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	m.calls++
	if m.calls == 1 {
		return (&types.LLMResponse{}).WithContent(&genai.Content{
			Role:  genai.RoleModel,
			Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{Name: m.toolName, ID: "fc1"}}},
		}), nil
	}
	return (&types.LLMResponse{}).WithContent(genai.NewContentFromText(m.finalText, genai.RoleModel)), nil
}

func (m *roundModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(nil, types.NotImplementedError("roundModel does not support streaming"))
	}
}

// okTool is a [types.Tool] that always succeeds with a fixed map result.
type okTool struct {
	name   string
	result map[string]any
}

func (t *okTool) Name() string        { return t.name }
func (t *okTool) Description() string { return "" }
func (t *okTool) IsLongRunning() bool { return false }
func (t *okTool) GetDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{Name: t.name}
}
func (t *okTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	return t.result, nil
}
func (t *okTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	return nil
}

// TestRunnerSingleToolRound drives a full tool round: a model requests one
// tool call, the tool succeeds, and the model is called again with the
// function-response to produce the final text.
func TestRunnerSingleToolRound(t *testing.T) {
	ctx := context.Background()
	tool := &okTool{name: "t", result: map[string]any{"ok": float64(1)}}
	model := &roundModel{toolName: "t", finalText: "done"}

	root, err := agent.NewLLMAgent(ctx, "root_agent",
		agent.WithModel(model),
		agent.WithTools(tool),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent: %v", err)
	}

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	msg := genai.NewContentFromText("please call t", genai.RoleUser)

	var authors []string
	var events []*types.Event
	for event, err := range r.Run(ctx, "user1", "sess1", msg, &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		authors = append(authors, event.Author)
		events = append(events, event)
	}

	wantAuthors := []string{"user", "root_agent", "root_agent", "root_agent"}
	if len(authors) != len(wantAuthors) {
		t.Fatalf("expected authors %v, got %v", wantAuthors, authors)
	}
	for i := range wantAuthors {
		if authors[i] != wantAuthors[i] {
			t.Errorf("event %d: expected author %q, got %q", i, wantAuthors[i], authors[i])
		}
	}

	toolResultEvent := events[2]
	if toolResultEvent.Content == nil || len(toolResultEvent.Content.Parts) != 1 {
		t.Fatalf("expected tool-result event with 1 part, got %+v", toolResultEvent.Content)
	}
	fr := toolResultEvent.Content.Parts[0].FunctionResponse
	if fr == nil || fr.ID != "fc1" {
		t.Fatalf("expected function-response with id %q, got %+v", "fc1", fr)
	}

	final := events[3]
	if !final.IsFinalResponse() {
		t.Error("expected the last event to be a final response")
	}
	if final.Content == nil || final.Content.Parts[0].Text != "done" {
		t.Errorf("expected final text %q, got %+v", "done", final.Content)
	}
}

// transferModel answers with a call to the synthetic transfer_to_agent tool
// that flow/llmflow.AgentTransferLlmRequestProcessor injects whenever its
// agent has sub-agents to transfer to.
type transferModel struct {
	targetAgent string
}

func (m *transferModel) Name() string             { return "transfer-model" }
func (m *transferModel) SupportedModels() []string { return []string{"transfer-model"} }
func (m *transferModel) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	return nil, types.NotImplementedError("transferModel does not support live connections")
}

func (m *transferModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	return (&types.LLMResponse{}).WithContent(&genai.Content{
		Role: genai.RoleModel,
		Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{
			Name: "transfer_to_agent",
			ID:   "fc1",
			Args: map[string]any{"agent_name": m.targetAgent},
		}}},
	}), nil
}

func (m *transferModel) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(nil, types.NotImplementedError("transferModel does not support streaming"))
	}
}

// TestRunnerTransferToSubAgent covers agent transfer: root R's model
// calls the synthetic transfer_to_agent tool that
// flow/llmflow.AgentTransferLlmRequestProcessor injects, flow/llmflow
// resolves it against R's sub-agent tree and runs B in its place, and B's
// final text closes out the turn, with the session containing all the
// resulting events in order.
func TestRunnerTransferToSubAgent(t *testing.T) {
	ctx := context.Background()
	childB := newEchoAgent(t, "B", "from B")

	root, err := agent.NewLLMAgent(ctx, "R",
		agent.WithModel(&transferModel{targetAgent: "B"}),
		agent.WithSubAgents(childB),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent: %v", err)
	}

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	msg := genai.NewContentFromText("hi", genai.RoleUser)

	var authors []string
	for event, err := range r.Run(ctx, "user1", "sess1", msg, &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		authors = append(authors, event.Author)
	}

	// user, R's function-call event, R's function-response event (which
	// carries actions.transfer_to_agent), then B's final response.
	want := []string{"user", "R", "R", "B"}
	if len(authors) != len(want) {
		t.Fatalf("expected authors %v, got %v", want, authors)
	}
	for i := range want {
		if authors[i] != want[i] {
			t.Errorf("event %d: expected author %q, got %q", i, want[i], authors[i])
		}
	}

	if last := authors[len(authors)-1]; last != "B" {
		t.Errorf("expected the turn to close out authored by B, got %q", last)
	}
}

func TestRunnerRejectsMissingConfig(t *testing.T) {
	if _, err := runner.New(runner.Config{}); err == nil {
		t.Fatal("expected error for empty config")
	}
}

// countingModel records how many times the flow actually called it, so
// tests can prove a before_model short-circuit bypassed the model.
type countingModel struct {
	echoModel
	calls int
}

func (m *countingModel) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	m.calls++
	return m.echoModel.GenerateContent(ctx, request)
}

// TestRunnerBeforeModelPluginBypassesModel covers the model-level cache
// pattern: a plugin's before_model hook serves a synthetic response and the
// model itself is never invoked.
func TestRunnerBeforeModelPluginBypassesModel(t *testing.T) {
	ctx := context.Background()
	model := &countingModel{echoModel: echoModel{reply: "real"}}

	root, err := agent.NewLLMAgent(ctx, "root_agent", agent.WithModel(model))
	if err != nil {
		t.Fatalf("NewLLMAgent: %v", err)
	}

	cache := &types.Plugin{
		Name: "model-cache",
		BeforeModel: func(cctx *types.CallbackContext, req *types.LLMRequest) (*types.LLMResponse, error) {
			return (&types.LLMResponse{}).WithContent(genai.NewContentFromText("cached", genai.RoleModel)), nil
		},
	}

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
		Plugins:        []*types.Plugin{cache},
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	var finalText string
	for event, err := range r.Run(ctx, "user1", "sess1", genai.NewContentFromText("hi", genai.RoleUser), &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Content != nil && len(event.Content.Parts) > 0 && event.Content.Parts[0].Text != "" {
			finalText = event.Content.Parts[0].Text
		}
	}

	if finalText != "cached" {
		t.Errorf("expected the cached response, got %q", finalText)
	}
	if model.calls != 0 {
		t.Errorf("model was invoked %d times, want 0", model.calls)
	}
}

// TestRunnerTransferTargetMissing checks that a transfer to an agent the
// tree does not contain is surfaced as an error event in the stream, not as
// a bare iterator error, and that it terminates the run.
func TestRunnerTransferTargetMissing(t *testing.T) {
	ctx := context.Background()
	childB := newEchoAgent(t, "B", "unused")

	root, err := agent.NewLLMAgent(ctx, "R",
		agent.WithModel(&transferModel{targetAgent: "ghost"}),
		agent.WithSubAgents(childB),
	)
	if err != nil {
		t.Fatalf("NewLLMAgent: %v", err)
	}

	r, err := runner.New(runner.Config{
		AppName:        "testapp",
		Agent:          root,
		SessionService: session.NewInMemoryService(),
	})
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}

	var events []*types.Event
	for event, err := range r.Run(ctx, "user1", "sess1", genai.NewContentFromText("hi", genai.RoleUser), &types.RunConfig{}) {
		if err != nil {
			t.Fatalf("expected the failure as an error event, got iterator error: %v", err)
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		t.Fatal("expected events")
	}
	last := events[len(events)-1]
	if last.ErrorCode != "transfer_target_missing" {
		t.Errorf("expected the stream to end with a transfer_target_missing error event, got %+v", last.LLMResponse)
	}
}
