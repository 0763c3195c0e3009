// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/internal/xmaps"
	"github.com/flowstack/agentkit-go/pkg/py"
	"github.com/flowstack/agentkit-go/pkg/py/pyasyncio"
	"github.com/flowstack/agentkit-go/telemetry"
	"github.com/flowstack/agentkit-go/types"
)

const (
	FunctionCallIDPrefix = "agentkit-"
)

// GenerateClientFunctioncallID generates a unique function call ID for the client.
func GenerateClientFunctioncallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// PopulateClientFunctionCallID populates the function call ID for each function call in the model response event.
func PopulateClientFunctionCallID(ctx context.Context, modelResponseEvent *types.Event) {
	funcCalls := modelResponseEvent.GetFunctionCalls()
	if len(funcCalls) == 0 {
		return
	}

	for i := range funcCalls {
		if funcCalls[i].ID == "" {
			funcCalls[i].ID = GenerateClientFunctioncallID()
		}
	}
}

// RemoveClientFunctionCallID removes the function call ID for each function call in the model response event.
func RemoveClientFunctionCallID(content *genai.Content) *genai.Content {
	if content != nil && len(content.Parts) > 0 {
		for i, part := range content.Parts {
			if part.FunctionCall != nil && part.FunctionCall.ID != "" && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix) {
				content.Parts[i].FunctionCall.ID = ""
			}

			if part.FunctionResponse != nil && part.FunctionResponse.ID != "" && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix) {
				content.Parts[i].FunctionResponse.ID = ""
			}
		}
	}
	return content
}

// GetLongRunningFunctionCalls returns a set of long-running function call IDs from the given function calls.
func GetLongRunningFunctionCalls(ctx context.Context, funcCalls []*genai.FunctionCall, toolsDict map[string]types.Tool) py.Set[string] {
	longRunningToolIDs := py.NewSet[string]()

	for _, funcCall := range funcCalls {
		if tool, ok := toolsDict[funcCall.Name]; ok && tool != nil && tool.IsLongRunning() {
			longRunningToolIDs.Insert(funcCall.ID)
		}
	}

	return longRunningToolIDs
}

// callResult is the outcome of dispatching a single function call, kept
// alongside its original index so fan-out can be reassembled in call order
// regardless of completion order.
type callResult struct {
	index int
	event *types.Event
}

// HandleFunctionCalls dispatches every function call carried by functionCallEvent
// concurrently, then merges the resulting function-response events into a
// single event whose parts preserve the original call order.
//
// Per-call tool errors are converted into an `{"error": message}` function
// response rather than aborting the whole round; only a canceled context
// aborts the round early.
func HandleFunctionCalls(ctx context.Context, ictx *types.InvocationContext, functionCallEvent *types.Event, toolsDict map[string]types.Tool) (*types.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	llmAgent, ok := ictx.Agent.AsLLMAgent()
	if !ok {
		return nil, nil
	}

	funcCalls := functionCallEvent.GetFunctionCalls()
	if len(funcCalls) == 0 {
		return nil, nil
	}

	results := make([]callResult, len(funcCalls))
	var wg sync.WaitGroup
	for i, funcCall := range funcCalls {
		wg.Add(1)
		go func(i int, funcCall *genai.FunctionCall) {
			defer wg.Done()
			results[i] = callResult{index: i, event: dispatchFunctionCall(ctx, ictx, llmAgent, funcCall, toolsDict)}
		}(i, funcCall)
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	events := make([]*types.Event, 0, len(results))
	for _, r := range results {
		if r.event == nil {
			continue
		}
		events = append(events, r.event)
	}
	if len(events) == 0 {
		return nil, nil
	}

	return mergeParallelFunctionResponseEvents(events)
}

// dispatchFunctionCall runs before_tool -> tool -> after_tool for one call,
// recovering tool errors into an error function-response.
func dispatchFunctionCall(ctx context.Context, ictx *types.InvocationContext, llmAgent types.LLMAgent, funcCall *genai.FunctionCall, toolsDict map[string]types.Tool) *types.Event {
	t, toolCtx, err := getToolAndContext(ctx, ictx, funcCall, toolsDict)
	if err != nil {
		return buildErrorResponseEvent(funcCall, err.Error(), toolCtx, ictx)
	}

	funcArgs := funcCall.Args
	var funcResponse map[string]any

	if resp, err := ictx.Plugins.BeforeTool(toolCtx, t, funcArgs); err != nil {
		if recovered, rerr := ictx.Plugins.OnToolError(toolCtx, t, funcArgs, err); rerr == nil && recovered != nil {
			funcResponse = recovered
		} else {
			return buildErrorResponseEvent(funcCall, fmt.Sprintf("before_tool: %s", err), toolCtx, ictx)
		}
	} else if resp != nil {
		funcResponse = resp
	}

	if len(funcResponse) == 0 {
		for i, callback := range llmAgent.BeforeToolCallback() {
			resp, err := callback(t, funcArgs, toolCtx)
			if err != nil {
				return buildErrorResponseEvent(funcCall, fmt.Sprintf("before_tool[%d]: %s", i, err), toolCtx, ictx)
			}
			if len(resp) > 0 {
				funcResponse = resp
				break
			}
		}
	}

	if len(funcResponse) == 0 {
		resp, err := callTool(ctx, t, funcArgs, toolCtx)
		switch {
		case err != nil:
			if recovered, rerr := ictx.Plugins.OnToolError(toolCtx, t, funcArgs, err); rerr == nil && recovered != nil {
				funcResponse = recovered
			} else {
				return buildErrorResponseEvent(funcCall, err.Error(), toolCtx, ictx)
			}
		case t.IsLongRunning() && len(resp) == 0:
			// Long-running tools may return nothing immediately; the caller
			// marks the call id in long_running_tool_ids and its real result
			// arrives later as an out-of-band function response.
			funcResponse = map[string]any{"status": "pending"}
		default:
			funcResponse = resp
		}
	}

	for i, callback := range llmAgent.AfterToolCallbacks() {
		resp, err := callback(t, funcArgs, toolCtx, funcResponse)
		if err != nil {
			return buildErrorResponseEvent(funcCall, fmt.Sprintf("after_tool[%d]: %s", i, err), toolCtx, ictx)
		}
		if len(resp) > 0 {
			funcResponse = resp
			break
		}
	}

	if resp, err := ictx.Plugins.AfterTool(toolCtx, t, funcArgs, funcResponse); err == nil && resp != nil {
		funcResponse = resp
	}

	toolCtx.WithFunctionCallID(funcCall.ID)
	return buildResponseEvent(ctx, t, funcResponse, toolCtx, ictx)
}

// HandleFunctionCallsLive calls the functions and returns the function response event.
func HandleFunctionCallsLive(ctx context.Context, ictx *types.InvocationContext, functionCallEvent *types.Event, toolsDict map[string]types.Tool) (*types.Event, error) {
	// Check if context is already canceled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	llmAgent, ok := ictx.Agent.AsLLMAgent()
	if !ok {
		return nil, nil
	}

	funcCalls := functionCallEvent.GetFunctionCalls()
	var funcResponseEvents []*types.Event
	for _, funcCall := range funcCalls {
		t, toolCtx, err := getToolAndContext(ctx, ictx, funcCall, toolsDict)
		if err != nil {
			return nil, err
		}

		funcArgs := funcCall.Args
		var functResponse map[string]any
		if callbacks := llmAgent.BeforeToolCallback(); len(callbacks) > 0 {
			for _, callback := range callbacks {
				functResponse, err = callback(t, funcArgs, toolCtx)
				if err != nil {
					return nil, err
				}
			}
		}
		if len(functResponse) == 0 {
			functResponse = processFunctionLiveHelper(ctx, t, toolCtx, funcCall, funcArgs, ictx)
		}

		if callbacks := llmAgent.AfterToolCallbacks(); len(callbacks) > 0 {
			for _, callback := range callbacks {
				functResponse, err = callback(t, funcArgs, toolCtx, functResponse)
				if err != nil {
					return nil, err
				}
			}
		}

		if t.IsLongRunning() && len(functResponse) == 0 {
			continue
		}

		funcResponseEvents = append(funcResponseEvents, buildResponseEvent(ctx, t, functResponse, toolCtx, ictx))
	}

	var mergedEvent *types.Event
	if len(funcResponseEvents) > 0 {
		var err error
		mergedEvent, err = mergeParallelFunctionResponseEvents(funcResponseEvents)
		if err != nil {
			return nil, err
		}
	}

	return mergedEvent, nil
}

func processFunctionLiveHelper(ctx context.Context, t types.Tool, toolCtx *types.ToolContext, funcCall *genai.FunctionCall, funcArgs map[string]any, ictx *types.InvocationContext) map[string]any {
	funcResponse := make(map[string]any)

	if funcCall.Name == "stop_streaming" && xmaps.Contains(funcArgs, "function_name") {
		functionName := funcArgs["function_name"].(string)
		activeTasks := ictx.ActiveStreamingTools
		if xmaps.Contains(activeTasks, functionName) {
			if atask, ok := activeTasks[functionName]; ok && atask.Task != nil {
				task := atask.Task
				task.Cancel()
				_, err := pyasyncio.WaitForTask(ctx, time.Second, task)
				if err != nil {
					switch {
					case task.Cancelled():
						slog.Default().InfoContext(ctx, "task was cancelled successfully", slog.String("function_name", functionName))
					case task.Done():
						slog.Default().InfoContext(ctx, "task completed during cancellation", slog.String("function_name", functionName))
					default:
						slog.Default().InfoContext(ctx, "task might still be running after cancellation timeout", slog.String("function_name", functionName))
						funcResponse["status"] = fmt.Sprintf("The task is not cancelled yet for %s.", functionName)
					}
				}
				if len(funcResponse) == 0 {
					activeTasks[functionName].Task = nil
					funcResponse["status"] = fmt.Sprintf("Successfully stopped streaming function %s.", functionName)
				}
			}
		}
		funcResponse["status"] = fmt.Sprintf("No active streaming function named %s found", functionName)

		return funcResponse
	}

	if _, ok := t.(interface{ Func() }); ok {
		runToolAndPpdateQueue := func(t types.Tool, funcArgs map[string]any, toolCtx *types.ToolContext) (any, error) {
			results := callToolLive(ctx, t, funcArgs, toolCtx, ictx)
			for result, err := range results {
				if err != nil {
					return nil, err
				}
				updatedContent := genai.NewContentFromText(
					fmt.Sprintf("Function %s returned: %v", t.Name(), &result), genai.Role("user"),
				)
				ictx.LiveRequestQueue.SendContent(updatedContent)
			}
			return nil, nil
		}

		task := pyasyncio.CreateTask(ctx, func(ctx context.Context) (any, error) { return runToolAndPpdateQueue(t, funcArgs, toolCtx) })
		if len(ictx.ActiveStreamingTools) == 0 {
			ictx.ActiveStreamingTools = make(map[string]*types.ActiveStreamingTool[any])
		}
		switch {
		case xmaps.Contains(ictx.ActiveStreamingTools, t.Name()):
			ictx.ActiveStreamingTools[t.Name()].Task = task
		default:
			ictx.ActiveStreamingTools[t.Name()] = types.NewActiveStreamingTool[any]().WithTask(task)
		}

		funcResponse["status"] = "The function is running asynchronously and the results are pending."

		return funcResponse
	}

	resp, err := callTool(ctx, t, funcArgs, toolCtx)
	if err != nil {
		return nil
	}
	funcResponse = resp

	return funcResponse
}

func getToolAndContext(ctx context.Context, ictx *types.InvocationContext, funcCall *genai.FunctionCall, toolsDict map[string]types.Tool) (types.Tool, *types.ToolContext, error) {
	t, ok := toolsDict[funcCall.Name]
	if !ok {
		return nil, nil, fmt.Errorf("function %s is not found in the tool catalog", funcCall.Name)
	}
	toolCtx := types.NewToolContext(ictx).WithFunctionCallID(funcCall.ID)

	return t, toolCtx, nil
}

// callToolLive runs the tool once and yields its result, which must be a
// *types.Event.
func callToolLive(ctx context.Context, t types.Tool, args map[string]any, toolCtx *types.ToolContext, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		result, err := t.Run(ctx, args, toolCtx)
		if !yield(result.(*types.Event), err) {
			return
		}
	}
}

// callTool calls the tool.
func callTool(ctx context.Context, t types.Tool, args map[string]any, tctx *types.ToolContext) (map[string]any, error) {
	spanCtx, span := telemetry.StartToolSpan(ctx, t.Name())
	defer span.End()

	res, err := t.Run(spanCtx, args, tctx)
	if err != nil {
		telemetry.RecordToolError(ctx, t.Name())
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	result, ok := res.(map[string]any)
	if !ok {
		telemetry.RecordToolError(ctx, t.Name())
		return nil, fmt.Errorf("res is not map[string]any: %T", res)
	}

	return result, nil
}

// buildErrorResponseEvent converts an unrecovered tool/lookup error into a
// function-response event carrying `{"error": message}`, per the tool_error
// taxonomy: the model sees the failure and may react instead of the turn
// aborting.
func buildErrorResponseEvent(funcCall *genai.FunctionCall, message string, toolCtx *types.ToolContext, ictx *types.InvocationContext) *types.Event {
	partFuncResponse := genai.NewPartFromFunctionResponse(funcCall.Name, map[string]any{"error": message})
	partFuncResponse.FunctionResponse.ID = funcCall.ID

	content := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{partFuncResponse},
	}

	event := types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithContent(content).
		WithBranch(ictx.Branch)
	if toolCtx != nil {
		event.WithActions(toolCtx.Actions())
	} else {
		event.WithActions(types.NewEventActions())
	}

	return event
}

func buildResponseEvent(ctx context.Context, t types.Tool, funcResult map[string]any, toolCtx *types.ToolContext, ictx *types.InvocationContext) *types.Event {
	// the model expects a map-shaped result.
	if len(funcResult) == 0 {
		funcResult = map[string]any{
			"result": funcResult,
		}
	}

	partFuncResponse := genai.NewPartFromFunctionResponse(t.Name(), funcResult)
	partFuncResponse.FunctionResponse.ID = toolCtx.FunctionCallID()

	content := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{partFuncResponse},
	}

	funcRespEvent := types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithContent(content).
		WithActions(toolCtx.Actions()).
		WithBranch(ictx.Branch)

	return funcRespEvent
}

// mergeParallelFunctionResponseEvents merges N per-call function-response
// events produced by one model round into a single user-authored event.
//
// Parts stay in original call order (events are already ordered by call
// index by the caller). Actions merge per call index: state_delta keys
// conflicting across calls take the last writer by index (a warning is
// logged); artifact deltas union; escalate/skip_summarization OR-reduce;
// the first non-empty transfer_to_agent wins and later ones are logged as
// conflicts.
func mergeParallelFunctionResponseEvents(funcRespEvents []*types.Event) (*types.Event, error) {
	if len(funcRespEvents) == 0 {
		return nil, errors.New("no function response events provided")
	}
	if len(funcRespEvents) == 1 {
		return funcRespEvents[0], nil
	}

	var mergedParts []*genai.Part
	for _, event := range funcRespEvents {
		if event.Content != nil {
			mergedParts = append(mergedParts, event.Content.Parts...)
		}
	}

	baseEvent := funcRespEvents[0]
	mergedActions := types.NewEventActions()
	transferSet := false

	for i, event := range funcRespEvents {
		if event.Actions == nil {
			continue
		}
		for k, v := range event.Actions.StateDelta {
			if _, exists := mergedActions.StateDelta[k]; exists {
				slog.Default().Warn("conflicting state key across parallel tool calls, last writer by index wins",
					slog.String("key", k), slog.Int("call_index", i))
			}
			mergedActions.StateDelta[k] = v
		}
		maps.Copy(mergedActions.ArtifactDelta, event.Actions.ArtifactDelta)
		mergedActions.Escalate = mergedActions.Escalate || event.Actions.Escalate
		mergedActions.SkipSummarization = mergedActions.SkipSummarization || event.Actions.SkipSummarization
		mergedActions.RequestedToolConfirmations = append(mergedActions.RequestedToolConfirmations, event.Actions.RequestedToolConfirmations...)

		if event.Actions.TransferToAgent != "" {
			if !transferSet {
				mergedActions.TransferToAgent = event.Actions.TransferToAgent
				transferSet = true
			} else if event.Actions.TransferToAgent != mergedActions.TransferToAgent {
				slog.Default().Warn("multiple transfer_to_agent targets set in one round, keeping the first",
					slog.String("kept", mergedActions.TransferToAgent), slog.String("dropped", event.Actions.TransferToAgent), slog.Int("call_index", i))
			}
		}
	}

	mergedEvent := types.NewEvent().
		WithInvocationID(baseEvent.InvocationID).
		WithAuthor(baseEvent.Author).
		WithBranch(baseEvent.Branch).
		WithContent(genai.NewContentFromParts(mergedParts, genai.Role("user"))).
		WithActions(mergedActions)

	mergedEvent.Timestamp = baseEvent.Timestamp

	return mergedEvent, nil
}
