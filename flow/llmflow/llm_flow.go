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
	"runtime"
	"time"

	"github.com/flowstack/agentkit-go/model"
	"github.com/flowstack/agentkit-go/pkg/py/pyasyncio"
	"github.com/flowstack/agentkit-go/telemetry"
	"github.com/flowstack/agentkit-go/types"
)

// LLMFlow represents a base flow that calls the LLM in a loop until a final response is generated.
//
// This flow ends when it transfer to another agent.
type LLMFlow struct {
	RequestProcessors  []types.LLMRequestProcessor
	ResponseProcessors []types.LLMResponseProcessor
	Logger             *slog.Logger
}

var _ types.Flow = (*LLMFlow)(nil)

// WithLogger sets the logger for the flow and returns the flow.
func (f *LLMFlow) WithLogger(logger *slog.Logger) *LLMFlow {
	f.Logger = logger.With("flow", "LLMFlow")
	return f
}

// WithRequestProcessors adds a request processor to the [LLMFlow].
func (f *LLMFlow) WithRequestProcessors(processors ...types.LLMRequestProcessor) *LLMFlow {
	f.RequestProcessors = append(f.RequestProcessors, processors...)
	return f
}

// WithResponseProcessors adds a response processor to the [LLMFlow].
func (f *LLMFlow) WithResponseProcessors(processors ...types.LLMResponseProcessor) *LLMFlow {
	f.ResponseProcessors = append(f.ResponseProcessors, processors...)
	return f
}

// NewLLMFlow creates an empty [LLMFlow] with the default logger and no
// processors.
func NewLLMFlow() *LLMFlow {
	return &LLMFlow{
		Logger: slog.Default().With("flow", "LLMFlow"),
	}
}

// RunLive implements [Flow].
//
func (f *LLMFlow) RunLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request := types.NewLLMRequest(nil)
		eventSeq := f.preprocess(ctx, ictx, request)
		for event, err := range eventSeq {
			if err != nil {
				yield(nil, err)
			}

			if !yield(event, nil) {
				return
			}
			if ictx.EndInvocation {
				return
			}
		}

		llm := f.getLLM(ctx, ictx)
		conn, err := llm.Connect(ctx, request)
		if err != nil {
			yield(nil, err)
			return
		}
		if len(request.Contents) > 0 {
			switch {
			case len(ictx.TranscriptionCache) > 0:
				// from . import audio_transcriber
				//
				// audio_transcriber = audio_transcriber.AudioTranscriber()
				// contents = audio_transcriber.transcribe_file(invocation_context)
				// logger.debug('Sending history to model: %s', contents)
				// await llm_connection.send_history(contents)
				// invocation_context.transcription_cache = None
				// trace_send_data(invocation_context, event_id, contents)
			default:
				if err := conn.SendHistory(ctx, request.Contents); err != nil {
					yield(nil, err)
					return
				}
			}
		}

		fn := func(ctx context.Context) (any, error) {
			if err := f.sendToModel(ctx, conn, ictx); err != nil {
				return nil, err
			}
			return nil, nil
		}
		sendTask := pyasyncio.CreateTask[any](ctx, fn)

		for event, err := range f.receiveFromModel(ctx, conn, ictx, request) {
			if err != nil {
				yield(nil, err)
				return
			}
			// Empty event means the queue is closed.
			if event == nil {
				break
			}

			f.Logger.DebugContext(ctx, "receive new event", slog.Any("event", event))
			if !yield(event, nil) {
				return
			}

			// send back the function response
			if len(event.GetFunctionResponses()) > 0 {
				f.Logger.DebugContext(ctx, "Sending back last function response event", slog.Any("event", event))
				ictx.LiveRequestQueue.SendContent(event.Content)
			}

			if event.Content != nil && len(event.Content.Parts) > 0 && event.Content.Parts[0].FunctionResponse != nil {
				switch {
				case event.Content.Parts[0].FunctionResponse.Name == "transfer_to_agent":
					// allow the connection to drain before tearing it down
					select {
					case <-ctx.Done():
						yield(nil, ctx.Err())
						return
					case <-time.After(time.Second):
						yield(nil, pyasyncio.NewTaskCancelledError("timeout"))
						return
					default:
						runtime.Gosched()
					}

					// cancel the tasks that belongs to the closed connection.
					sendTask.Cancel()
					if err := conn.Close(); err != nil {
						yield(nil, err)
						return
					}

				case event.Content.Parts[0].FunctionResponse.Name == "task_completed":
					// this is used for sequential agent to signal the end of the agent.
					// allow the connection to drain before tearing it down
					select {
					case <-ctx.Done():
						yield(nil, ctx.Err())
						return
					case <-time.After(time.Second):
						yield(nil, pyasyncio.NewTaskCancelledError("timeout"))
						return
					default:
						runtime.Gosched()
					}

					// cancel the tasks that belongs to the closed connection.
					sendTask.Cancel()
					return
				}
			}
		}

		if !sendTask.Done() {
			sendTask.Cancel()
		}
		_, err = sendTask.Wait(ctx)
		if err != nil {
			return
		}
	}
}

// sendToModel sends data to model.
func (f *LLMFlow) sendToModel(ctx context.Context, connection types.ModelConnection, ic *types.InvocationContext) error {
	for {
		liveRequestQueue := ic.LiveRequestQueue

		liveRequest, err := liveRequestQueue.Get(ctx)
		if err != nil && errors.Is(err, context.DeadlineExceeded) { // a poll timeout is idle, not fatal
			continue
		}

		// duplicate the live_request to all the active streams
		f.Logger.DebugContext(ctx,
			"sending live request %s to active streams",
			slog.Any("live_request", liveRequest),
			slog.Any("invocation_context.active_streaming_tools", ic.ActiveStreamingTools),
		)

		if len(ic.ActiveStreamingTools) > 0 {
			for v := range maps.Values(ic.ActiveStreamingTools) {
				if v.Stream != nil {
					v.Stream.Send(liveRequest)
				}
			}
		}

		// cooperative yield point
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			runtime.Gosched()
		}

		if liveRequest.Close {
			if err := connection.Close(); err != nil {
				return fmt.Errorf("close llm connection: %w", err)
			}
			break
		}
		if liveRequest.Blob != nil {
			if ic.RunConfig.InputAudioTranscription == nil {
				ic.TranscriptionCache = append(ic.TranscriptionCache, types.NewTranscriptionEntry(model.RoleUser, liveRequest.Blob))
			}

			if err := connection.SendRealtime(ctx, liveRequest.Blob.Data, liveRequest.Blob.MIMEType); err != nil {
				return fmt.Errorf("send realtime data: %w", err)
			}
		}

		if err := connection.SendContent(ctx, liveRequest.Content); err != nil {
			return fmt.Errorf("send content data: %w", err)
		}
	}

	return nil
}

// receiveFromModel receive data from model and process events using [types.ModelConnection].
func (f *LLMFlow) receiveFromModel(ctx context.Context, connection types.ModelConnection, ic *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	// getAuthorForEvent gets the author of the event.
	getAuthorForEvent := func(response *types.LLMResponse) string {
		// When the model returns transcription, the author is "user". Otherwise, the
		// author is the agent.
		if response != nil && response.Content != nil && response.Content.Role == model.RoleUser {
			return model.RoleUser
		}

		return ic.Agent.Name()
	}

	return func(yield func(*types.Event, error) bool) {
		if ic.LiveRequestQueue == nil {
			yield(nil, errors.New("must be LiveRequestQueue field is non-nil"))
			return
		}

		for {
			for resp, err := range connection.Receive(ctx) {
				if err != nil {
					yield(nil, err)
					return
				}

				modelRespEvent := types.NewEvent().
					WithInvocationID(ic.InvocationID).
					WithAuthor(getAuthorForEvent(resp))

				for event, err := range f.postProcessLive(ctx, ic, request, resp, modelRespEvent) {
					if err != nil {
						yield(nil, err)
						return
					}

					if event.Content != nil && len(event.Content.Parts) > 0 && event.Content.Parts[0].InlineData == nil && !event.Partial {
						ic.TranscriptionCache = append(ic.TranscriptionCache, types.NewTranscriptionEntry(event.Content.Role, event.Content))
					}

					if !yield(event, nil) {
						return
					}
				}
			}
			// cooperative yield point
			select {
			case <-ctx.Done():
				yield(nil, ctx.Err())
				return
			default:
				runtime.Gosched()
			}
		}
	}
}

// DefaultMaxIterations bounds the number of model/tool round trips a single
// [LLMFlow.Run] call will drive before giving up with an iteration_limit
// error event.
const DefaultMaxIterations = 20

// Run implements [Flow].
//
// It alternates model calls and tool executions until a final response is
// produced, escalated, transferred, errored, or the iteration bound is hit.
func (f *LLMFlow) Run(ctx context.Context, ic *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		maxIterations := DefaultMaxIterations
		if ic.RunConfig != nil && ic.RunConfig.MaxIterations > 0 {
			maxIterations = ic.RunConfig.MaxIterations
		}

		for iteration := 0; ; iteration++ {
			if iteration >= maxIterations {
				f.Logger.WarnContext(ctx, "llm flow exceeded max iterations", slog.Int("max_iterations", maxIterations))
				limitEvent := types.NewEvent().
					WithInvocationID(ic.InvocationID).
					WithAuthor(ic.Agent.Name()).
					WithBranch(ic.Branch).
					WithActions(types.NewEventActions()).
					WithLLMResponse(&types.LLMResponse{
						ErrorCode:    "iteration_limit",
						ErrorMessage: fmt.Sprintf("llm flow exceeded max iterations (%d)", maxIterations),
					})
				yield(limitEvent, nil)
				return
			}

			var lastEvent *types.Event
			for event, err := range f.runOneStep(ctx, ic) {
				if err != nil {
					yield(nil, err)
					return
				}
				lastEvent = event
				if !yield(event, nil) {
					return
				}
			}
			if ic.EndInvocation {
				return
			}
			if lastEvent == nil || lastEvent.IsFinalResponse() {
				return
			}
			if lastEvent.Actions != nil && (lastEvent.Actions.TransferToAgent != "" || lastEvent.Actions.Escalate) {
				return
			}
			if lastEvent.ErrorCode != "" {
				return
			}
		}
	}
}

// runOneStep drives exactly one model call and, if the model returned
// function calls, one tool-fan-out round.
func (f *LLMFlow) runOneStep(ctx context.Context, ic *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request := types.NewLLMRequest(nil)

		// Preprocess before calling the LLM.
		eventSeq := f.preprocess(ctx, ic, request)
		for event, err := range eventSeq {
			if !yield(event, err) {
				return
			}
		}
		if ic.EndInvocation {
			return
		}

		modelResponseEvent := types.NewEvent()
		modelResponseEvent.InvocationID = ic.InvocationID
		modelResponseEvent.Author = ic.Agent.Name()
		modelResponseEvent.Branch = ic.Branch
		modelResponseEvent.Actions = types.NewEventActions()

		for llmResponse, err := range f.callLLM(ctx, ic, request, modelResponseEvent) {
			if err != nil {
				errEvent := types.NewEvent().
					WithInvocationID(ic.InvocationID).
					WithAuthor(ic.Agent.Name()).
					WithBranch(ic.Branch).
					WithActions(types.NewEventActions()).
					WithLLMResponse(&types.LLMResponse{
						ErrorCode:    "model_error",
						ErrorMessage: err.Error(),
					})
				yield(errEvent, nil)
				return
			}

			modelResponseEvent.LLMResponse = llmResponse
			for event, err := range f.postProcess(ctx, ic, request, llmResponse, modelResponseEvent) {
				if err != nil {
					yield(nil, err)
					return
				}
				// Refresh the id so repeated partial/final events from the
				// same model round don't collide in the session's event log.
				modelResponseEvent.ID = types.NewEventID()
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

func (f *LLMFlow) preprocess(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ic.Agent.AsLLMAgent()
		if !ok {
			return
		}

		// Runs processors.
		for _, processor := range f.RequestProcessors {
			eventSeq := processor.Run(ctx, ic, request)
			for event, err := range eventSeq {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
		}

		// Run processors for tools.
		for _, tool := range llmAgent.CanonicalTool(types.NewReadOnlyContext(ic)) {
			toolCtx := types.NewToolContext(ic)
			tool.ProcessLLMRequest(ctx, toolCtx, request)
		}
	}
}

// postprocess after calling the LLM.
func (f *LLMFlow) postProcess(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest, response *types.LLMResponse, modelRespEvent *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		// Runs processors.
		for event, err := range f.postProcessRunProcessors(ctx, ic, response) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}

		// Skip building a model event for a response that carries no
		// content, no error, and no interruption signal.
		if response == nil || (response.Content == nil && response.ErrorCode == "" && !response.Interrupted) {
			return
		}

		// Builds the event.
		modelResponseEvent := f.finalizeModelResponseEvent(ctx, request, response, modelRespEvent)
		if !yield(modelResponseEvent, nil) {
			return
		}

		// Handles function calls.
		if len(modelResponseEvent.GetFunctionCalls()) > 0 {
			for event, err := range f.postprocessHandleFunctionCalls(ctx, ic, modelResponseEvent, request) {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

// postProcessLive postprocess after calling the LLM asynchronously.
func (f *LLMFlow) postProcessLive(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest, response *types.LLMResponse, modelRespEvent *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		// Runs processors
		for event, err := range f.postProcessRunProcessors(ctx, ic, response) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}

		// Skip the model response event if there is no content and no error code.
		// This is needed for the code executor to trigger another loop.
		// But don't skip control events like turn_complete.
		if response.Content == nil && response.ErrorCode == "" && !response.Interrupted && !response.TurnComplete {
			return
		}

		// Builds the event.
		modelResponseEvent := f.finalizeModelResponseEvent(ctx, request, response, modelRespEvent)
		if !yield(modelResponseEvent, nil) {
			return
		}

		// Handles function calls.
		if len(modelResponseEvent.GetFunctionCalls()) > 0 {
			funcResponseEvent, err := HandleFunctionCallsLive(ctx, ic, modelResponseEvent, request.ToolMap)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(funcResponseEvent, nil) {
				return
			}

			transferToAgent := funcResponseEvent.Actions.TransferToAgent
			if transferToAgent != "" {
				agentToRun, err := f.getAgentToRun(ctx, ic, transferToAgent)
				if err != nil {
					yield(f.transferTargetMissingEvent(ic, err), nil)
					return
				}
				for event, err := range agentToRun.RunLive(ctx, ic) {
					if !yield(event, err) {
						return
					}
				}
			}
		}
	}
}

func (f *LLMFlow) postProcessRunProcessors(ctx context.Context, ic *types.InvocationContext, response *types.LLMResponse) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for _, processor := range f.ResponseProcessors {
			for event, err := range processor.Run(ctx, ic, response) {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

func (f *LLMFlow) postprocessHandleFunctionCalls(ctx context.Context, ic *types.InvocationContext, funcCallEvent *types.Event, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		funcResponseEvent, err := HandleFunctionCalls(ctx, ic, funcCallEvent, request.ToolMap)
		if err != nil {
			yield(nil, err)
			return
		}
		if funcResponseEvent == nil {
			return
		}

		if !yield(funcResponseEvent, nil) {
			return
		}

		transferToAgent := funcResponseEvent.Actions.TransferToAgent
		if transferToAgent != "" {
			agentToRun, err := f.getAgentToRun(ctx, ic, transferToAgent)
			if err != nil {
				yield(f.transferTargetMissingEvent(ic, err), nil)
				return
			}
			for event, err := range agentToRun.Run(ctx, ic) {
				if !yield(event, err) {
					return
				}
			}
		}
	}
}

// transferTargetMissingEvent materializes a failed transfer-target lookup as
// an error event so consumers observing the stream see the failure in order;
// the non-empty error code also terminates the flow loop.
func (f *LLMFlow) transferTargetMissingEvent(ic *types.InvocationContext, err error) *types.Event {
	return types.NewEvent().
		WithInvocationID(ic.InvocationID).
		WithAuthor(ic.Agent.Name()).
		WithBranch(ic.Branch).
		WithActions(types.NewEventActions()).
		WithLLMResponse(&types.LLMResponse{
			ErrorCode:    "transfer_target_missing",
			ErrorMessage: err.Error(),
		})
}

func (f *LLMFlow) getAgentToRun(ctx context.Context, ic *types.InvocationContext, transferToAgent string) (types.Agent, error) {
	rootAgent := ic.Agent.RootAgent()
	agentToRun := rootAgent.FindAgent(transferToAgent)
	if agentToRun == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrTransferTargetMissing, transferToAgent)
	}
	return agentToRun, nil
}

func (f *LLMFlow) callLLM(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest, modelResponseEvent *types.Event) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		// Runs the before_model chain (plugins, then the agent's own
		// callbacks). A non-nil response bypasses the model call entirely.
		response, err := f.handleBeforeModelCallback(ctx, ic, request, modelResponseEvent)
		if err != nil {
			yield(nil, err)
			return
		}
		if response != nil {
			yield(response, nil)
			return
		}

		// Calls the LLM.
		switch {
		case ic.RunConfig != nil && ic.RunConfig.SupportCFC:
			ic.LiveRequestQueue = types.NewLiveRequestQueue()
			eventSeq := f.RunLive(ctx, ic)
			for llmRespEvent, err := range eventSeq {
				if err != nil {
					yield(nil, err)
					return
				}
				alterResponse, err := f.handleAfterModelCallback(ctx, ic, llmRespEvent.LLMResponse, modelResponseEvent)
				if err != nil {
					yield(nil, err)
					return
				}
				toYield := llmRespEvent.LLMResponse
				if alterResponse != nil {
					toYield = alterResponse
				}

				// only yield partial response in SSE streaming mode
				if ic.RunConfig.StreamingMode == types.StreamingModeSSE || !llmRespEvent.Partial {
					if !yield(toYield, nil) {
						return
					}
				}

				if llmRespEvent.TurnComplete {
					ic.LiveRequestQueue.Close()
				}
			}

		case ic.RunConfig != nil && ic.RunConfig.StreamingMode == types.StreamingModeSSE:
			if err := ic.IncrementLLMCallCount(); err != nil {
				yield(nil, err)
				return
			}
			llm := f.getLLM(ctx, ic)
			for resp, err := range llm.StreamGenerateContent(ctx, request) {
				if err != nil {
					recovered, rerr := f.handleModelErrorCallback(ctx, ic, request, err, modelResponseEvent)
					if rerr != nil || recovered == nil {
						yield(nil, err)
						return
					}
					resp = recovered
				}

				alterResponse, err := f.handleAfterModelCallback(ctx, ic, resp, modelResponseEvent)
				if err != nil {
					yield(nil, err)
					return
				}
				if alterResponse != nil {
					resp = alterResponse
				}
				if !yield(resp, nil) {
					return
				}
			}

		default:
			if err := ic.IncrementLLMCallCount(); err != nil {
				yield(nil, err)
				return
			}
			llm := f.getLLM(ctx, ic)
			spanCtx, span := telemetry.StartModelSpan(ctx, llm.Name())
			resp, err := llm.GenerateContent(spanCtx, request)
			span.End()
			if err != nil {
				recovered, rerr := f.handleModelErrorCallback(ctx, ic, request, err, modelResponseEvent)
				if rerr != nil || recovered == nil {
					yield(nil, err)
					return
				}
				resp = recovered
			}

			alterResponse, err := f.handleAfterModelCallback(ctx, ic, resp, modelResponseEvent)
			if err != nil {
				yield(nil, err)
				return
			}
			if alterResponse != nil {
				resp = alterResponse
			}
			yield(resp, nil)
		}
	}
}

// handleBeforeModelCallback runs the plugin chain's before_model hook first,
// then the agent's own before_model callbacks. Either may short-circuit the
// model call by returning a non-nil response.
func (f *LLMFlow) handleBeforeModelCallback(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest, modelResponseEvent *types.Event) (*types.LLMResponse, error) {
	cc := types.NewCallbackContext(ic).WithEventActions(modelResponseEvent.Actions)

	if response, err := ic.Plugins.BeforeModel(cc, request); err != nil || response != nil {
		return response, err
	}

	llmAgent, ok := ic.Agent.AsLLMAgent()
	if !ok {
		return nil, nil
	}

	for _, callback := range llmAgent.BeforeModelCallbacks() {
		beforeModelCallbackContent, err := callback(cc, request)
		if err != nil {
			return nil, err
		}
		if beforeModelCallbackContent != nil {
			return beforeModelCallbackContent, nil
		}
	}

	return nil, nil
}

// handleAfterModelCallback runs the agent's own after_model callbacks, then
// the plugin chain's after_model hook, either of which may replace the
// response.
func (f *LLMFlow) handleAfterModelCallback(ctx context.Context, ic *types.InvocationContext, response *types.LLMResponse, modelResponseEvent *types.Event) (*types.LLMResponse, error) {
	cc := types.NewCallbackContext(ic).WithEventActions(modelResponseEvent.Actions)

	var replaced *types.LLMResponse
	if llmAgent, ok := ic.Agent.AsLLMAgent(); ok {
		for _, callback := range llmAgent.AfterModelCallbacks() {
			afterModelCallbackContent, err := callback(cc, response)
			if err != nil {
				return nil, err
			}
			if afterModelCallbackContent != nil {
				response = afterModelCallbackContent
				replaced = afterModelCallbackContent
			}
		}
	}

	if replacement, err := ic.Plugins.AfterModel(cc, response); err != nil || replacement != nil {
		return replacement, err
	}

	return replaced, nil
}

// handleModelErrorCallback runs the plugin chain's on_model_error hook,
// giving plugins a chance to recover a failed model call.
func (f *LLMFlow) handleModelErrorCallback(ctx context.Context, ic *types.InvocationContext, request *types.LLMRequest, modelErr error, modelResponseEvent *types.Event) (*types.LLMResponse, error) {
	cc := types.NewCallbackContext(ic).WithEventActions(modelResponseEvent.Actions)
	return ic.Plugins.OnModelError(cc, request, modelErr)
}

func (f *LLMFlow) finalizeModelResponseEvent(ctx context.Context, request *types.LLMRequest, response *types.LLMResponse, modelResponseEvent *types.Event) *types.Event {
	if modelResponseEvent.Content != nil {
		funcCalls := modelResponseEvent.GetFunctionCalls()
		if len(funcCalls) > 0 {
			PopulateClientFunctionCallID(ctx, modelResponseEvent)
			modelResponseEvent.LongRunningToolIDs.Insert(GetLongRunningFunctionCalls(ctx, funcCalls, request.ToolMap).UnsortedList()...)
		}
	}
	return modelResponseEvent
}

// getLLM extracts the LLM model from the invocation context
func (f *LLMFlow) getLLM(ctx context.Context, ic *types.InvocationContext) types.Model {
	llmAgent, _ := ic.Agent.AsLLMAgent()
	model, err := llmAgent.CanonicalModel(ctx)
	if err != nil {
		panic(fmt.Errorf("LLMFlow.getLLM: %w", err))
	}
	return model
}
