// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/types"
)

// Config configures a [Runner].
type Config struct {
	// AppName names the application this runner serves. Required.
	AppName string

	// Agent is the root of the agent tree driven by this runner. Required.
	Agent types.Agent

	// SessionService stores sessions and their event history. Required.
	SessionService types.SessionService

	// ArtifactService optionally stores binary artifacts produced during a
	// run.
	ArtifactService types.ArtifactService

	// MemoryService optionally indexes past sessions for recall.
	MemoryService types.MemoryService

	// Plugins are assembled into a [types.PluginChain] in order. Plugin
	// names must be unique.
	Plugins []*types.Plugin
}

// Runner drives an agent tree for a single application.
type Runner struct {
	appName         string
	rootAgent       types.Agent
	sessionService  types.SessionService
	artifactService types.ArtifactService
	memoryService   types.MemoryService
	plugins         *types.PluginChain

	logger *slog.Logger
}

// New creates a [Runner] from cfg.
func New(cfg Config) (*Runner, error) {
	if cfg.AppName == "" {
		return nil, errors.New("runner: AppName is required")
	}
	if cfg.Agent == nil {
		return nil, errors.New("runner: Agent is required")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("runner: SessionService is required")
	}

	if err := types.ValidateUniqueNames(cfg.Agent); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	chain, err := types.NewPluginChain(cfg.Plugins)
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	return &Runner{
		appName:         cfg.AppName,
		rootAgent:       cfg.Agent,
		sessionService:  cfg.SessionService,
		artifactService: cfg.ArtifactService,
		memoryService:   cfg.MemoryService,
		plugins:         chain,
		logger:          slog.Default().With("component", "runner", "app_name", cfg.AppName),
	}, nil
}

// Run drives the root agent for one user turn and streams the events it
// produces. Every non-partial event yielded to the caller has already been
// committed to the session.
func (r *Runner) Run(ctx context.Context, userID, sessionID string, msg *genai.Content, runConfig *types.RunConfig) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		session, err := r.resolveSession(ctx, userID, sessionID)
		if err != nil {
			yield(nil, err)
			return
		}

		ictx := types.NewInvocationContext(r.rootAgent, session, r.sessionService,
			types.WithArtifactService(r.artifactService),
			types.WithMemoryService(r.memoryService),
			types.WithPlugins(r.plugins),
			types.WithRunConfig(runConfig),
		)
		ictx.InvocationID = types.NewInvocationContextID()

		defer r.plugins.AfterRun(ictx)

		userEvent, err := r.appendUserMessage(ctx, ictx, session, msg)
		if err != nil {
			yield(nil, err)
			return
		}
		if userEvent != nil && !yield(userEvent, nil) {
			return
		}

		beforeRunContent, err := r.plugins.BeforeRun(ictx)
		if err != nil {
			yield(nil, err)
			return
		}
		if beforeRunContent != nil {
			event, err := r.commitEvent(ctx, ictx, session, types.NewEvent().
				WithInvocationID(ictx.InvocationID).
				WithAuthor(r.rootAgent.Name()).
				WithContent(beforeRunContent).
				WithActions(types.NewEventActions()))
			if err != nil {
				yield(nil, err)
				return
			}
			yield(event, nil)
			return
		}

		for event, err := range r.rootAgent.Run(ctx, ictx) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			committed, err := r.commitEvent(ctx, ictx, session, event)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			if !yield(committed, nil) {
				return
			}
		}
	}
}

// resolveSession fetches the named session, creating it with empty state if
// it does not yet exist.
func (r *Runner) resolveSession(ctx context.Context, userID, sessionID string) (types.Session, error) {
	session, err := r.sessionService.GetSession(ctx, r.appName, userID, sessionID, nil)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("runner: resolve session: %w", err)
	}

	session, err = r.sessionService.CreateSession(ctx, r.appName, userID, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("runner: create session: %w", err)
	}
	return session, nil
}

// appendUserMessage runs the on_user_message hook and commits the resulting
// content (or the original msg, if no plugin rewrote it) as a "user"
// authored event, returning the committed event so the caller can yield it.
// A nil msg (out-of-band turns, e.g. resuming after a tool confirmation) is
// a no-op.
func (r *Runner) appendUserMessage(ctx context.Context, ictx *types.InvocationContext, session types.Session, msg *genai.Content) (*types.Event, error) {
	if msg == nil {
		return nil, nil
	}

	rewritten, err := r.plugins.OnUserMessage(ictx, msg)
	if err != nil {
		return nil, fmt.Errorf("runner: on_user_message: %w", err)
	}
	content := msg
	if rewritten != nil {
		content = rewritten
	}
	ictx.UserContent = content

	event := types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor("user").
		WithContent(content).
		WithActions(types.NewEventActions())

	appended, err := r.sessionService.AppendEvent(ctx, session, event)
	if err != nil {
		return nil, fmt.Errorf("runner: append user message: %w", err)
	}

	return appended, nil
}

// commitEvent runs the on_event hook, persists the (possibly rewritten)
// event unless it's a streaming partial, and returns the event the caller
// should see.
func (r *Runner) commitEvent(ctx context.Context, ictx *types.InvocationContext, session types.Session, event *types.Event) (*types.Event, error) {
	rewritten, err := r.plugins.OnEvent(ictx, event)
	if err != nil {
		return nil, fmt.Errorf("runner: on_event: %w", err)
	}
	if rewritten != nil {
		event = rewritten
	}

	if event.LLMResponse != nil && event.Partial {
		return event, nil
	}

	appended, err := r.sessionService.AppendEvent(ctx, session, event)
	if err != nil {
		return nil, fmt.Errorf("runner: append event: %w", err)
	}
	return appended, nil
}

// RootAgent returns the agent tree this runner drives.
func (r *Runner) RootAgent() types.Agent {
	return r.rootAgent
}

// AppName returns the application name this runner serves.
func (r *Runner) AppName() string {
	return r.appName
}
