// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowstack/agentkit-go/types"
)

// InMemoryService is an in-memory implementation of the [types.SessionService].
type InMemoryService struct {
	// sessions is a map from app name to a map from user ID to a map from session ID to session.
	sessions map[string]map[string]map[string]*session

	// userState is a map from app name to a map from user ID to a map from key to value.
	userState map[string]map[string]map[string]any

	// appState is a map from app name to a map from key to value.
	appState map[string]map[string]any

	logger *slog.Logger
	mu     sync.RWMutex
}

var _ types.SessionService = (*InMemoryService)(nil)

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		sessions:  make(map[string]map[string]map[string]*session),
		userState: make(map[string]map[string]map[string]any),
		appState:  make(map[string]map[string]any),
		logger:    slog.Default(),
	}
}

// CreateSession creates a new session.
//
// Returns [types.ErrAlreadyExists] if a session already exists under
// (appName, userID, sessionID).
func (s *InMemoryService) CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "Creating session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if byUser, ok := s.sessions[appName]; ok {
		if byID, ok := byUser[userID]; ok {
			if _, ok := byID[sessionID]; ok {
				return nil, fmt.Errorf("session %s for user %s in app %s: %w", sessionID, userID, appName, types.ErrAlreadyExists)
			}
		}
	}

	appDelta, userDelta, sessionState := extractDeltas(state)
	if len(appDelta) > 0 {
		if _, ok := s.appState[appName]; !ok {
			s.appState[appName] = make(map[string]any)
		}
		maps.Copy(s.appState[appName], appDelta)
	}
	if len(userDelta) > 0 {
		if _, ok := s.userState[appName]; !ok {
			s.userState[appName] = make(map[string]map[string]any)
		}
		if _, ok := s.userState[appName][userID]; !ok {
			s.userState[appName][userID] = make(map[string]any)
		}
		maps.Copy(s.userState[appName][userID], userDelta)
	}

	ses := NewSession(appName, userID, sessionID, sessionState, time.Now())

	if _, ok := s.sessions[appName]; !ok {
		s.sessions[appName] = make(map[string]map[string]*session)
	}
	if _, ok := s.sessions[appName][userID]; !ok {
		s.sessions[appName][userID] = make(map[string]*session)
	}
	s.sessions[appName][userID][sessionID] = ses

	return s.mergeState(appName, userID, s.copySession(ses)), nil
}

// GetSession retrieves a session by ID.
//
// Returns [types.ErrNotFound] if no session exists under
// (appName, userID, sessionID).
func (s *InMemoryService) GetSession(ctx context.Context, appName, userID, sessionID string, config *types.GetSessionConfig) (types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.InfoContext(ctx, "Getting session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	stored, err := s.lookup(appName, userID, sessionID)
	if err != nil {
		return nil, err
	}

	copied := s.copySession(stored)

	if config != nil {
		events := copied.events
		if !config.AfterTimestamp.IsZero() {
			events = filterEventsAfter(events, config.AfterTimestamp)
		}
		if config.NumRecentEvents > 0 && config.NumRecentEvents < len(events) {
			events = events[len(events)-config.NumRecentEvents:]
		}
		copied.events = events
	}

	return s.mergeState(appName, userID, copied), nil
}

// filterEventsAfter returns the events with a timestamp strictly after t.
func filterEventsAfter(events []*types.Event, t time.Time) []*types.Event {
	filtered := make([]*types.Event, 0, len(events))
	for _, event := range events {
		if event.Timestamp.After(t) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// ListSessions lists all sessions for a user.
func (s *InMemoryService) ListSessions(ctx context.Context, appName, userID string) ([]types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.InfoContext(ctx, "Listing sessions",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
	)

	emptyResponse := []types.Session{}

	if _, ok := s.sessions[appName]; !ok {
		return emptyResponse, nil
	}
	if _, ok := s.sessions[appName][userID]; !ok {
		return emptyResponse, nil
	}

	sessionsWithoutEvents := make([]types.Session, 0, len(s.sessions[appName][userID]))
	for _, ses := range s.sessions[appName][userID] {
		copiedSession := NewSession(ses.AppName(), ses.UserID(), ses.ID(), make(map[string]any), ses.LastUpdateTime())
		sessionsWithoutEvents = append(sessionsWithoutEvents, copiedSession)
	}

	return sessionsWithoutEvents, nil
}

// DeleteSession deletes a session.
//
// Returns [types.ErrNotFound] if no session exists under
// (appName, userID, sessionID).
func (s *InMemoryService) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "Deleting session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	if _, err := s.lookup(appName, userID, sessionID); err != nil {
		return err
	}

	delete(s.sessions[appName][userID], sessionID)
	return nil
}

// AppendEvent appends an event to a session, applying its state delta to the
// app/user/session scopes it addresses.
//
// A partial event (streaming chunk not yet finalized) is returned unchanged
// without touching the store or scoped state. Non-partial events are stamped
// with the current time, scrubbed of any temp-scoped delta entries, and
// committed.
//
// Returns [types.ErrNotFound] if the session is not tracked by this service.
func (s *InMemoryService) AppendEvent(ctx context.Context, ses types.Session, event *types.Event) (*types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appName := ses.AppName()
	userID := ses.UserID()
	sessionID := ses.ID()

	partial := event.LLMResponse != nil && event.Partial

	s.logger.InfoContext(ctx, "Appending event to session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
		slog.Bool("partial", partial),
	)

	if partial {
		return event, nil
	}

	storedSession, err := s.lookup(appName, userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event.Timestamp = now

	if event.Actions != nil && len(event.Actions.StateDelta) > 0 {
		appDelta, userDelta, sessionDelta := extractDeltas(event.Actions.StateDelta)

		if len(appDelta) > 0 {
			if _, ok := s.appState[appName]; !ok {
				s.appState[appName] = make(map[string]any)
			}
			maps.Copy(s.appState[appName], appDelta)
		}

		if len(userDelta) > 0 {
			if _, ok := s.userState[appName]; !ok {
				s.userState[appName] = make(map[string]map[string]any)
			}
			if _, ok := s.userState[appName][userID]; !ok {
				s.userState[appName][userID] = make(map[string]any)
			}
			maps.Copy(s.userState[appName][userID], userDelta)
		}

		if len(sessionDelta) > 0 {
			maps.Copy(storedSession.state, sessionDelta)
		}

		event.Actions.StateDelta = trimTempDelta(event.Actions.StateDelta)
	}

	ses.AddEvent(event)
	ses.SetLastUpdateTime(now)

	storedSession.AddEvent(event)
	storedSession.SetLastUpdateTime(now)

	return event, nil
}

// ListEvents lists events for a session.
func (s *InMemoryService) ListEvents(ctx context.Context, appName, userID, sessionID string, maxEvents int, since *time.Time) ([]types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, err := s.lookup(appName, userID, sessionID)
	if err != nil {
		return nil, err
	}

	events := stored.Events()
	if since != nil {
		events = filterEventsAfter(events, *since)
	}
	if maxEvents > 0 && maxEvents < len(events) {
		events = events[len(events)-maxEvents:]
	}

	result := make([]types.Event, len(events))
	for i, event := range events {
		result[i] = *event
	}
	return result, nil
}

// lookup returns the stored session under (appName, userID, sessionID), or
// [types.ErrNotFound] wrapped with context if it does not exist. Callers
// must hold s.mu.
func (s *InMemoryService) lookup(appName, userID, sessionID string) (*session, error) {
	byUser, ok := s.sessions[appName]
	if !ok {
		return nil, fmt.Errorf("app %s: %w", appName, types.ErrNotFound)
	}
	byID, ok := byUser[userID]
	if !ok {
		return nil, fmt.Errorf("user %s for app %s: %w", userID, appName, types.ErrNotFound)
	}
	ses, ok := byID[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s for user %s in app %s: %w", sessionID, userID, appName, types.ErrNotFound)
	}
	return ses, nil
}

// copySession creates a deep copy of a session.
func (s *InMemoryService) copySession(ses *session) *session {
	copiedSession := NewSession(ses.AppName(), ses.UserID(), ses.ID(), make(map[string]any), ses.LastUpdateTime())
	copiedSession.AddEvent(ses.Events()...)
	maps.Copy(copiedSession.state, ses.State())
	return copiedSession
}

// mergeState merges app and user state into the session state, returning
// the session as the [types.Session] interface callers observe.
func (s *InMemoryService) mergeState(appName, userID string, ses *session) types.Session {
	app := s.appState[appName]
	user := s.userState[appName][userID]
	ses.state = mergeStates(app, user, ses.state)
	return ses
}
