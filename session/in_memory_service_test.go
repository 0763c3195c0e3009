// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowstack/agentkit-go/session"
	"github.com/flowstack/agentkit-go/types"
)

// TestScopedStatePropagation checks cross-session visibility: an app-scoped and a
// user-scoped write on one session must be visible from sibling sessions
// that share the app or user, a temp-scoped write must never persist or
// leak, and an unprefixed write stays local to the session it was made on.
func TestScopedStatePropagation(t *testing.T) {
	ctx := context.Background()
	svc := session.NewInMemoryService()

	s1, err := svc.CreateSession(ctx, "app1", "u1", "s1", nil)
	if err != nil {
		t.Fatalf("create s1: %v", err)
	}
	if _, err := svc.CreateSession(ctx, "app1", "u1", "s2", nil); err != nil {
		t.Fatalf("create s2: %v", err)
	}
	if _, err := svc.CreateSession(ctx, "app1", "u2", "s3", nil); err != nil {
		t.Fatalf("create s3: %v", err)
	}

	event := types.NewEvent().WithActions(&types.EventActions{
		StateDelta: map[string]any{
			"app:m":  "X",
			"user:p": "Y",
			"temp:t": "Z",
			"c":      1,
		},
	})
	appended, err := svc.AppendEvent(ctx, s1, event)
	if err != nil {
		t.Fatalf("append event: %v", err)
	}
	if _, ok := appended.Actions.StateDelta["temp:t"]; ok {
		t.Error("persisted event must not carry a temp: key in its state_delta")
	}

	got1, err := svc.GetSession(ctx, "app1", "u1", "s1", nil)
	if err != nil {
		t.Fatalf("get s1: %v", err)
	}
	wantS1 := map[string]any{"app:m": "X", "user:p": "Y", "c": 1}
	for k, v := range wantS1 {
		if got1.State()[k] != v {
			t.Errorf("s1.state[%q] = %v, want %v", k, got1.State()[k], v)
		}
	}
	if _, ok := got1.State()["temp:t"]; ok {
		t.Error("s1.state must never contain a temp: key")
	}

	got2, err := svc.GetSession(ctx, "app1", "u1", "s2", nil)
	if err != nil {
		t.Fatalf("get s2: %v", err)
	}
	if got2.State()["app:m"] != "X" || got2.State()["user:p"] != "Y" {
		t.Errorf("s2 (same app+user) should observe app/user scoped writes, got %+v", got2.State())
	}
	if _, ok := got2.State()["c"]; ok {
		t.Error("s2 must not observe s1's session-local key c")
	}

	got3, err := svc.GetSession(ctx, "app1", "u2", "s3", nil)
	if err != nil {
		t.Fatalf("get s3: %v", err)
	}
	if got3.State()["app:m"] != "X" {
		t.Errorf("s3 (same app, different user) should observe the app-scoped write, got %+v", got3.State())
	}
	if _, ok := got3.State()["user:p"]; ok {
		t.Error("s3 (different user) must not observe u1's user-scoped write")
	}
	if _, ok := got3.State()["c"]; ok {
		t.Error("s3 must not observe s1's session-local key c")
	}
}

// TestPartialEventNotPersisted checks that a partial
// event never appears in the session's committed events and never mutates
// state.
func TestPartialEventNotPersisted(t *testing.T) {
	ctx := context.Background()
	svc := session.NewInMemoryService()

	s, err := svc.CreateSession(ctx, "app", "u", "s", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	partial := types.NewEvent().
		WithLLMResponse(&types.LLMResponse{Partial: true}).
		WithActions(&types.EventActions{StateDelta: map[string]any{"x": 1}})
	if _, err := svc.AppendEvent(ctx, s, partial); err != nil {
		t.Fatalf("append partial: %v", err)
	}

	got, err := svc.GetSession(ctx, "app", "u", "s", nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Events()) != 0 {
		t.Errorf("expected 0 persisted events, got %d", len(got.Events()))
	}
	if _, ok := got.State()["x"]; ok {
		t.Error("a partial event must not mutate session state")
	}
}

// TestAppendEventNotFound exercises the not_found error taxonomy entry for
// a session the service does not track.
func TestAppendEventNotFound(t *testing.T) {
	ctx := context.Background()
	svc := session.NewInMemoryService()
	ghost := session.NewSession("app", "u", "ghost", nil, time.Now())

	_, err := svc.AppendEvent(ctx, ghost, types.NewEvent())
	if err == nil {
		t.Fatal("expected not_found error for untracked session")
	}
}

// TestCreateSessionSplitsInitialState checks that initial state handed to
// CreateSession is routed to its scope store the same way an appended
// event's delta is: an app-scoped entry is visible to a sibling user's
// session, and a temp-scoped entry is dropped outright.
func TestCreateSessionSplitsInitialState(t *testing.T) {
	ctx := context.Background()
	svc := session.NewInMemoryService()

	created, err := svc.CreateSession(ctx, "app", "u1", "s1", map[string]any{
		"app:mode": "prod",
		"user:tz":  "UTC",
		"temp:x":   "gone",
		"local":    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.State()["app:mode"] != "prod" || created.State()["user:tz"] != "UTC" || created.State()["local"] != true {
		t.Errorf("created session state missing scoped entries: %+v", created.State())
	}
	if _, ok := created.State()["temp:x"]; ok {
		t.Error("temp-scoped initial state must be discarded")
	}

	other, err := svc.CreateSession(ctx, "app", "u2", "s2", nil)
	if err != nil {
		t.Fatalf("create sibling: %v", err)
	}
	if other.State()["app:mode"] != "prod" {
		t.Errorf("sibling user should observe app-scoped initial state, got %+v", other.State())
	}
	if _, ok := other.State()["user:tz"]; ok {
		t.Error("sibling user must not observe another user's user-scoped state")
	}
	if _, ok := other.State()["local"]; ok {
		t.Error("sibling user must not observe another session's local state")
	}
}
