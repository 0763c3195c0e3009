// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"strings"

	"github.com/flowstack/agentkit-go/types"
)

// Scope is the state-key scope a prefix routes to.
type Scope int

const (
	// ScopeSession is the default scope: no recognized prefix, the key lives
	// only in the session's own state map.
	ScopeSession Scope = iota
	// ScopeApp is shared across all users of the app.
	ScopeApp
	// ScopeUser is shared across all sessions of one user within the app.
	ScopeUser
	// ScopeTemp is per-invocation only; never persisted.
	ScopeTemp
)

// scope classifies a state key by its prefix.
func scope(key string) Scope {
	switch {
	case strings.HasPrefix(key, types.AppPrefix):
		return ScopeApp
	case strings.HasPrefix(key, types.UserPrefix):
		return ScopeUser
	case strings.HasPrefix(key, types.TempPrefix):
		return ScopeTemp
	default:
		return ScopeSession
	}
}

// extractDeltas splits a flat state delta into its per-scope deltas.
// Prefixes are stripped from the app/user deltas; temp keys are discarded
// entirely; unprefixed keys pass through to the session delta unchanged.
func extractDeltas(delta map[string]any) (appDelta, userDelta, sessionDelta map[string]any) {
	appDelta = make(map[string]any)
	userDelta = make(map[string]any)
	sessionDelta = make(map[string]any)

	for key, value := range delta {
		switch scope(key) {
		case ScopeApp:
			appDelta[strings.TrimPrefix(key, types.AppPrefix)] = value
		case ScopeUser:
			userDelta[strings.TrimPrefix(key, types.UserPrefix)] = value
		case ScopeTemp:
			// discarded: temp keys never persist.
		default:
			sessionDelta[key] = value
		}
	}

	return appDelta, userDelta, sessionDelta
}

// mergeStates reattaches scope prefixes and unions app, user, and session
// state into the single merged view callers observe on a session read.
func mergeStates(app, user, session map[string]any) map[string]any {
	merged := make(map[string]any, len(app)+len(user)+len(session))
	for k, v := range session {
		merged[k] = v
	}
	for k, v := range app {
		merged[types.AppPrefix+k] = v
	}
	for k, v := range user {
		merged[types.UserPrefix+k] = v
	}
	return merged
}

// trimTempDelta returns a copy of delta with every `temp:`-prefixed key
// removed. A persisted event's state delta never carries a temp key.
func trimTempDelta(delta map[string]any) map[string]any {
	trimmed := make(map[string]any, len(delta))
	for key, value := range delta {
		if scope(key) == ScopeTemp {
			continue
		}
		trimmed[key] = value
	}
	return trimmed
}
