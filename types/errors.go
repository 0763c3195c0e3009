// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
)

// NotImplementedError is the error type for unimplemented behaiviour.
type NotImplementedError string

// Error returns a string representation of the [NotImplementedError].
func (e NotImplementedError) Error() string {
	return string(e)
}

// Sentinel errors for the error taxonomy.
//
// Session-service and construction-time failures are returned as values
// wrapping one of these with [fmt.Errorf] and `%w`, so callers can match
// with [errors.Is] regardless of the added context.
var (
	// ErrNotFound is returned when a session or artifact lookup misses.
	ErrNotFound = errors.New("not_found")

	// ErrAlreadyExists is returned by session creation when the
	// (app_name, user_id, session_id) key is already taken.
	ErrAlreadyExists = errors.New("already_exists")

	// ErrInvalidFilename is returned by artifact save when filename contains
	// a path separator.
	ErrInvalidFilename = errors.New("invalid_filename")

	// ErrTransferTargetMissing is surfaced as an error event, terminating the run,
	// when actions.transfer_to_agent names an agent absent from the tree.
	ErrTransferTargetMissing = errors.New("transfer_target_missing")

	// ErrProviderUnavailable is returned by a model adapter constructor when
	// the backing provider cannot be reached or configured (missing
	// credentials, unreachable endpoint).
	ErrProviderUnavailable = errors.New("provider_unavailable")

	// ErrArtifactBackendUnavailable is returned by an artifact service
	// constructor when the backing storage cannot be reached or configured.
	ErrArtifactBackendUnavailable = errors.New("artifact_backend_unavailable")
)

// DuplicatePluginsError is returned by plugin chain construction when two
// plugins share a name.
type DuplicatePluginsError struct {
	Names []string
}

// Error implements error.
func (e *DuplicatePluginsError) Error() string {
	return fmt.Sprintf("duplicate_plugins: %v", e.Names)
}

// NewDuplicatePluginsError returns a [*DuplicatePluginsError] for the given
// duplicate plugin names.
func NewDuplicatePluginsError(names ...string) error {
	return &DuplicatePluginsError{Names: names}
}

// DuplicateAgentNameError is returned by [ValidateUniqueNames] for the first
// name it finds repeated in the agent tree.
type DuplicateAgentNameError struct {
	Name string
}

// Error implements error.
func (e *DuplicateAgentNameError) Error() string {
	return fmt.Sprintf("duplicate_agent_name: %s", e.Name)
}

// NewDuplicateAgentNameError returns a [*DuplicateAgentNameError] for name.
func NewDuplicateAgentNameError(name string) error {
	return &DuplicateAgentNameError{Name: name}
}
