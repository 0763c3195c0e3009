// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// BuildParentMap walks the agent tree rooted at root via depth-first search
// and returns a map from each descendant's name to its parent agent. The
// root itself is omitted.
func BuildParentMap(root Agent) map[string]Agent {
	parents := make(map[string]Agent)
	var walk func(node Agent)
	walk = func(node Agent) {
		for _, sub := range node.SubAgents() {
			parents[sub.Name()] = node
			walk(sub)
		}
	}
	walk(root)
	return parents
}

// ValidateUniqueNames walks the agent tree rooted at root via depth-first
// search, collecting agent names. It returns a [*DuplicateAgentNameError]
// for the first name it finds repeated; the search short-circuits on the
// first duplicate rather than collecting all of them.
func ValidateUniqueNames(root Agent) error {
	seen := make(map[string]bool)
	var walk func(node Agent) error
	walk = func(node Agent) error {
		if seen[node.Name()] {
			return NewDuplicateAgentNameError(node.Name())
		}
		seen[node.Name()] = true
		for _, sub := range node.SubAgents() {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
