// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"

	"github.com/flowstack/agentkit-go/types"
)

// ResolveConfig is the subset of [github.com/flowstack/agentkit-go/config.Config]
// that [Resolve] needs; kept narrow so this package does not import config
// (which would create an import cycle once config grows adapter-specific
// validation of its own).
type ResolveConfig struct {
	Provider  string
	ModelName string
	Project   string
	Location  string
}

// Resolve picks and constructs the [types.Model] adapter named by
// cfg.Provider ("genai", "anthropic", or "vertex").
func Resolve(ctx context.Context, cfg ResolveConfig) (types.Model, error) {
	switch cfg.Provider {
	case "genai", "":
		return NewGenaiModel(ctx, "", cfg.ModelName)
	case "anthropic":
		return NewAnthropicModel(ctx, cfg.ModelName, ClaudeModeAnthropic)
	case "vertex":
		return NewVertexModel(ctx, cfg.Project, cfg.Location, cfg.ModelName)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", types.ErrProviderUnavailable, cfg.Provider)
	}
}
