// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config assembles process-level configuration for the CLI harness
// and the domain-stack adapters (model provider, artifact backend) from flags
// and environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Provider selects which [github.com/flowstack/agentkit-go/model] adapter
// [github.com/flowstack/agentkit-go/model.Resolve]-style callers should construct.
type Provider string

const (
	// ProviderGenai talks to the Gemini Developer API.
	ProviderGenai Provider = "genai"

	// ProviderAnthropic talks to the Anthropic API.
	ProviderAnthropic Provider = "anthropic"

	// ProviderVertex talks to a Vertex AI-hosted Gemini endpoint.
	ProviderVertex Provider = "vertex"
)

// ArtifactBackend selects which [github.com/flowstack/agentkit-go/artifact]
// implementation to construct.
type ArtifactBackend string

const (
	// ArtifactBackendMemory is the in-process reference implementation.
	ArtifactBackendMemory ArtifactBackend = "memory"

	// ArtifactBackendGCS is the Google Cloud Storage-backed implementation.
	ArtifactBackendGCS ArtifactBackend = "gcs"
)

// Config is the process configuration for cmd/agentkit, populated from flags
// with environment-variable fallbacks.
type Config struct {
	// Provider selects the model adapter.
	Provider Provider

	// ModelName is the model name or Vertex endpoint path passed to the
	// resolved adapter; empty selects that adapter's own default.
	ModelName string

	// Project and Location configure the Vertex AI backend.
	Project  string
	Location string

	// ArtifactBackend selects the artifact service implementation.
	ArtifactBackend ArtifactBackend

	// GCSBucket names the bucket backing [ArtifactBackendGCS].
	GCSBucket string

	// MaxIterations overrides the flow loop's default iteration bound when
	// positive; see [github.com/flowstack/agentkit-go/flow/llmflow.DefaultMaxIterations].
	MaxIterations int

	// EnableDockerTool and EnableTranscribeTool gate the optional
	// Docker-sandboxed code-execution and Cloud Speech transcription tools.
	EnableDockerTool     bool
	EnableTranscribeTool bool
}

// ErrUnknownProvider is returned when a --provider flag names neither
// "genai", "anthropic", nor "vertex".
var ErrUnknownProvider = errors.New("unknown_provider")

// ErrUnknownArtifactBackend is returned when an --artifacts flag names
// neither "memory" nor "gcs".
var ErrUnknownArtifactBackend = errors.New("unknown_artifact_backend")

// Parse populates a [Config] from fs (not yet parsed against args) and
// environment-variable fallbacks. It loads ".env.local" and ".env" before
// reading any AGENTKIT_* variable; a variable already set in the system
// environment takes priority over both files, and ".env.local" takes
// priority over ".env".
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}

	var provider, artifactBackend string
	fs.StringVar(&provider, "provider", getenv("AGENTKIT_PROVIDER", string(ProviderGenai)), "model provider: genai, anthropic, or vertex")
	fs.StringVar(&cfg.ModelName, "model", os.Getenv("AGENTKIT_MODEL"), "model name (provider default if empty)")
	fs.StringVar(&cfg.Project, "project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "GCP project, for the vertex provider")
	fs.StringVar(&cfg.Location, "location", getenv("GOOGLE_CLOUD_LOCATION", "us-central1"), "GCP location, for the vertex provider")
	fs.StringVar(&artifactBackend, "artifacts", getenv("AGENTKIT_ARTIFACT_BACKEND", string(ArtifactBackendMemory)), "artifact backend: memory or gcs")
	fs.StringVar(&cfg.GCSBucket, "gcs-bucket", os.Getenv("AGENTKIT_GCS_BUCKET"), "GCS bucket, for the gcs artifact backend")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", 0, "override the flow loop's max model/tool round trips (0 = flow default)")
	fs.BoolVar(&cfg.EnableDockerTool, "enable-docker-tool", false, "register the Docker-sandboxed code execution tool")
	fs.BoolVar(&cfg.EnableTranscribeTool, "enable-transcribe-tool", false, "register the Cloud Speech transcription tool")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Provider = Provider(provider)
	switch cfg.Provider {
	case ProviderGenai, ProviderAnthropic, ProviderVertex:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	cfg.ArtifactBackend = ArtifactBackend(artifactBackend)
	switch cfg.ArtifactBackend {
	case ArtifactBackendMemory, ArtifactBackendGCS:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArtifactBackend, artifactBackend)
	}

	return cfg, nil
}

// loadEnvFiles loads ".env.local" then ".env" into the process environment
// read afterwards by [Parse]'s os.Getenv calls. godotenv.Load never
// overrides a variable that is already set, so the system environment wins
// over both files and ".env.local" wins over ".env". A missing file
// is not an error; any other read failure is logged to stderr and ignored,
// since a broken .env should not prevent a run that doesn't need it.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "config: load %s: %v\n", file, err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
