// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command agentkit is a minimal interactive harness around a single LLM agent:
// it resolves a model, wires in whichever domain tools were requested by
// flag, and streams one turn's worth of events from stdin to stdout.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	heredoc "github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/agent"
	"github.com/flowstack/agentkit-go/artifact"
	"github.com/flowstack/agentkit-go/config"
	"github.com/flowstack/agentkit-go/model"
	"github.com/flowstack/agentkit-go/pkg/logging"
	"github.com/flowstack/agentkit-go/runner"
	"github.com/flowstack/agentkit-go/session"
	"github.com/flowstack/agentkit-go/telemetry"
	"github.com/flowstack/agentkit-go/tool/tools"
	"github.com/flowstack/agentkit-go/types"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "agentkit:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("agentkit", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), heredoc.Doc(`
			agentkit runs a single conversational turn against an LLM agent.

			Usage:
			  agentkit [flags] <message>

			The message is read from the command line if given, otherwise from stdin.
		`))
		fs.PrintDefaults()
	}

	cfg, err := config.Parse(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := logging.NewContext(context.Background(), logger)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	shutdown, err := telemetry.ConfigureFromEnv(ctx, "agentkit")
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without it", "error", err)
	} else {
		defer shutdown(context.Background())
	}

	message := fs.Arg(0)
	if message == "" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return errors.New("no message provided on the command line or stdin")
		}
		message = scanner.Text()
	}

	llmModel, err := model.Resolve(ctx, model.ResolveConfig{
		Provider:  string(cfg.Provider),
		ModelName: cfg.ModelName,
		Project:   cfg.Project,
		Location:  cfg.Location,
	})
	if err != nil {
		return fmt.Errorf("resolve model: %w", err)
	}

	agentOpts := []agent.LLMAgentOption{
		agent.WithModel(llmModel),
		agent.WithInstruction("You are a helpful assistant."),
	}

	var toolCloser []func() error
	defer func() {
		for _, close := range toolCloser {
			if err := close(); err != nil {
				logger.Warn("tool shutdown failed", "error", err)
			}
		}
	}()

	if cfg.EnableDockerTool {
		dockerTool, err := tools.NewDockerExecTool(ctx)
		if err != nil {
			return fmt.Errorf("enable docker tool: %w", err)
		}
		agentOpts = append(agentOpts, agent.WithTools(dockerTool))
		toolCloser = append(toolCloser, dockerTool.Close)
	}
	if cfg.EnableTranscribeTool {
		transcribeTool, err := tools.NewTranscribeTool(ctx)
		if err != nil {
			return fmt.Errorf("enable transcribe tool: %w", err)
		}
		agentOpts = append(agentOpts, agent.WithTools(transcribeTool))
		toolCloser = append(toolCloser, transcribeTool.Close)
	}

	rootAgent, err := agent.NewLLMAgent(ctx, "agentkit_agent", agentOpts...)
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}

	artifactService, err := resolveArtifactService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("resolve artifact backend: %w", err)
	}
	if closer, ok := artifactService.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	run, err := runner.New(runner.Config{
		AppName:         "agentkit",
		Agent:           rootAgent,
		SessionService:  session.NewInMemoryService(),
		ArtifactService: artifactService,
	})
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	userID := "cli-user"
	sessionID := uuid.NewString()

	var runConfig *types.RunConfig
	if cfg.MaxIterations > 0 {
		runConfig = &types.RunConfig{MaxIterations: cfg.MaxIterations}
	}

	userMessage := genai.NewContentFromText(message, genai.RoleUser)

	for event, err := range run.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			if part.Text != "" {
				fmt.Println(part.Text)
			}
		}
	}

	return nil
}

func resolveArtifactService(ctx context.Context, cfg *config.Config) (types.ArtifactService, error) {
	switch cfg.ArtifactBackend {
	case config.ArtifactBackendGCS:
		if cfg.GCSBucket == "" {
			return nil, errors.New("--gcs-bucket is required for the gcs artifact backend")
		}
		return artifact.NewGCSService(ctx, cfg.GCSBucket)
	default:
		return artifact.NewInMemoryService(), nil
	}
}
