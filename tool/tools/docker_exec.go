// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"google.golang.org/genai"

	"github.com/flowstack/agentkit-go/tool"
	"github.com/flowstack/agentkit-go/types"
)

// DockerExecTool runs a shell command inside an ephemeral, network-isolated
// Docker container and reports its stdout, stderr, and exit code back to the
// model as a function response.
//
// Each call creates a fresh container from Image, execs the command, collects
// output, and removes the container; nothing persists across calls.
type DockerExecTool struct {
	*tool.Tool

	client      *client.Client
	image       string
	workDir     string
	timeout     time.Duration
	memoryLimit int64
	cpuLimit    int64
	logger      *slog.Logger
}

var _ types.Tool = (*DockerExecTool)(nil)

// DockerExecToolOption configures a [DockerExecTool].
type DockerExecToolOption func(*DockerExecTool)

// WithDockerExecImage sets the image each container is created from.
// Defaults to "alpine:latest".
func WithDockerExecImage(image string) DockerExecToolOption {
	return func(t *DockerExecTool) { t.image = image }
}

// WithDockerExecTimeout bounds how long a single command may run before it
// is killed. Defaults to 30s.
func WithDockerExecTimeout(d time.Duration) DockerExecToolOption {
	return func(t *DockerExecTool) { t.timeout = d }
}

// WithDockerExecResourceLimits sets the container's memory limit in bytes
// and CPU limit in nano-CPUs (1e9 == one full core).
func WithDockerExecResourceLimits(memoryBytes, nanoCPUs int64) DockerExecToolOption {
	return func(t *DockerExecTool) {
		t.memoryLimit = memoryBytes
		t.cpuLimit = nanoCPUs
	}
}

// WithDockerExecLogger sets the tool's logger.
func WithDockerExecLogger(logger *slog.Logger) DockerExecToolOption {
	return func(t *DockerExecTool) { t.logger = logger }
}

// NewDockerExecTool creates a [DockerExecTool] against the Docker daemon
// reachable via the environment (DOCKER_HOST and friends).
func NewDockerExecTool(ctx context.Context, opts ...DockerExecToolOption) (*DockerExecTool, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create Docker client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := dockerClient.Ping(pingCtx); err != nil {
		dockerClient.Close()
		return nil, fmt.Errorf("ping Docker daemon: %w", err)
	}

	t := &DockerExecTool{
		Tool:        tool.NewTool("docker_exec", "Runs a shell command inside a sandboxed, network-isolated container and returns its stdout, stderr, and exit code.", false),
		client:      dockerClient,
		image:       "alpine:latest",
		workDir:     "/workspace",
		timeout:     30 * time.Second,
		memoryLimit: 256 * 1024 * 1024,
		cpuLimit:    1_000_000_000,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// GetDeclaration implements [types.Tool].
func (t *DockerExecTool) GetDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"command": {
					Type:        genai.TypeString,
					Description: "the shell command to run, interpreted by /bin/sh -c",
				},
			},
			Required: []string{"command"},
		},
	}
}

// Run implements [types.Tool].
func (t *DockerExecTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	command, _ := args["command"].(string)
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("docker_exec: %q argument is required", "command")
	}

	containerID, err := t.createContainer(ctx)
	if err != nil {
		return nil, err
	}
	defer t.removeContainer(context.Background(), containerID)

	execCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	stdout, stderr, exitCode, err := t.exec(execCtx, containerID, []string{"/bin/sh", "-c", command})
	if err != nil {
		return nil, fmt.Errorf("docker_exec: %w", err)
	}

	return map[string]any{
		"stdout":    stdout,
		"stderr":    stderr,
		"exit_code": exitCode,
	}, nil
}

func (t *DockerExecTool) createContainer(ctx context.Context) (string, error) {
	createCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := t.ensureImage(createCtx); err != nil {
		return "", fmt.Errorf("ensure image %q: %w", t.image, err)
	}

	resp, err := t.client.ContainerCreate(
		createCtx,
		&container.Config{
			Image:      t.image,
			WorkingDir: t.workDir,
			Cmd:        []string{"sleep", "infinity"},
			Tty:        false,
		},
		&container.HostConfig{
			Resources: container.Resources{
				Memory:   t.memoryLimit,
				NanoCPUs: t.cpuLimit,
			},
			NetworkMode: "none",
			AutoRemove:  false,
		},
		nil, nil, "",
	)
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}

	if err := t.client.ContainerStart(createCtx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	return resp.ID, nil
}

func (t *DockerExecTool) ensureImage(ctx context.Context) error {
	images, err := t.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return err
	}
	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == t.image {
				return nil
			}
		}
	}

	reader, err := t.client.ImagePull(ctx, t.image, image.PullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()

	// Drain the pull progress stream; the caller only needs completion.
	buf := make([]byte, 32*1024)
	for {
		if _, err := reader.Read(buf); err != nil {
			break
		}
	}
	return nil
}

func (t *DockerExecTool) exec(ctx context.Context, containerID string, cmd []string) (stdout, stderr string, exitCode int, err error) {
	execResp, err := t.client.ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd:          cmd,
		WorkingDir:   t.workDir,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", "", 0, fmt.Errorf("create exec: %w", err)
	}

	attachResp, err := t.client.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", "", 0, fmt.Errorf("attach exec: %w", err)
	}
	defer attachResp.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdoutBuf, &stderrBuf, attachResp.Reader); err != nil {
		return "", "", 0, fmt.Errorf("read exec output: %w", err)
	}

	inspect, err := t.client.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return "", "", 0, fmt.Errorf("inspect exec: %w", err)
	}

	return stdoutBuf.String(), stderrBuf.String(), inspect.ExitCode, nil
}

func (t *DockerExecTool) removeContainer(ctx context.Context, containerID string) {
	if err := t.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil {
		t.logger.Warn("docker_exec: failed to remove container", "container_id", containerID, "error", err)
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *DockerExecTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	request.AppendTools(t)
	return nil
}

// Close releases the underlying Docker client connection.
func (t *DockerExecTool) Close() error {
	return t.client.Close()
}
