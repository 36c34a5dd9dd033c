// Package sandbox executes untrusted student Python in throwaway Docker
// containers with hard resource limits.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

const (
	containerUser = "65534" // nobody
	cpuQuota      = 50000   // 0.5 CPU
	pidsLimit     = 64
)

// Result carries the run outcome; exactly one of Output/Error is meaningful
// for the happy/sad path, mirroring the original {output, error} payload.
type Result struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

type Config struct {
	Image          string
	TimeoutSeconds int
	MemoryLimitMB  int
	MaxConcurrent  int
	MaxPerUser     int
}

// Runner executes a validated code submission and returns its output.
type Runner interface {
	Run(ctx context.Context, userID, code string) (*Result, error)
}

// DockerRunner implements Runner against the Docker API.
type DockerRunner struct {
	cli *client.Client
	cfg Config

	global chan struct{}

	mu      sync.Mutex
	perUser map[string]chan struct{}
}

func NewDockerRunner(cfg Config) (*DockerRunner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 50
	}
	if cfg.MaxPerUser <= 0 {
		cfg.MaxPerUser = 10
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 5
	}
	return &DockerRunner{
		cli:     cli,
		cfg:     cfg,
		global:  make(chan struct{}, cfg.MaxConcurrent),
		perUser: make(map[string]chan struct{}),
	}, nil
}

func (r *DockerRunner) userSlot(userID string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.perUser[userID]
	if !ok {
		slot = make(chan struct{}, r.cfg.MaxPerUser)
		r.perUser[userID] = slot
	}
	return slot
}

// Run creates a one-shot container, waits for it (bounded by the wall-clock
// timeout), and collects stdout/stderr. The container never gets network
// access and is force-removed on every path.
func (r *DockerRunner) Run(ctx context.Context, userID, code string) (*Result, error) {
	slot := r.userSlot(userID)
	select {
	case slot <- struct{}{}:
		defer func() { <-slot }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r.global <- struct{}{}:
		defer func() { <-r.global }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	timeout := time.Duration(r.cfg.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	config := &container.Config{
		Image:           r.cfg.Image,
		User:            containerUser,
		WorkingDir:      "/tmp",
		NetworkDisabled: true,
		Cmd:             []string{"python3", "-I", "-S", "-c", code},
		Env:             []string{"PYTHONSAFEPATH=1", "PYTHONNOUSERSITE=1", "USER_ID=" + userID},
	}
	hostConfig := &container.HostConfig{
		ReadonlyRootfs: true,
		Resources: container.Resources{
			Memory:    int64(r.cfg.MemoryLimitMB) * 1024 * 1024,
			CPUQuota:  cpuQuota,
			PidsLimit: ptr(int64(pidsLimit)),
		},
		Tmpfs: map[string]string{"/tmp": "rw,noexec,nosuid,size=1m"},
	}

	resp, err := r.cli.ContainerCreate(runCtx, config, hostConfig, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	defer func() {
		// Removal uses a fresh context so a timed-out run still cleans up.
		rmCtx, rmCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer rmCancel()
		_ = r.cli.ContainerRemove(rmCtx, resp.ID, container.RemoveOptions{Force: true})
	}()

	if err := r.cli.ContainerStart(runCtx, resp.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	statusCh, errCh := r.cli.ContainerWait(runCtx, resp.ID, container.WaitConditionNotRunning)

	var exitCode int64
	select {
	case status := <-statusCh:
		exitCode = status.StatusCode
	case err := <-errCh:
		if errors.Is(err, context.DeadlineExceeded) || runCtx.Err() != nil {
			return &Result{Error: fmt.Sprintf("Execution timed out (%ds limit)", r.cfg.TimeoutSeconds)}, nil
		}
		return nil, fmt.Errorf("wait container: %w", err)
	case <-runCtx.Done():
		return &Result{Error: fmt.Sprintf("Execution timed out (%ds limit)", r.cfg.TimeoutSeconds)}, nil
	}

	stdout, stderr, err := r.collectLogs(resp.ID)
	if err != nil {
		return nil, err
	}

	if exitCode != 0 {
		return &Result{Error: "Runtime error: " + strings.TrimSpace(stderr)}, nil
	}
	return &Result{
		Output: strings.TrimSpace(stdout),
		Error:  strings.TrimSpace(stderr),
	}, nil
}

func (r *DockerRunner) collectLogs(containerID string) (string, string, error) {
	logCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reader, err := r.cli.ContainerLogs(logCtx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return "", "", fmt.Errorf("read container logs: %w", err)
	}
	defer reader.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, reader); err != nil {
		return "", "", fmt.Errorf("demux container logs: %w", err)
	}
	return stdout.String(), stderr.String(), nil
}

func ptr[T any](v T) *T {
	return &v
}
