// Package shell provides the solver command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds a single solver invocation. Solvers are the only
// long-latency operation in an update run and must never hang indefinitely.
const DefaultTimeout = 10 * time.Minute

// nonInteractiveEnv forces the solver and any git subprocesses it spawns to
// fail fast instead of blocking on credential prompts.
var nonInteractiveEnv = []string{
	"GIT_TERMINAL_PROMPT=0",
	"GIT_SSH_COMMAND=ssh -oBatchMode=yes",
	"POETRY_NO_INTERACTION=1",
	"PIP_NO_INPUT=1",
}

// Runner implements ports.CommandRunner using os/exec. Commands run under
// `sh -c` with combined stdout+stderr capture and a bounded timeout.
type Runner struct {
	logger  ports.Logger
	timeout time.Duration
}

// NewRunner creates a command runner with the given timeout; zero selects
// DefaultTimeout.
func NewRunner(logger ports.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the composed command in dir. The extra env entries are
// appended after the non-interactive defaults so callers can override them.
// Combined output is returned even on failure so it can be classified.
func (r *Runner) Run(ctx context.Context, dir string, env []string, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Info("running solver: " + command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec // command is composed by the orchestrator
	cmd.Dir = dir
	cmd.Env = append(append(os.Environ(), nonInteractiveEnv...), env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err == nil {
		return output, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		timeoutErr := zerr.Wrap(domain.ErrSolverTimedOut, "solver command timed out")
		timeoutErr = zerr.With(timeoutErr, "command", command)
		return output, zerr.With(timeoutErr, "timeout", r.timeout.String())
	}

	exitCode := -1 // unknown or signal
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	runErr := zerr.Wrap(err, "solver command failed")
	runErr = zerr.With(runErr, "command", command)
	return output, zerr.With(runErr, "exit_code", exitCode)
}
