package ports

import "context"

// CommandRunner executes a composed shell command non-interactively and
// captures its combined stdout+stderr.
//
// Implementations must never block on interactive prompts and must bound the
// command with a configurable timeout, surfacing expiry as
// domain.ErrSolverTimedOut. The combined output is returned even when the
// command fails, so callers can classify the failure text.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes command with `sh -c` in dir with the extra environment
	// entries appended to the process environment.
	Run(ctx context.Context, dir string, env []string, command string) (output string, err error)
}
