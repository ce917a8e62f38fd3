package ports

import (
	"context"

	"go.trai.ch/relock/internal/core/domain"
)

// Workspace is an isolated temporary copy of a project's files.
type Workspace interface {
	// Root returns the absolute path of the workspace directory.
	Root() string

	// ReadFile reads a file relative to the workspace root. Used to pick up
	// artifacts the solver wrote (e.g. the lock file).
	ReadFile(name string) (string, error)

	// Close removes the workspace. Callers defer Close immediately after
	// creation so cleanup happens on every exit path.
	Close() error
}

// WorkspaceFactory materializes project files into fresh sandbox workspaces.
// Each invocation gets a dedicated workspace; factories hold no mutable state
// shared between concurrent invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type WorkspaceFactory interface {
	Create(ctx context.Context, files []domain.ManagedFile) (Workspace, error)
}
