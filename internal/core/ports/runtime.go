package ports

import (
	"context"

	"go.trai.ch/relock/internal/core/domain"
)

// RuntimeManager determines which interpreter/runtime version a project
// requires and makes it available to the sandbox environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type RuntimeManager interface {
	// Detect inspects the working set for a required runtime version, in
	// priority order: explicit manifest constraint, pinned-version file,
	// runtime-declaration file. Returns false when nothing declares one.
	Detect(files domain.FileSet) (version string, ok bool)

	// Ensure makes the given runtime version available, installing it if it
	// is not already present. It returns environment entries ("KEY=VALUE")
	// that select the version for subsequent solver invocations.
	Ensure(ctx context.Context, version string) (env []string, err error)
}
