package ports

import "go.trai.ch/relock/internal/core/domain"

// UpdateJob is the fully loaded input of one update/resolution invocation:
// the project's current on-disk file set, the dependency with paired old/new
// requirement lists, and the credentials to inject into sandbox manifests.
type UpdateJob struct {
	Files       domain.FileSet
	Dependency  domain.Dependency
	Credentials []domain.Credential

	// SolverCommand is the composed shell command that runs the external
	// solver in lock-only mode (e.g. "poetry lock --no-update").
	SolverCommand string
}

// JobLoader reads an update-job description and the project files it names.
//
//go:generate go run go.uber.org/mock/mockgen -source=job_loader.go -destination=mocks/mock_job_loader.go -package=mocks
type JobLoader interface {
	Load(path string) (*UpdateJob, error)
}
