// Package app implements the application layer for relock.
package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/relock/internal/engine/resolve"
	"go.trai.ch/relock/internal/engine/update"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	jobLoader ports.JobLoader
	updater   *update.Engine
	resolver  *resolve.Builder
	logger    ports.Logger
}

// New creates a new App instance.
func New(loader ports.JobLoader, updater *update.Engine, resolver *resolve.Builder, logger ports.Logger) *App {
	return &App{
		jobLoader: loader,
		updater:   updater,
		resolver:  resolver,
		logger:    logger,
	}
}

// Update loads the job at jobPath, patches every changed requirement
// declaration in the project files and writes the modified files back next to
// the job file. It returns the paths of the files that changed.
func (a *App) Update(ctx context.Context, jobPath string) ([]string, error) {
	job, err := a.jobLoader.Load(jobPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load update job")
	}

	changed, err := a.updater.UpdateFiles([]domain.Dependency{job.Dependency}, job.Files)
	if err != nil {
		return nil, zerr.Wrap(err, "update failed")
	}

	root := filepath.Dir(jobPath)
	paths := make([]string, 0, len(changed))
	for _, file := range changed {
		name := file.Path.String()
		target := filepath.Join(root, filepath.FromSlash(name))
		if err := os.WriteFile(target, []byte(file.Content), 0o600); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to write updated file"), "file", name)
		}
		a.logger.Info("updated " + name)
		paths = append(paths, name)
	}
	return paths, nil
}

// Resolve loads the job at jobPath and asks the solver which exact version it
// settles on for the job's dependency under the candidate requirement. An
// empty candidate probes the latest resolvable version.
func (a *App) Resolve(ctx context.Context, jobPath, candidate string) (string, error) {
	job, err := a.jobLoader.Load(jobPath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load update job")
	}

	orch, err := a.resolver.Orchestrator(resolve.Options{
		Files:         job.Files,
		Dependency:    job.Dependency,
		Credentials:   job.Credentials,
		SolverCommand: job.SolverCommand,
	})
	if err != nil {
		return "", zerr.Wrap(err, "failed to prepare resolution")
	}

	version, err := orch.ResolveVersion(ctx, candidate)
	if err != nil {
		return "", zerr.Wrap(err, "resolution failed")
	}
	return version, nil
}
