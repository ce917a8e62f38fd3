package pyruntime

import (
	"context"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.RuntimeManager on top of pyenv. Installed
// interpreters are discovered with `pyenv versions` and missing ones are
// installed on demand.
type Manager struct {
	runner       ports.CommandRunner
	logger       ports.Logger
	manifestName string
}

// NewManager creates a runtime manager that reads the python constraint from
// the named manifest file.
func NewManager(runner ports.CommandRunner, logger ports.Logger, manifestName string) *Manager {
	return &Manager{
		runner:       runner,
		logger:       logger,
		manifestName: manifestName,
	}
}

// Ensure makes the requested interpreter version available and returns the
// environment entries the solver needs to select it.
func (m *Manager) Ensure(ctx context.Context, version string) ([]string, error) {
	installed, err := m.installedVersions(ctx)
	if err != nil {
		return nil, err
	}

	resolved, ok := matchVersion(installed, version)
	if !ok {
		m.logger.Info("installing python " + version)
		output, err := m.runner.Run(ctx, "", nil, "pyenv install -s "+version)
		if err != nil {
			installErr := zerr.Wrap(domain.ErrRuntimeInstallFailed, "pyenv install failed")
			installErr = zerr.With(installErr, "version", version)
			return nil, zerr.With(installErr, "output", domain.RedactURLs(output))
		}
		resolved = version
	}

	return []string{"PYENV_VERSION=" + resolved}, nil
}

func (m *Manager) installedVersions(ctx context.Context) ([]string, error) {
	output, err := m.runner.Run(ctx, "", nil, "pyenv versions --bare")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list installed python versions")
	}
	var versions []string
	for line := range strings.Lines(output) {
		if v := strings.TrimSpace(line); v != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// matchVersion finds an installed version satisfying the requested one, so a
// "3.11" request is served by an installed "3.11.9".
func matchVersion(installed []string, version string) (string, bool) {
	for _, v := range installed {
		if v == version || strings.HasPrefix(v, version+".") {
			return v, true
		}
	}
	return "", false
}
