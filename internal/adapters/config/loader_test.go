package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/adapters/config"
	"go.trai.ch/relock/internal/core/domain"
)

func writeJob(t *testing.T, dir, job string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0o600))
	return jobPath
}

func TestFileJobLoader_Load(t *testing.T) {
	job := `
files:
  - pyproject.toml
  - poetry.lock
dependency:
  name: requests
  requirements:
    - file: pyproject.toml
      expression: "^2.32.0"
  previousRequirements:
    - file: pyproject.toml
      expression: "^2.31.0"
credentials:
  - registryUrl: https://pypi.example/simple
    username: bot
    password: hunter2
solverCommand: poetry lock --no-update
`
	path := writeJob(t, t.TempDir(), job, map[string]string{
		"pyproject.toml": "[tool.poetry.dependencies]\nrequests = \"^2.31.0\"\n",
		"poetry.lock":    "[[package]]\nname = \"requests\"\nversion = \"2.31.0\"\n",
	})

	loader := &config.FileJobLoader{}
	loaded, err := loader.Load(path)
	require.NoError(t, err)

	require.Equal(t, "requests", loaded.Dependency.Name.String())
	require.Len(t, loaded.Dependency.Requirements, 1)
	require.Equal(t, "^2.32.0", loaded.Dependency.Requirements[0].Expression)
	require.Equal(t, domain.CategoryMain, loaded.Dependency.Requirements[0].Group)
	require.Equal(t, "^2.31.0", loaded.Dependency.PreviousRequirements[0].Expression)

	manifest, ok := loaded.Files.Get("pyproject.toml")
	require.True(t, ok)
	require.Contains(t, manifest.Content, "requests")

	require.Len(t, loaded.Credentials, 1)
	require.Equal(t, "https://pypi.example/simple", loaded.Credentials[0].RegistryURL)
	require.Equal(t, "poetry lock --no-update", loaded.SolverCommand)
}

func TestFileJobLoader_Load_NestedFilePath(t *testing.T) {
	job := `
files:
  - services/api/pyproject.toml
dependency:
  name: flask
  requirements:
    - file: services/api/pyproject.toml
      expression: "^3.0"
  previousRequirements:
    - file: services/api/pyproject.toml
      expression: "^2.3"
`
	path := writeJob(t, t.TempDir(), job, map[string]string{
		"services/api/pyproject.toml": "[tool.poetry.dependencies]\nflask = \"^2.3\"\n",
	})

	loader := &config.FileJobLoader{}
	loaded, err := loader.Load(path)
	require.NoError(t, err)

	_, ok := loaded.Files.Get("services/api/pyproject.toml")
	require.True(t, ok)
}

func TestFileJobLoader_Load_MissingName(t *testing.T) {
	job := `
files:
  - pyproject.toml
dependency:
  requirements: []
  previousRequirements: []
`
	path := writeJob(t, t.TempDir(), job, map[string]string{"pyproject.toml": ""})

	loader := &config.FileJobLoader{}
	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrJobInvalid)
}

func TestFileJobLoader_Load_UnpairedRequirements(t *testing.T) {
	job := `
files:
  - pyproject.toml
dependency:
  name: requests
  requirements:
    - file: pyproject.toml
      expression: "^2.32.0"
  previousRequirements: []
`
	path := writeJob(t, t.TempDir(), job, map[string]string{"pyproject.toml": ""})

	loader := &config.FileJobLoader{}
	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrJobInvalid)
}

func TestFileJobLoader_Load_UnknownGroup(t *testing.T) {
	job := `
files:
  - pyproject.toml
dependency:
  name: requests
  requirements:
    - file: pyproject.toml
      expression: "^2.32.0"
      group: optional
  previousRequirements:
    - file: pyproject.toml
      expression: "^2.31.0"
      group: optional
`
	path := writeJob(t, t.TempDir(), job, map[string]string{"pyproject.toml": ""})

	loader := &config.FileJobLoader{}
	_, err := loader.Load(path)
	require.ErrorIs(t, err, domain.ErrJobInvalid)
}

func TestFileJobLoader_Load_MissingProjectFile(t *testing.T) {
	job := `
files:
  - pyproject.toml
dependency:
  name: requests
  requirements: []
  previousRequirements: []
`
	path := writeJob(t, t.TempDir(), job, nil)

	loader := &config.FileJobLoader{}
	_, err := loader.Load(path)
	require.Error(t, err)
}
