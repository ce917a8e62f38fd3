package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"relock", "version"}
	assert.Equal(t, 0, run())
}

func TestRun_UpdateMissingJobFile(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"relock", "update", "-j", filepath.Join(t.TempDir(), "absent.yaml")}
	assert.Equal(t, 1, run())
}

func TestRun_UpdateNoopJobFails(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[tool.poetry.dependencies]\nrequests = \"^2.31.0\"\n"), 0o600))

	job := `
files:
  - pyproject.toml
dependency:
  name: requests
  requirements:
    - file: pyproject.toml
      expression: "^2.31.0"
  previousRequirements:
    - file: pyproject.toml
      expression: "^2.31.0"
`
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0o600))

	os.Args = []string{"relock", "update", "-j", jobPath}
	assert.Equal(t, 1, run())
}
