package resolve_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/relock/internal/core/ports/mocks"
	"go.trai.ch/relock/internal/engine/resolve"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const orchestratorManifest = `
[tool.poetry]
name = "demo"

[tool.poetry.dependencies]
python = "^3.11"
requests = "^2.31.0"
urllib3 = "^2.0"
`

const orchestratorLock = `
[[package]]
name = "requests"
version = "2.31.0"

[[package]]
name = "urllib3"
version = "2.2.0"

[[package]]
name = "idna"
version = "3.7"
`

const solvedLock = `
[[package]]
name = "requests"
version = "2.32.3"

[[package]]
name = "urllib3"
version = "2.2.0"

[[package]]
name = "idna"
version = "3.7"
`

type orchestratorMocks struct {
	workspaces *mocks.MockWorkspaceFactory
	runtime    *mocks.MockRuntimeManager
	runner     *mocks.MockCommandRunner
	builder    *resolve.Builder
}

func newOrchestratorMocks(t *testing.T) orchestratorMocks {
	t.Helper()
	ctrl := gomock.NewController(t)

	workspaces := mocks.NewMockWorkspaceFactory(ctrl)
	runtime := mocks.NewMockRuntimeManager(ctrl)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	return orchestratorMocks{
		workspaces: workspaces,
		runtime:    runtime,
		runner:     runner,
		builder:    resolve.NewBuilder(workspaces, runtime, runner, log),
	}
}

func projectFiles(t *testing.T) domain.FileSet {
	t.Helper()
	files, err := domain.NewFileSet(
		domain.NewManagedFile("pyproject.toml", orchestratorManifest),
		domain.NewManagedFile("poetry.lock", orchestratorLock),
	)
	require.NoError(t, err)
	return files
}

func directDependency(name, oldExpr, newExpr string) domain.Dependency {
	file := domain.NewInternedString("pyproject.toml")
	return domain.Dependency{
		Name:                 domain.NewInternedString(name),
		Requirements:         []domain.Requirement{{File: file, Expression: newExpr, Group: domain.CategoryMain}},
		PreviousRequirements: []domain.Requirement{{File: file, Expression: oldExpr, Group: domain.CategoryMain}},
	}
}

func expectWorkspace(ctrl *gomock.Controller, lockContent string) *mocks.MockWorkspace {
	ws := mocks.NewMockWorkspace(ctrl)
	ws.EXPECT().Root().Return("/sandbox").AnyTimes()
	ws.EXPECT().ReadFile("poetry.lock").Return(lockContent, nil)
	ws.EXPECT().Close().Return(nil)
	return ws
}

func TestOrchestrator_ResolveVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	var sandboxManifest string
	ws := expectWorkspace(ctrl, solvedLock)
	m.workspaces.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, files []domain.ManagedFile) (ports.Workspace, error) {
			for _, f := range files {
				if f.Path.String() == "pyproject.toml" {
					sandboxManifest = f.Content
				}
			}
			return ws, nil
		})

	m.runtime.EXPECT().Detect(gomock.Any()).Return("3.11", true)
	m.runtime.EXPECT().Ensure(gomock.Any(), "3.11").Return([]string{"PYENV_VERSION=3.11"}, nil)
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", []string{"PYENV_VERSION=3.11"}, "poetry lock --no-update").
		Return("Resolving dependencies... done", nil)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      projectFiles(t),
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	version, err := orch.ResolveVersion(context.Background(), "^2.32.0")
	require.NoError(t, err)
	require.Equal(t, "2.32.3", version)

	// The sandbox manifest carries the candidate and pins the sibling; the
	// original working set is never modified.
	require.Contains(t, sandboxManifest, "^2.32.0")
	require.Contains(t, sandboxManifest, "2.2.0")
	require.NotContains(t, sandboxManifest, "^2.0")

	original, ok := projectFiles(t).Get("pyproject.toml")
	require.True(t, ok)
	require.Equal(t, orchestratorManifest, original.Content)
}

func TestOrchestrator_ResolveVersion_Memoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	ws := expectWorkspace(ctrl, solvedLock)
	m.workspaces.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil).Times(1)
	m.runtime.EXPECT().Detect(gomock.Any()).Return("", false).Times(1)
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return("done", nil).
		Times(1)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      projectFiles(t),
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	for range 3 {
		version, err := orch.ResolveVersion(context.Background(), "^2.32.0")
		require.NoError(t, err)
		require.Equal(t, "2.32.3", version)
	}
}

func TestOrchestrator_ResolveVersion_TransitiveDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	ws := expectWorkspace(ctrl, solvedLock)
	m.workspaces.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil)
	m.runtime.EXPECT().Detect(gomock.Any()).Return("", false)
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return("done", nil)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files: projectFiles(t),
		Dependency: domain.Dependency{
			Name: domain.NewInternedString("certifi"),
		},
	})
	require.NoError(t, err)

	version, err := orch.ResolveVersion(context.Background(), ">=2024.0.0")
	require.NoError(t, err)
	require.Empty(t, version, "a transitive dependency absent from the new lock is a clean drop")
}

func TestOrchestrator_ResolveVersion_DirectMissingFromLockFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	lockWithoutTarget := strings.ReplaceAll(solvedLock, "requests", "httpx")
	ws := expectWorkspace(ctrl, lockWithoutTarget)
	m.workspaces.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil)
	m.runtime.EXPECT().Detect(gomock.Any()).Return("", false)
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return("done", nil)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      projectFiles(t),
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	_, err = orch.ResolveVersion(context.Background(), "^2.32.0")
	require.ErrorIs(t, err, domain.ErrLockEntryMissing)
}

func TestOrchestrator_ResolveVersion_OriginalCheckMemoizedAcrossCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	failure := "SolverProblemError\nversion solving failed."

	// Two failing candidate solves plus exactly one original-requirements
	// re-solve: the fallback check never runs twice.
	for range 3 {
		ws := mocks.NewMockWorkspace(ctrl)
		ws.EXPECT().Root().Return("/sandbox").AnyTimes()
		ws.EXPECT().Close().Return(nil)
		m.workspaces.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil)
	}
	m.runtime.EXPECT().Detect(gomock.Any()).Return("", false).Times(3)
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return(failure, zerr.New("exit 1")).
		Times(3)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      projectFiles(t),
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	_, err = orch.ResolveVersion(context.Background(), "^2.32.0")
	require.ErrorIs(t, err, domain.ErrDependencyFileNotResolvable)

	_, err = orch.ResolveVersion(context.Background(), "^2.33.0")
	require.ErrorIs(t, err, domain.ErrDependencyFileNotResolvable)
}

func TestOrchestrator_ResolveVersion_OriginalGitFailureNotBlamedOnProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newOrchestratorMocks(t)

	// Candidate solve plus the original-requirements re-solve, which fails on
	// an unreachable git dependency rather than on the requirements.
	for range 2 {
		ws := mocks.NewMockWorkspace(ctrl)
		ws.EXPECT().Root().Return("/sandbox").AnyTimes()
		ws.EXPECT().Close().Return(nil)
		m.workspaces.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ws, nil)
	}
	m.runtime.EXPECT().Detect(gomock.Any()).Return("", false).Times(2)

	candidateRun := m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return("SolverProblemError\nversion solving failed.", zerr.New("exit 1"))
	m.runner.EXPECT().
		Run(gomock.Any(), "/sandbox", nil, "poetry lock --no-update").
		Return("Failed to clone https://github.com/org/private-lib.git", zerr.New("exit 1")).
		After(candidateRun)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      projectFiles(t),
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	_, err = orch.ResolveVersion(context.Background(), "^2.32.0")
	require.ErrorIs(t, err, domain.ErrGitDependencyUnreachable)
	require.NotErrorIs(t, err, domain.ErrDependencyFileNotResolvable)
}

func TestOrchestrator_ResolveVersion_MissingManifest(t *testing.T) {
	m := newOrchestratorMocks(t)

	files, err := domain.NewFileSet(
		domain.NewManagedFile("poetry.lock", orchestratorLock),
	)
	require.NoError(t, err)

	orch, err := m.builder.Orchestrator(resolve.Options{
		Files:      files,
		Dependency: directDependency("requests", "^2.31.0", "^2.32.0"),
	})
	require.NoError(t, err)

	_, err = orch.ResolveVersion(context.Background(), "^2.32.0")
	require.ErrorIs(t, err, domain.ErrManifestMissing)
}
