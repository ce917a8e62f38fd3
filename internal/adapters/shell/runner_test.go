package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/adapters/shell"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T, timeout time.Duration) *shell.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return shell.NewRunner(log, timeout)
}

func TestRunner_Run_CapturesCombinedOutput(t *testing.T) {
	runner := newRunner(t, 0)

	output, err := runner.Run(context.Background(), t.TempDir(), nil, "echo out; echo err 1>&2")
	require.NoError(t, err)
	require.Contains(t, output, "out")
	require.Contains(t, output, "err")
}

func TestRunner_Run_RunsInDirectory(t *testing.T) {
	runner := newRunner(t, 0)
	dir := t.TempDir()

	output, err := runner.Run(context.Background(), dir, nil, "pwd")
	require.NoError(t, err)
	require.Contains(t, output, dir)
}

func TestRunner_Run_PassesEnvironment(t *testing.T) {
	runner := newRunner(t, 0)

	output, err := runner.Run(context.Background(), t.TempDir(), []string{"RELOCK_PROBE=42"}, "echo $RELOCK_PROBE")
	require.NoError(t, err)
	require.Contains(t, output, "42")
}

func TestRunner_Run_FailureReturnsOutput(t *testing.T) {
	runner := newRunner(t, 0)

	output, err := runner.Run(context.Background(), t.TempDir(), nil, "echo broken; exit 3")
	require.Error(t, err)
	require.Contains(t, output, "broken")
	require.False(t, errors.Is(err, domain.ErrSolverTimedOut))
}

func TestRunner_Run_TimeoutMapsToSentinel(t *testing.T) {
	runner := newRunner(t, 50*time.Millisecond)

	_, err := runner.Run(context.Background(), t.TempDir(), nil, "sleep 5")
	require.ErrorIs(t, err, domain.ErrSolverTimedOut)
}
