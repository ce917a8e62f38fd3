package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Info("updating requests")
	require.Contains(t, buf.String(), "updating requests")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Warn("lock entry missing")
	require.Contains(t, buf.String(), "lock entry missing")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Error(zerr.New("solver exploded"))
	require.Contains(t, buf.String(), "solver exploded")
}
