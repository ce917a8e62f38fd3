// Package logger implements the logging adapter using charmbracelet/log.
package logger

import (
	"io"
	"os"
	"time"

	charm "github.com/charmbracelet/log"
	"go.trai.ch/relock/internal/core/ports"
)

// Logger implements ports.Logger on top of charmbracelet/log.
type Logger struct {
	logger *charm.Logger
}

// New creates a logger writing human-readable output to stderr.
func New() *Logger {
	l := charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           charm.InfoLevel,
	})
	return &Logger{logger: l}
}

// SetOutput redirects the logger's output, used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error with its field chain.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "error", err)
}

var _ ports.Logger = (*Logger)(nil)
