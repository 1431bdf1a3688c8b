// Package logging builds the zap logger used across wikichat.
//
// The chat runs in the terminal's alternate screen, so logs never go to
// stdout or stderr; they are written as JSON lines to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger that appends to path. Debug level is enabled when
// verbose is set, info level otherwise.
func New(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewOrNop is New that falls back to a no-op logger when the file cannot be opened
func NewOrNop(path string, verbose bool) *zap.Logger {
	logger, err := New(path, verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
