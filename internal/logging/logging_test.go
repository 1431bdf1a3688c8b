package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wikichat.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	logger.Info("lookup resolved", zap.String("query", "Python"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"query":"Python"`) {
		t.Errorf("log file missing field, got: %s", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Error("debug entry written at info level")
	}
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikichat.log")

	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	logger.Debug("request sent")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "request sent") {
		t.Error("debug entry missing in verbose mode")
	}
}

func TestNew_EmptyPath(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("New(\"\") returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a no-op logger")
	}
}

func TestNewOrNop_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	// A regular file cannot be used as a directory
	logger := NewOrNop(filepath.Join(blocker, "sub", "wikichat.log"), false)
	if logger == nil {
		t.Fatal("NewOrNop returned nil")
	}
	logger.Info("discarded")
}
