package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/diogo/wikichat/internal/config"
)

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	env.fileCfg.Language = "en"

	if err := env.run("config", "show"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.stdout.String()
	for _, key := range config.Keys() {
		if !strings.Contains(out, key) {
			t.Errorf("output does not list %q", key)
		}
	}
	if !strings.Contains(out, "en") {
		t.Errorf("output does not show the language: %s", out)
	}
}

func TestConfigSet(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("config", "set", "theme", "light"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(env.saved))
	}
	if env.saved[0].Theme != config.ThemeLight {
		t.Errorf("saved theme = %s", env.saved[0].Theme)
	}
	if !strings.Contains(env.stdout.String(), "theme = light") {
		t.Errorf("output = %q", env.stdout.String())
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "model", "x"}},
		{"bad value", []string{"config", "set", "sentences", "many"}},
		{"out of range", []string{"config", "set", "sentences", "40"}},
		{"missing value", []string{"config", "set", "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.run(tt.args...); err == nil {
				t.Error("expected an error")
			}
			if len(env.saved) != 0 {
				t.Error("invalid settings must not be saved")
			}
		})
	}
}

func TestConfigSet_SaveError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.SaveConfig = func(config.Config) error { return errors.New("read-only") }

	if err := env.run("config", "set", "verbose", "true"); err == nil {
		t.Error("expected the save error")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	env := newTestEnv(t)

	if err := env.run("config", "path"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(env.stdout.String()), "config.json") {
		t.Errorf("output = %q", env.stdout.String())
	}
}
