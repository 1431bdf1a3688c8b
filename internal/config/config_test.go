package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every WIKICHAT_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		if old, ok := os.LookupEnv(name); ok {
			_ = os.Unsetenv(name)
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, 3, cfg.Sentences)
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, 20*time.Second, cfg.Timeout())
	assert.False(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir), "GetConfigDir() returned relative path: %s", dir)
	assert.Equal(t, ".wikichat", filepath.Base(dir))
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "wikichat.log", filepath.Base(path))

	custom := DefaultConfig()
	custom.LogFile = "/tmp/custom.log"
	path, err = GetLogPath(custom)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", path)
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.Language = "en"
	cfg.Sentences = 5
	cfg.Theme = ThemeLight

	require.NoError(t, SaveConfig(cfg))

	configPath := filepath.Join(tmpDir, ".wikichat", "config.json")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, cfg, saved)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, ".wikichat")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{key: "language", value: "EN", check: func(t *testing.T, cfg Config) { assert.Equal(t, "en", cfg.Language) }},
		{key: "language", value: "", wantErr: true},
		{key: "sentences", value: "5", check: func(t *testing.T, cfg Config) { assert.Equal(t, 5, cfg.Sentences) }},
		{key: "sentences", value: "five", wantErr: true},
		{key: "theme", value: "Light", check: func(t *testing.T, cfg Config) { assert.Equal(t, ThemeLight, cfg.Theme) }},
		{key: "theme", value: "solarized", wantErr: true},
		{key: "max_concurrent", value: "2", check: func(t *testing.T, cfg Config) { assert.Equal(t, 2, cfg.MaxConcurrent) }},
		{key: "timeout_seconds", value: "7", check: func(t *testing.T, cfg Config) { assert.Equal(t, 7*time.Second, cfg.Timeout()) }},
		{key: "rate_limit", value: "1.5", check: func(t *testing.T, cfg Config) { assert.Equal(t, 1.5, cfg.RateLimit) }},
		{key: "verbose", value: "true", check: func(t *testing.T, cfg Config) { assert.True(t, cfg.Verbose) }},
		{key: "verbose", value: "maybe", wantErr: true},
		{key: "copy_to_clipboard", value: "1", check: func(t *testing.T, cfg Config) { assert.True(t, cfg.CopyToClipboard) }},
		{key: "log_file", value: "/tmp/w.log", check: func(t *testing.T, cfg Config) { assert.Equal(t, "/tmp/w.log", cfg.LogFile) }},
		{key: "model", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := Set(&cfg, tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty language", func(cfg *Config) { cfg.Language = "" }},
		{"zero sentences", func(cfg *Config) { cfg.Sentences = 0 }},
		{"too many sentences", func(cfg *Config) { cfg.Sentences = 11 }},
		{"unknown theme", func(cfg *Config) { cfg.Theme = "blue" }},
		{"zero concurrency", func(cfg *Config) { cfg.MaxConcurrent = 0 }},
		{"zero timeout", func(cfg *Config) { cfg.TimeoutSeconds = 0 }},
		{"negative rate", func(cfg *Config) { cfg.RateLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIKICHAT_LANG", "de")
	t.Setenv("WIKICHAT_SENTENCES", "2")
	t.Setenv("WIKICHAT_THEME", "light")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 2, cfg.Sentences)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, 4, cfg.MaxConcurrent, "unset variables keep their value")
}

func TestApplyEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIKICHAT_SENTENCES", "lots")

	cfg := DefaultConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIKICHAT_SENTENCES")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.Language = "en"
	require.NoError(t, SaveConfig(cfg))

	t.Setenv("WIKICHAT_LANG", "fr")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.Language)
}

func TestGet_RoundTripsSet(t *testing.T) {
	values := map[string]string{
		"language":          "en",
		"sentences":         "5",
		"theme":             ThemeLight,
		"max_concurrent":    "2",
		"timeout_seconds":   "7",
		"rate_limit":        "1.5",
		"verbose":           "true",
		"copy_to_clipboard": "true",
		"log_file":          "/tmp/wikichat.log",
	}

	cfg := DefaultConfig()
	for _, key := range Keys() {
		require.NoError(t, Set(&cfg, key, values[key]), key)
	}
	for _, key := range Keys() {
		got, err := Get(cfg, key)
		require.NoError(t, err, key)
		assert.Equal(t, values[key], got, key)
	}

	_, err := Get(cfg, "model")
	assert.Error(t, err)
}
