// Package config handles configuration for wikichat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Theme names
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config represents the user configuration
type Config struct {
	// Language is the Wikipedia language edition ("ru", "en", ...).
	Language string `json:"language"`
	// Sentences is how many intro sentences a summary contains.
	Sentences int `json:"sentences"`
	// Theme is the initial TUI theme, "dark" or "light".
	Theme string `json:"theme"`
	// MaxConcurrent caps the number of lookups running at the same time.
	MaxConcurrent int `json:"max_concurrent"`
	// TimeoutSeconds bounds a single lookup (search + page + summary).
	TimeoutSeconds int `json:"timeout_seconds"`
	// RateLimit is the maximum number of API requests per second.
	RateLimit       float64 `json:"rate_limit"`
	Verbose         bool    `json:"verbose"`
	CopyToClipboard bool    `json:"copy_to_clipboard"`
	LogFile         string  `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Language:        "ru",
		Sentences:       3,
		Theme:           ThemeDark,
		MaxConcurrent:   4,
		TimeoutSeconds:  20,
		RateLimit:       5,
		Verbose:         false,
		CopyToClipboard: false,
	}
}

// Timeout returns TimeoutSeconds as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that every field holds a usable value
func (c Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	if c.Sentences < 1 || c.Sentences > 10 {
		return fmt.Errorf("sentences must be between 1 and 10, got %d", c.Sentences)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.Theme)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1, got %d", c.MaxConcurrent)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".wikichat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, defaulting to the config directory
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wikichat.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load returns the effective configuration: the config file overlaid with
// a .env file in the working directory and WIKICHAT_* environment variables.
func Load() (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return cfg, err
	}

	// .env is optional
	_ = godotenv.Load()

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// envKeys maps environment variables to config keys
var envKeys = map[string]string{
	"WIKICHAT_LANG":              "language",
	"WIKICHAT_SENTENCES":         "sentences",
	"WIKICHAT_THEME":             "theme",
	"WIKICHAT_MAX_CONCURRENT":    "max_concurrent",
	"WIKICHAT_TIMEOUT":           "timeout_seconds",
	"WIKICHAT_RATE_LIMIT":        "rate_limit",
	"WIKICHAT_VERBOSE":           "verbose",
	"WIKICHAT_COPY_TO_CLIPBOARD": "copy_to_clipboard",
	"WIKICHAT_LOG_FILE":          "log_file",
}

// ApplyEnv overrides cfg with any WIKICHAT_* variables that are set
func ApplyEnv(cfg *Config) error {
	names := make([]string, 0, len(envKeys))
	for name := range envKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		if err := Set(cfg, envKeys[name], value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// Keys returns the settable configuration keys
func Keys() []string {
	return []string{
		"language",
		"sentences",
		"theme",
		"max_concurrent",
		"timeout_seconds",
		"rate_limit",
		"verbose",
		"copy_to_clipboard",
		"log_file",
	}
}

// Set assigns value to the field named by key
func Set(cfg *Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "language":
		if value == "" {
			return fmt.Errorf("language must not be empty")
		}
		cfg.Language = strings.ToLower(value)
	case "sentences":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("sentences must be a number: %w", err)
		}
		cfg.Sentences = n
	case "theme":
		v := strings.ToLower(value)
		if v != ThemeDark && v != ThemeLight {
			return fmt.Errorf("theme must be %q or %q", ThemeDark, ThemeLight)
		}
		cfg.Theme = v
	case "max_concurrent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_concurrent must be a number: %w", err)
		}
		cfg.MaxConcurrent = n
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout_seconds must be a number: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("rate_limit must be a number: %w", err)
		}
		cfg.RateLimit = f
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false: %w", err)
		}
		cfg.Verbose = b
	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false: %w", err)
		}
		cfg.CopyToClipboard = b
	case "log_file":
		cfg.LogFile = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns the value of key formatted the way Set accepts it
func Get(cfg Config, key string) (string, error) {
	switch key {
	case "language":
		return cfg.Language, nil
	case "sentences":
		return strconv.Itoa(cfg.Sentences), nil
	case "theme":
		return cfg.Theme, nil
	case "max_concurrent":
		return strconv.Itoa(cfg.MaxConcurrent), nil
	case "timeout_seconds":
		return strconv.Itoa(cfg.TimeoutSeconds), nil
	case "rate_limit":
		return strconv.FormatFloat(cfg.RateLimit, 'g', -1, 64), nil
	case "verbose":
		return strconv.FormatBool(cfg.Verbose), nil
	case "copy_to_clipboard":
		return strconv.FormatBool(cfg.CopyToClipboard), nil
	case "log_file":
		return cfg.LogFile, nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
