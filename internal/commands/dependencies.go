package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/wikichat/internal/api"
	"github.com/diogo/wikichat/internal/config"
	"github.com/diogo/wikichat/internal/logging"
	"github.com/diogo/wikichat/internal/render"
	"github.com/diogo/wikichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.WikiClientInterface, cfg config.Config, logger *zap.Logger) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the encyclopedia client for cfg.
	NewClient func(cfg config.Config, logger *zap.Logger) (api.WikiClientInterface, error)

	// NewLogger builds the logger for cfg.
	NewLogger func(cfg config.Config) *zap.Logger

	// LoadConfig returns the effective configuration (file, .env, environment).
	LoadConfig func() (config.Config, error)
	// LoadFileConfig returns the configuration stored on disk only.
	LoadFileConfig func() (config.Config, error)
	SaveConfig     func(config.Config) error

	// TUI is the terminal user interface.
	TUI TUIInterface

	Clipboard func(string) error

	// Render formats a one-shot answer for the terminal.
	Render func(title, text string, opts render.Options) (string, error)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether input is being piped in.
	StdinPiped func() bool
	// Interactive reports whether stdout is a terminal.
	Interactive func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.WikiClientInterface, cfg config.Config, logger *zap.Logger) error {
	return tui.RunChat(client, cfg, logger)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:      newWikiClient,
		NewLogger:      newLogger,
		LoadConfig:     config.Load,
		LoadFileConfig: config.LoadConfig,
		SaveConfig:     config.SaveConfig,
		TUI:            &DefaultTUI{},
		Clipboard:      clipboard.WriteAll,
		Render:         render.Answer,
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		StdinPiped:     stdinPiped,
		Interactive:    isStdoutTTY,
	}
}

func newWikiClient(cfg config.Config, logger *zap.Logger) (api.WikiClientInterface, error) {
	client, err := api.NewClient(
		api.WithLanguage(cfg.Language),
		api.WithTimeout(cfg.Timeout()),
		api.WithRateLimit(cfg.RateLimit, 2),
		api.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newLogger(cfg config.Config) *zap.Logger {
	path, err := config.GetLogPath(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logging.NewOrNop(path, cfg.Verbose)
}

// stdinPiped returns true if stdin is not a terminal
func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
