package render

import (
	"os"

	"github.com/diogo/wikichat/internal/config"
)

// OptionsFromConfig derives render options from the user configuration.
// GLAMOUR_STYLE takes precedence over the configured theme.
func OptionsFromConfig(cfg *config.Config, width int) Options {
	opts := DefaultOptions()
	if width > 0 {
		opts.Width = width
	}
	if cfg != nil {
		opts.Style = ThemeByName(cfg.Theme).Name
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}
