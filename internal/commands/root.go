// Package commands provides CLI commands for wikichat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/config"
	"github.com/diogo/wikichat/internal/render"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// flags holds the values of the global flags
type flags struct {
	lang      string
	sentences int
	theme     string
	verbose   bool
	copy      bool
	raw       bool
}

// NewRootCmd builds the wikichat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "wikichat [query]",
		Short: "Ask Wikipedia from the terminal",
		Long: `wikichat answers a word or phrase with a short summary from Wikipedia.

Run without arguments in a terminal to open the chat. Pass a query to get
a single answer.

Examples:
  wikichat                         Start the chat
  wikichat Python                  Print a summary of the top match
  wikichat -l en "Go language"     Use English Wikipedia
  echo Москва | wikichat           Read the query from stdin
  wikichat search Меркурий         List matching titles
  wikichat config set theme light  Change a setting`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "wikichat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 {
				return runQuery(cmd, deps, f, strings.Join(args, " "))
			}

			if deps.StdinPiped() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				if strings.TrimSpace(string(data)) != "" {
					return runQuery(cmd, deps, f, string(data))
				}
			}

			if deps.Interactive() {
				return runChat(cmd, deps, f)
			}

			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&f.lang, "lang", "l", "", "Wikipedia language edition (e.g. ru, en)")
	cmd.PersistentFlags().IntVarP(&f.sentences, "sentences", "s", 0, "Number of summary sentences")
	cmd.PersistentFlags().StringVar(&f.theme, "theme", "", fmt.Sprintf("Colour theme (%s)", strings.Join(render.TUIThemeNames(), ", ")))
	cmd.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "Copy the answer to the clipboard")
	cmd.Flags().BoolVarP(&f.raw, "raw", "r", false, "Print the answer without decoration")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, f))
	cmd.AddCommand(NewSearchCmd(deps, f))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// settings returns the effective configuration with flag overrides applied
func settings(cmd *cobra.Command, deps *Dependencies, f *flags) (config.Config, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("lang") {
		if err := config.Set(&cfg, "language", f.lang); err != nil {
			return cfg, err
		}
	}
	if changed("sentences") {
		cfg.Sentences = f.sentences
	}
	if changed("theme") {
		if err := config.Set(&cfg, "theme", f.theme); err != nil {
			return cfg, err
		}
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// setup resolves settings and builds the logger and client for a command
func setup(cmd *cobra.Command, deps *Dependencies, f *flags) (config.Config, *zap.Logger, func(), error) {
	cfg, err := settings(cmd, deps, f)
	if err != nil {
		return cfg, nil, nil, err
	}

	logger := deps.NewLogger(cfg)
	cleanup := func() { _ = logger.Sync() }

	logger.Debug("settings resolved",
		zap.String("command", cmd.Name()),
		zap.String("language", cfg.Language),
		zap.Int("sentences", cfg.Sentences),
		zap.String("theme", cfg.Theme))

	return cfg, logger, cleanup, nil
}
