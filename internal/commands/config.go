package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/wikichat/internal/config"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: fmt.Sprintf(`Show or change wikichat settings.

Settings are stored in ~/.wikichat/config.json. A .env file in the
working directory and WIKICHAT_* environment variables override the file,
and command-line flags override both.

Keys: %v`, config.Keys()),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, key := range config.Keys() {
				value, _ := config.Get(cfg, key)
				fmt.Fprintf(deps.Stdout, "%-18s %s\n", key, value)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadFileConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := config.Set(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := deps.SaveConfig(cfg); err != nil {
				return err
			}
			value, _ := config.Get(cfg, args[0])
			fmt.Fprintf(deps.Stdout, "%s = %s\n", args[0], value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	return cmd
}
