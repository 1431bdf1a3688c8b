package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat",
		Long: `Start the interactive chat.

Type a word and press Enter to get a short summary from Wikipedia.
Ctrl+T switches the theme, Ctrl+N starts a new chat, Ctrl+Y copies the
last answer and Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, f)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, f *flags) error {
	cfg, logger, cleanup, err := setup(cmd, deps, f)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	logger.Info("chat started", zap.String("language", client.Language()))
	if err := deps.TUI.RunChat(client, cfg, logger); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	logger.Info("chat finished")
	return nil
}
