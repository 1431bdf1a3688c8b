package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/models"
)

var (
	searchTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	searchSnippetStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				PaddingLeft(3)
)

// NewSearchCmd creates the search command
func NewSearchCmd(deps *Dependencies, f *flags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List Wikipedia titles matching a query",
		Long: `List the Wikipedia articles matching a query, best match first,
with a short snippet of each.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, deps, f, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results to print")

	return cmd
}

func runSearch(cmd *cobra.Command, deps *Dependencies, f *flags, query string, limit int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}

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

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	results, err := client.Search(ctx, query)
	if err != nil {
		logger.Info("search failed", zap.String("query", query), zap.Error(err))
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Debug("search finished", zap.String("query", query), zap.Int("results", len(results)))

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, models.NotFoundText)
		return nil
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	for i, r := range results {
		fmt.Fprintln(deps.Stdout, searchTitleStyle.Render(fmt.Sprintf("%d. %s", i+1, r.Title)))
		if r.Snippet != "" {
			fmt.Fprintln(deps.Stdout, searchSnippetStyle.Render(r.Snippet))
		}
	}
	return nil
}
