package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/config"
	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/lookup"
	"github.com/diogo/wikichat/internal/models"
	"github.com/diogo/wikichat/internal/render"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#3366cc"),
	lipgloss.Color("#4d7fe0"),
	lipgloss.Color("#6699ff"),
	lipgloss.Color("#80b3ff"),
	lipgloss.Color("#6699ff"),
	lipgloss.Color("#4d7fe0"),
}

var (
	colorText    = render.DarkTheme.Text
	colorTextDim = render.DarkTheme.TextDim
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = render.DarkTheme.Error
	colorPrimary = render.DarkTheme.Primary
)

// spinner handles the animated loading indicator on stderr
type spinner struct {
	out     io.Writer
	message string
	frames  []string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		frames:  bspinner.Dot.Frames,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(bspinner.Dot.FPS)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	color := gradientColors[s.frame%len(gradientColors)]
	glyph := lipgloss.NewStyle().Foreground(color).Bold(true).Render(s.frames[s.frame%len(s.frames)])

	dots := strings.Repeat(".", (s.frame/4)%4)
	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message + dots)

	fmt.Fprintf(s.out, "\r\033[K%s %s", glyph, msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// isConnectivityFailure reports whether err is a transport or protocol
// failure rather than an answer about the query itself
func isConnectivityFailure(err error) bool {
	return err != nil &&
		!apierrors.IsPageError(err) &&
		!apierrors.IsDisambiguationError(err) &&
		!errors.Is(err, apierrors.ErrNoResults)
}

// runQuery looks up a single query and prints the answer
func runQuery(cmd *cobra.Command, deps *Dependencies, f *flags, query string) error {
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

	decorated := !f.raw && deps.Interactive()

	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, models.PlaceholderText)
		spin.start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	start := time.Now()
	text, lookupErr := lookup.Answer(ctx, client, query, cfg.Sentences)
	elapsed := time.Since(start)

	fields := []zap.Field{zap.String("query", query), zap.Duration("elapsed", elapsed)}
	if lookupErr != nil {
		logger.Info("lookup failed", append(fields, zap.Error(lookupErr))...)
	} else {
		logger.Info("lookup resolved", fields...)
	}

	failed := isConnectivityFailure(lookupErr)
	if spin != nil {
		if failed {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess(fmt.Sprintf("Готово (%s)", elapsed.Round(time.Millisecond)))
		}
	}
	if cfg.Verbose && lookupErr != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(lookupErr, "Lookup"))
	}

	if decorated {
		printAnswer(deps, cfg, query, text)
	} else {
		fmt.Fprintln(deps.Stdout, text)
	}

	if (f.copy || cfg.CopyToClipboard) && !failed {
		if err := deps.Clipboard(text); err != nil {
			logger.Warn("copy to clipboard failed", zap.Error(err))
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if failed {
		return fmt.Errorf("lookup failed: %w", lookupErr)
	}
	return nil
}

// printAnswer prints the answer in a bubble sized to the terminal, styled
// after the configured theme
func printAnswer(deps *Dependencies, cfg config.Config, query, text string) {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 100 {
		bubbleWidth = 100
	}
	contentWidth := bubbleWidth - 4

	theme := render.ThemeByName(cfg.Theme)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	bubbleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		MarginBottom(1)

	fmt.Fprintln(deps.Stdout, labelStyle.Render(models.BotLabel))

	renderAnswer := deps.Render
	if renderAnswer == nil {
		renderAnswer = render.Answer
	}
	rendered, err := renderAnswer(query, text, render.OptionsFromConfig(&cfg, contentWidth))
	if err != nil {
		rendered = text
	}
	rendered = strings.Trim(rendered, "\n")

	fmt.Fprintln(deps.Stdout, bubbleStyle.Width(bubbleWidth).Render(rendered))
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, label string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", label, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case apierrors.IsTimeoutError(err), errors.Is(err, context.DeadlineExceeded):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Try again or raise timeout_seconds"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case errors.Is(err, apierrors.ErrInvalidResponse):
		sb.WriteString(dimStyle.Render("\n  Hint: Wikipedia returned an unexpected response. Check the --lang value"))
	case apierrors.IsDisambiguationError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Try one of the listed titles"))
	}

	return sb.String()
}
