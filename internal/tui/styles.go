// Package tui provides the terminal chat interface for wikichat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wikichat/internal/models"
	"github.com/diogo/wikichat/internal/render"
)

// Styles holds every lipgloss style of the chat screen for one palette.
// Toggling the theme replaces the whole value.
type Styles struct {
	Theme render.TUITheme

	App      lipgloss.Style
	Header   lipgloss.Style
	Title    lipgloss.Style
	Button   lipgloss.Style
	Messages lipgloss.Style

	UserLabel  lipgloss.Style
	UserBubble lipgloss.Style
	BotLabel   lipgloss.Style
	BotBubble  lipgloss.Style
	Pending    lipgloss.Style

	Input      lipgloss.Style
	InputText  lipgloss.Style
	InputHint  lipgloss.Style
	SendButton lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusDesc lipgloss.Style
	Notice     lipgloss.Style
	Spinner    lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme render.TUITheme) Styles {
	s := Styles{Theme: theme}

	s.App = lipgloss.NewStyle().
		Background(theme.Background).
		Foreground(theme.Text)

	s.Header = lipgloss.NewStyle().
		Background(theme.Header).
		Foreground(theme.Text).
		Padding(0, 1)

	s.Title = lipgloss.NewStyle().
		Background(theme.Header).
		Foreground(theme.Text).
		Bold(true)

	s.Button = lipgloss.NewStyle().
		Background(theme.Button).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1)

	s.Messages = lipgloss.NewStyle().
		Background(theme.Background)

	s.UserLabel = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true)

	s.UserBubble = lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.BubbleText).
		Padding(0, 1)

	s.BotLabel = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true)

	s.BotBubble = lipgloss.NewStyle().
		Background(theme.BotBubble).
		Foreground(theme.BubbleText).
		Padding(0, 1)

	s.Pending = s.BotBubble.
		Foreground(theme.TextDim).
		Italic(true)

	s.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Background(theme.Input).
		Padding(0, 1)

	s.InputText = lipgloss.NewStyle().
		Foreground(theme.Text)

	s.InputHint = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.SendButton = lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.StatusKey = lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true)

	s.StatusDesc = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.Notice = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true)

	s.Spinner = lipgloss.NewStyle().
		Foreground(theme.Primary)

	return s
}

// Toggle returns the styles of the other theme
func (s Styles) Toggle() Styles {
	return NewStyles(s.Theme.Other())
}

// ThemeButtonLabel is the header button text. It names the theme the
// button switches to.
func (s Styles) ThemeButtonLabel() string {
	if s.Theme.IsDark() {
		return models.LightThemeLabel
	}
	return models.DarkThemeLabel
}
