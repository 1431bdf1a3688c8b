package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme names double as glamour standard style names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name string

	// Surfaces
	Background lipgloss.Color
	Header     lipgloss.Color
	Input      lipgloss.Color
	Border     lipgloss.Color

	// Controls
	Button    lipgloss.Color
	Primary   lipgloss.Color
	BotBubble lipgloss.Color

	// Text
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	BubbleText lipgloss.Color
	Error      lipgloss.Color
}

var (
	// DarkTheme is the default palette
	DarkTheme = TUITheme{
		Name: ThemeDark,

		Background: lipgloss.Color("#0d0d1a"),
		Header:     lipgloss.Color("#14141f"),
		Input:      lipgloss.Color("#262633"),
		Border:     lipgloss.Color("#4d4d4d"),

		Button:    lipgloss.Color("#4d4d80"),
		Primary:   lipgloss.Color("#3366cc"),
		BotBubble: lipgloss.Color("#1a1a1a"),

		Text:       lipgloss.Color("#ffffff"),
		TextDim:    lipgloss.Color("#b3b3b3"),
		BubbleText: lipgloss.Color("#ffffff"),
		Error:      lipgloss.Color("#f7768e"),
	}

	// LightTheme mirrors DarkTheme on pale surfaces. Bubbles keep their
	// colours in both themes.
	LightTheme = TUITheme{
		Name: ThemeLight,

		Background: lipgloss.Color("#f2f2f2"),
		Header:     lipgloss.Color("#d9d9d9"),
		Input:      lipgloss.Color("#e6e6e6"),
		Border:     lipgloss.Color("#b3b3b3"),

		Button:    lipgloss.Color("#4d4d80"),
		Primary:   lipgloss.Color("#3366cc"),
		BotBubble: lipgloss.Color("#1a1a1a"),

		Text:       lipgloss.Color("#1a1a1a"),
		TextDim:    lipgloss.Color("#808080"),
		BubbleText: lipgloss.Color("#ffffff"),
		Error:      lipgloss.Color("#c0392b"),
	}
)

// ThemeByName returns the palette called name, falling back to DarkTheme
func ThemeByName(name string) TUITheme {
	if name == ThemeLight {
		return LightTheme
	}
	return DarkTheme
}

// Other returns the palette the theme toggle switches to
func (t TUITheme) Other() TUITheme {
	if t.Name == ThemeLight {
		return DarkTheme
	}
	return LightTheme
}

// IsDark reports whether t is the dark palette
func (t TUITheme) IsDark() bool {
	return t.Name != ThemeLight
}

// TUIThemeNames returns the theme names accepted by ThemeByName
func TUIThemeNames() []string {
	return []string{ThemeDark, ThemeLight}
}
