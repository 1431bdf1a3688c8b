package render

import "testing"

func TestTUITheme_Structure(t *testing.T) {
	for _, theme := range []TUITheme{DarkTheme, LightTheme} {
		t.Run(theme.Name, func(t *testing.T) {
			colors := map[string]string{
				"background":  string(theme.Background),
				"header":      string(theme.Header),
				"input":       string(theme.Input),
				"border":      string(theme.Border),
				"button":      string(theme.Button),
				"primary":     string(theme.Primary),
				"bot bubble":  string(theme.BotBubble),
				"text":        string(theme.Text),
				"text dim":    string(theme.TextDim),
				"bubble text": string(theme.BubbleText),
				"error":       string(theme.Error),
			}
			for name, c := range colors {
				if c == "" {
					t.Errorf("%s color should not be empty", name)
				}
			}
		})
	}
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{ThemeDark, ThemeDark},
		{ThemeLight, ThemeLight},
		{"", ThemeDark},
		{"solarized", ThemeDark},
	}

	for _, tt := range tests {
		if got := ThemeByName(tt.name).Name; got != tt.want {
			t.Errorf("ThemeByName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTUITheme_Other(t *testing.T) {
	if DarkTheme.Other().Name != ThemeLight {
		t.Error("dark should toggle to light")
	}
	if LightTheme.Other().Name != ThemeDark {
		t.Error("light should toggle to dark")
	}
	if DarkTheme.Other().Other() != DarkTheme {
		t.Error("toggling twice should restore the original palette")
	}
}

func TestTUITheme_Palettes(t *testing.T) {
	if DarkTheme.Background == LightTheme.Background {
		t.Error("themes should differ in background")
	}
	if DarkTheme.Text == LightTheme.Text {
		t.Error("themes should differ in text colour")
	}
	if DarkTheme.Primary != LightTheme.Primary {
		t.Error("user bubbles keep their colour in both themes")
	}
	if !DarkTheme.IsDark() || LightTheme.IsDark() {
		t.Error("IsDark mismatch")
	}
}

func TestTUIThemeNames(t *testing.T) {
	names := TUIThemeNames()
	if len(names) != 2 || names[0] != ThemeDark || names[1] != ThemeLight {
		t.Errorf("TUIThemeNames() = %v", names)
	}
}
