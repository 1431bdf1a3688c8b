package commands

import (
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())
	if cmd.Use != "wikichat [query]" {
		t.Errorf("Expected use 'wikichat [query]', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	for _, name := range []string{"chat", "search", "config"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	for _, name := range []string{"lang", "sentences", "theme", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
	for _, name := range []string{"copy", "raw", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s", name)
		}
	}
	if f := cmd.PersistentFlags().ShorthandLookup("l"); f == nil || f.Name != "lang" {
		t.Error("expected -l to be --lang")
	}
	if usage := cmd.PersistentFlags().Lookup("theme").Usage; !strings.Contains(usage, "dark, light") {
		t.Errorf("--theme usage = %q, want the theme names", usage)
	}
}

func TestRootCommand_Version(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}} {
		env := newTestEnv(t)
		if err := env.run(args...); err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
		if !strings.Contains(env.stdout.String(), "wikichat "+Version) {
			t.Errorf("%v: output = %q", args, env.stdout.String())
		}
	}
}

func TestRootCommand_NoArgsInteractiveStartsChat(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Interactive = func() bool { return true }

	if err := env.run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.tui.called {
		t.Error("expected the chat to start")
	}
	if !env.client.CloseCalled {
		t.Error("expected the client to be closed after the chat")
	}
}

func TestRootCommand_NoArgsNotInteractiveShowsHelp(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.tui.called {
		t.Error("chat should not start without a terminal")
	}
	if !strings.Contains(env.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", env.stdout.String())
	}
}

func TestSettings_FlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Interactive = func() bool { return true }

	if err := env.run("chat", "--lang", "EN", "-s", "5", "--theme", "light", "--verbose"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := env.tui.cfg
	if cfg.Language != "en" {
		t.Errorf("Language = %s, want en", cfg.Language)
	}
	if cfg.Sentences != 5 {
		t.Errorf("Sentences = %d, want 5", cfg.Sentences)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %s, want light", cfg.Theme)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be set")
	}
}

func TestSettings_UnsetFlagsKeepConfig(t *testing.T) {
	env := newTestEnv(t)
	env.fileCfg.Language = "de"
	env.fileCfg.Sentences = 2

	if err := env.run("chat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.tui.cfg.Language != "de" || env.tui.cfg.Sentences != 2 {
		t.Errorf("config values lost: %+v", env.tui.cfg)
	}
}

func TestSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad theme", []string{"chat", "--theme", "neon"}},
		{"too many sentences", []string{"chat", "--sentences", "50"}},
		{"zero sentences", []string{"chat", "--sentences", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.run(tt.args...); err == nil {
				t.Error("expected an error")
			}
			if env.tui.called {
				t.Error("chat should not start with invalid settings")
			}
		})
	}
}

func TestChatCommand_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("chat", "extra"); err == nil {
		t.Error("expected an error for positional arguments")
	}
}

func TestFlagsAreNotShared(t *testing.T) {
	// Each tree gets its own flag storage
	a := NewRootCmd(NewDependencies())
	b := NewRootCmd(NewDependencies())
	_ = a.PersistentFlags().Set("lang", "en")
	if got, _ := b.PersistentFlags().GetString("lang"); got != "" {
		t.Errorf("flag leaked between command trees: %q", got)
	}
}
