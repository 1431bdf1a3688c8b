package commands

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/api"
	"github.com/diogo/wikichat/internal/config"
)

func TestChatCommand_RunsTUI(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.tui.called {
		t.Fatal("expected RunChat to be called")
	}
	if env.tui.cfg.Language != "ru" {
		t.Errorf("default language = %s, want ru", env.tui.cfg.Language)
	}
	if !env.client.CloseCalled {
		t.Error("client should be closed when the chat ends")
	}
}

func TestChatCommand_TUIError(t *testing.T) {
	env := newTestEnv(t)
	env.tui.err = errors.New("no tty")

	err := env.run("chat")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, env.tui.err) {
		t.Errorf("error should wrap the TUI failure, got %v", err)
	}
}

func TestChatCommand_ClientError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.NewClient = func(config.Config, *zap.Logger) (api.WikiClientInterface, error) {
		return nil, errors.New("bad transport")
	}

	if err := env.run("chat"); err == nil {
		t.Fatal("expected an error")
	}
	if env.tui.called {
		t.Error("chat should not start without a client")
	}
}

func TestChatCommand_ConfigError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		return config.DefaultConfig(), errors.New("broken config")
	}

	if err := env.run("chat"); err == nil {
		t.Fatal("expected an error")
	}
}
