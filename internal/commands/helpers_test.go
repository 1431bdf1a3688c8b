package commands

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/api"
	"github.com/diogo/wikichat/internal/config"
	"github.com/diogo/wikichat/internal/render"
)

// mockTUI records RunChat calls
type mockTUI struct {
	called bool
	cfg    config.Config
	err    error
}

func (m *mockTUI) RunChat(client api.WikiClientInterface, cfg config.Config, logger *zap.Logger) error {
	m.called = true
	m.cfg = cfg
	return m.err
}

// testEnv bundles fake dependencies and captured output
type testEnv struct {
	deps    *Dependencies
	client  *api.MockWikiClient
	tui     *mockTUI
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	copied  []string
	styles  []string
	saved   []config.Config
	fileCfg config.Config
	lastCfg config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		client:  &api.MockWikiClient{},
		tui:     &mockTUI{},
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		fileCfg: config.DefaultConfig(),
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger) (api.WikiClientInterface, error) {
			env.lastCfg = cfg
			return env.client, nil
		},
		NewLogger:      func(config.Config) *zap.Logger { return zap.NewNop() },
		LoadConfig:     func() (config.Config, error) { return env.fileCfg, nil },
		LoadFileConfig: func() (config.Config, error) { return env.fileCfg, nil },
		SaveConfig: func(cfg config.Config) error {
			env.saved = append(env.saved, cfg)
			return nil
		},
		TUI: env.tui,
		Clipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		Render: func(title, text string, opts render.Options) (string, error) {
			env.styles = append(env.styles, opts.Style)
			return render.Answer(title, text, opts)
		},
		Stdin:       strings.NewReader(""),
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		StdinPiped:  func() bool { return false },
		Interactive: func() bool { return false },
	}
	return env
}

// run executes the command tree with args
func (env *testEnv) run(args ...string) error {
	cmd := NewRootCmd(env.deps)
	cmd.SetArgs(args)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	return cmd.Execute()
}
