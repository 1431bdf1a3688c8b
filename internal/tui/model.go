package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/wikichat/internal/api"
	"github.com/diogo/wikichat/internal/config"
	"github.com/diogo/wikichat/internal/history"
	"github.com/diogo/wikichat/internal/lookup"
	"github.com/diogo/wikichat/internal/models"
	"github.com/diogo/wikichat/internal/render"
)

const (
	// minBubbleLines is the smallest body a bubble is drawn with
	minBubbleLines = 2
	// bubblePadY is the blank rows above and below a bubble body
	bubblePadY = 1
	// bubbleWidthPercent is the share of the message area a bubble may use
	bubbleWidthPercent = 75

	headerHeight = 1
	inputHeight  = 3
	statusHeight = 1
)

// Message types for the TUI
type (
	// lookupResultMsg carries one finished lookup onto the UI loop
	lookupResultMsg struct {
		result lookup.Result
	}
	// resultsClosedMsg is sent once the dispatcher has shut down
	resultsClosedMsg struct{}
	// clipboardMsg reports the outcome of a copy
	clipboardMsg struct {
		err error
	}
)

// LookupDispatcher runs lookups off the UI loop
type LookupDispatcher interface {
	Submit(query, placeholderID string) (string, error)
	Results() <-chan lookup.Result
	CancelAll() int
}

// Model represents the TUI state
type Model struct {
	dispatcher LookupDispatcher
	logger     *zap.Logger
	copyText   func(string) error
	renderText func(title, text string, opts render.Options) (string, error)

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keys     keyMap
	styles   Styles

	// State
	transcript history.Transcript
	notice     string
	ready      bool

	// Dimensions
	width  int
	height int
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithTheme selects the starting palette by name
func WithTheme(name string) ModelOption {
	return func(m *Model) {
		m.styles = NewStyles(render.ThemeByName(name))
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClipboard replaces the function used to copy answers
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.copyText = fn
		}
	}
}

// WithRenderer replaces the markdown renderer used for answers
func WithRenderer(fn func(title, text string, opts render.Options) (string, error)) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.renderText = fn
		}
	}
}

// NewChatModel creates a new chat TUI model
func NewChatModel(dispatcher LookupDispatcher, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = models.InputPlaceholder
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		dispatcher: dispatcher,
		logger:     zap.NewNop(),
		copyText:   clipboard.WriteAll,
		renderText: render.Answer,
		input:      ti,
		spinner:    s,
		keys:       defaultKeyMap(),
		styles:     NewStyles(render.DarkTheme),
		transcript: history.NewTranscript(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.applyStyles()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForResult(m.dispatcher.Results()),
	)
}

// waitForResult blocks on the dispatcher channel and turns the next Result
// into a message. It is re-armed after every delivery.
func waitForResult(results <-chan lookup.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return resultsClosedMsg{}
		}
		return lookupResultMsg{result: res}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 3 {
			vpHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.input.Width = m.width - lipgloss.Width(m.sendButton()) - 8
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil

		case key.Matches(msg, m.keys.NewChat):
			m.newChat()
			return m, nil

		case key.Matches(msg, m.keys.Theme):
			m.toggleTheme()
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			text, ok := m.transcript.LastAnswer()
			if !ok {
				return m, nil
			}
			return m, m.copy(text)

		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown, m.keys.LineUp, m.keys.LineDown):
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		m.notice = ""
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case lookupResultMsg:
		m.deliver(msg.result)
		return m, waitForResult(m.dispatcher.Results())

	case resultsClosedMsg:
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("copy to clipboard failed", zap.Error(msg.err))
			m.notice = "не удалось скопировать"
		} else {
			m.notice = "скопировано"
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.transcript.PendingCount() > 0 {
			m.updateViewport()
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit appends the query and its placeholder and hands the lookup to the
// dispatcher. Blank input leaves the transcript untouched.
func (m *Model) submit() {
	user, placeholder, ok := m.transcript.Submit(m.input.Value())
	m.input.Reset()
	if !ok {
		return
	}
	m.notice = ""

	requestID, err := m.dispatcher.Submit(user.Text, placeholder.ID)
	if err != nil {
		m.logger.Error("submit lookup", zap.String("query", user.Text), zap.Error(err))
		m.transcript.Resolve(placeholder.ID, models.NoInternetText)
	} else {
		m.logger.Debug("query submitted",
			zap.String("query", user.Text),
			zap.String("request_id", requestID),
			zap.String("placeholder_id", placeholder.ID))
	}

	m.updateViewport()
	m.viewport.GotoBottom()
}

// deliver swaps a placeholder for its lookup result. Results whose
// placeholder is gone belong to a cleared chat and are dropped.
func (m *Model) deliver(res lookup.Result) {
	if !m.transcript.Resolve(res.PlaceholderID, res.Text) {
		m.logger.Debug("dropping stale lookup result",
			zap.String("request_id", res.RequestID),
			zap.String("query", res.Query),
			zap.Bool("cancelled", res.Cancelled))
		return
	}
	m.updateViewport()
	m.viewport.GotoBottom()
}

// newChat cancels running lookups and resets the transcript to the greeting
func (m *Model) newChat() {
	if n := m.dispatcher.CancelAll(); n > 0 {
		m.logger.Debug("new chat cancelled lookups", zap.Int("count", n))
	}
	m.transcript.Reset()
	m.input.Reset()
	m.notice = ""
	m.updateViewport()
	m.viewport.GotoTop()
}

// toggleTheme switches palettes without touching the transcript
func (m *Model) toggleTheme() {
	m.styles = m.styles.Toggle()
	m.applyStyles()
	m.updateViewport()
}

// applyStyles pushes the current palette into the child components
func (m *Model) applyStyles() {
	m.input.TextStyle = m.styles.InputText
	m.input.PlaceholderStyle = m.styles.InputHint
	m.input.PromptStyle = m.styles.InputHint
	m.spinner.Style = m.styles.Spinner
}

func (m Model) copy(text string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		return clipboardMsg{err: copyText(text)}
	}
}

// Transcript returns the current transcript
func (m Model) Transcript() history.Transcript {
	return m.transcript
}

// Styles returns the active styles
func (m Model) Styles() Styles {
	return m.styles
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "  " + models.AppTitle + "..."
	}

	sections := []string{
		m.renderHeader(),
		m.styles.Messages.Width(m.width).Height(m.viewport.Height).Render(m.viewport.View()),
		m.renderInput(),
		m.renderStatusBar(),
	}
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderHeader draws the title with the theme and new chat buttons
func (m Model) renderHeader() string {
	title := m.styles.Title.Render(models.AppTitle)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Button.Render(m.styles.ThemeButtonLabel()),
		" ",
		m.styles.Button.Render(models.NewChatLabel),
	)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(buttons) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := m.styles.Title.Render(strings.Repeat(" ", gap))

	return m.styles.Header.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, title, spacer, buttons),
	)
}

func (m Model) sendButton() string {
	return m.styles.SendButton.Render(models.SearchLabel)
}

// renderInput draws the text field and the send button
func (m Model) renderInput() string {
	field := m.styles.Input.Width(m.width - lipgloss.Width(m.sendButton()) - 3).Render(m.input.View())
	button := lipgloss.NewStyle().PaddingTop(1).Render(m.sendButton())
	return lipgloss.JoinHorizontal(lipgloss.Top, field, " ", button)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar() string {
	var items []string
	for _, b := range m.keys.statusBindings() {
		h := b.Help()
		items = append(items, m.styles.StatusKey.Render(h.Key)+m.styles.StatusDesc.Render(" "+h.Desc))
	}
	bar := strings.Join(items, m.styles.StatusDesc.Render("  │  "))
	if m.notice != "" {
		bar = m.styles.Notice.Render(m.notice) + m.styles.StatusDesc.Render("  │  ") + bar
	}
	return m.styles.StatusBar.Width(m.width).Align(lipgloss.Center).Render(bar)
}

// bubbleWidth is the outer width of a message bubble
func (m Model) bubbleWidth() int {
	w := m.viewport.Width * bubbleWidthPercent / 100
	if w < 10 {
		w = 10
	}
	return w
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	width := m.bubbleWidth()

	for i, e := range m.transcript.Entries() {
		if i > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(m.renderEntry(e, width))
	}

	m.viewport.SetContent(content.String())
}

// renderEntry draws one transcript entry as a labelled bubble. User bubbles
// sit on the right, bot bubbles on the left.
func (m Model) renderEntry(e history.Entry, width int) string {
	// body width excludes the horizontal padding
	bodyWidth := width - 2

	text := e.Text
	style := m.styles.BotBubble
	label := m.styles.BotLabel.Render(models.BotLabel)
	align := lipgloss.Left

	switch {
	case e.Role == models.RoleUser:
		style = m.styles.UserBubble
		label = m.styles.UserLabel.Render(models.UserLabel)
		align = lipgloss.Right
	case e.Pending:
		style = m.styles.Pending
		text = m.spinner.View() + " " + text
	default:
		text = m.renderAnswer(text, bodyWidth)
	}

	bubble := style.
		Width(width).
		Height(bubbleHeight(text, bodyWidth)).
		PaddingTop(bubblePadY).
		PaddingBottom(bubblePadY).
		Render(text)

	block := lipgloss.JoinVertical(align, label, bubble)
	return lipgloss.PlaceHorizontal(m.viewport.Width, align, block)
}

// renderAnswer formats a bot answer with glamour in the active theme,
// falling back to the plain text
func (m Model) renderAnswer(text string, width int) string {
	opts := render.DefaultOptions().
		WithWidth(width).
		WithStyle(m.styles.Theme.Name)
	out, err := m.renderText("", text, opts)
	if err != nil {
		m.logger.Debug("render answer", zap.Error(err))
		return text
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// bubbleHeight returns the rows a bubble needs to show text wrapped at
// width, never less than minBubbleLines plus padding.
func bubbleHeight(text string, width int) int {
	if width < 1 {
		width = 1
	}
	lines := lipgloss.Height(lipgloss.NewStyle().Width(width).Render(text))
	if lines < minBubbleLines {
		lines = minBubbleLines
	}
	return lines + 2*bubblePadY
}

// RunChat starts the chat TUI against client using the settings in cfg
func RunChat(client api.WikiClientInterface, cfg config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := lookup.NewDispatcher(client,
		lookup.WithMaxConcurrent(cfg.MaxConcurrent),
		lookup.WithTimeout(cfg.Timeout()),
		lookup.WithSentences(cfg.Sentences),
		lookup.WithLogger(logger.Named("lookup")),
	)
	defer d.Close()

	m := NewChatModel(d,
		WithTheme(cfg.Theme),
		WithLogger(logger.Named("tui")),
	)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		queries := 0
		for _, msg := range fm.transcript.Messages() {
			if msg.Role == models.RoleUser {
				queries++
			}
		}
		logger.Info("chat closed",
			zap.Int("queries", queries),
			zap.Int("pending", fm.transcript.PendingCount()),
			zap.Int("in_flight", d.InFlight()))
	}
	return err
}
