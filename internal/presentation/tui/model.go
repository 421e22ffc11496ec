package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/dispatcher"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/runner"
	"github.com/aretw0/cvterm/pkg/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Placeholder is shown in the empty input line.
const Placeholder = "Type a command or tap any highlighted command above..."

// Engine is the part of the terminal the view drives.
type Engine interface {
	NewSession(ctx context.Context, opts ...session.Option) *session.Session
	Boot(ctx context.Context, s *session.Session) error
	Execute(ctx context.Context, s *session.Session, input string) (dispatcher.Result, error)
	Status() render.Status
}

// transcriptChangedMsg tells the model to re-read the session.
// Bursts of changes collapse into one message.
type transcriptChangedMsg struct{}

// terminateMsg is delivered when the session's exit timer fires.
type terminateMsg struct{}

// bootDoneMsg carries the result of the boot script.
type bootDoneMsg struct {
	err error
}

// Model is the bubbletea model of the full-screen terminal.
type Model struct {
	engine  Engine
	session *session.Session
	changes chan struct{}
	done    chan struct{}

	keys   KeyMap
	theme  Theme
	styles styles
	status render.Status
	logger *slog.Logger

	viewport viewport.Model
	input    textinput.Model
	maxInput int

	entries []domain.Entry
	phase   domain.Phase
	targets []clickTarget
	notice  string

	width  int
	height int
	ready  bool
}

// Option configures the Model.
type Option func(*Model)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithTheme replaces the default colours.
func WithTheme(theme Theme) Option {
	return func(m *Model) {
		m.theme = theme
	}
}

// WithMaxInputSize bounds a submitted command line.
func WithMaxInputSize(n int) Option {
	return func(m *Model) {
		m.maxInput = n
	}
}

// WithLogger sets the logger. It must not write to the terminal.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// NewModel opens a session on engine and returns the view bound to it.
// Call Close when the program ends.
func NewModel(ctx context.Context, engine Engine, opts ...Option) Model {
	m := Model{
		engine:   engine,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		status:   engine.Status(),
		maxInput: runner.DefaultMaxInputSize,
		phase:    domain.PhaseBooting,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	m.styles = newStyles(m.theme)

	var once sync.Once
	done := m.done
	m.session = engine.NewSession(ctx, session.WithTerminate(func() {
		once.Do(func() { close(done) })
	}))
	changes := m.changes
	m.session.Subscribe(func(session.Change) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = Placeholder
	m.input.CharLimit = m.maxInput
	m.input.PlaceholderStyle = m.styles.faint
	m.input.TextStyle = m.styles.text

	m.viewport = viewport.New(0, 0)
	m.viewport.MouseWheelEnabled = true
	return m
}

// Session returns the session shown by the view.
func (m Model) Session() *session.Session {
	return m.session
}

// Close ends the session, cancelling the boot script and exit timer.
func (m Model) Close() {
	m.session.Close()
}

// Init implements tea.Model. It starts the boot script and begins
// listening for transcript changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen(), m.boot())
}

func (m Model) boot() tea.Cmd {
	s, engine := m.session, m.engine
	return func() tea.Msg {
		return bootDoneMsg{err: engine.Boot(s.Context(), s)}
	}
}

// listen blocks until the transcript changes, the exit timer fires or the
// session ends.
func (m Model) listen() tea.Cmd {
	changes, done, sessionDone := m.changes, m.done, m.session.Context().Done()
	return func() tea.Msg {
		select {
		case <-done:
			return terminateMsg{}
		case <-changes:
			return transcriptChangedMsg{}
		case <-sessionDone:
			return nil
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()

	case transcriptChangedMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, m.listen())

	case terminateMsg:
		m.session.Close()
		return m, tea.Quit

	case bootDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, domain.ErrSessionClosed) {
			m.logger.Error("Boot failed", "err", msg.err)
		}
		return m, m.sync()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submit(m.input.Value())
		return m, nil
	}

	if m.phase != domain.PhaseReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if err := m.session.SetPending(m.input.Value()); err != nil {
		m.logger.Debug("Pending input not stored", "err", err)
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonLeft {
		if msg.Action == tea.MouseActionPress {
			if name := m.targetAt(msg.X, msg.Y); name != "" {
				m.submit(name)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit dispatches raw through the same path for typed and clicked
// commands. Blank input and input before boot finishes are ignored.
func (m *Model) submit(raw string) {
	if m.phase != domain.PhaseReady || strings.TrimSpace(raw) == "" {
		return
	}
	clean, err := runner.SanitizeInput(raw, m.maxInput)
	if err != nil {
		m.logger.Debug("Input rejected", "err", err, "size", len(raw))
		m.notice = err.Error()
		clean = runner.RejectedEcho(raw)
	} else {
		m.notice = ""
	}
	m.input.Reset()

	if _, err := m.engine.Execute(m.session.Context(), m.session, clean); err != nil {
		if !errors.Is(err, domain.ErrSessionClosed) {
			m.logger.Error("Execute failed", "err", err)
		}
	}
	m.sync()
}

// sync copies the session into the model and scrolls to the bottom.
func (m *Model) sync() tea.Cmd {
	m.entries = m.session.Entries()
	phase := m.session.Phase()

	var cmd tea.Cmd
	if phase == domain.PhaseReady && m.phase != domain.PhaseReady {
		cmd = m.input.Focus()
	}
	m.phase = phase
	m.layout()
	m.refresh()
	return cmd
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-1)
	m.input.Width = max(1, m.width-4)
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	content, targets := m.renderTranscript()
	m.targets = targets
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + m.inputLine()
}

func (m Model) inputLine() string {
	if m.phase != domain.PhaseReady {
		return ""
	}
	return m.styles.prompt.Render(render.Prompt) + " " + m.input.View()
}
