package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/R-Stev/invest/internal/prefs"
	"github.com/R-Stev/invest/internal/session"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Session      *session.Session
	ThemeName    string
	Follow       bool
	PrefsPath    string
	RefreshEvery time.Duration
}

const defaultRefresh = time.Second

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	sess      *session.Session
	prefsPath string
	refresh   time.Duration

	keys   keyMap
	theme  Theme
	styles Styles
	follow bool

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	lastVersion uint64
	lines       int
	showHelp    bool
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	if refresh > time.Second {
		refresh = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)
	return Model{
		ctx:       ctx,
		sess:      opts.Session,
		prefsPath: prefsPath,
		refresh:   refresh,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
		follow:    opts.Follow,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refresh),
		watchContextCmd(m.ctx),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header and footer each take one line.
		body := msg.Height - 2
		if body < 1 {
			body = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, body)
			m.ready = true
			m.refreshBuffer(true)
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = body
		}
		return m, nil

	case tickMsg:
		if m.ready {
			m.refreshBuffer(false)
		}
		return m, tickCmd(m.refresh)

	case ctxDoneMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()
		m.refreshBuffer(true)
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.follow = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	// Manual scrolling away from the bottom suspends following until the
	// user returns or toggles it back on.
	if m.follow && !m.viewport.AtBottom() {
		m.follow = false
	}
	return m, cmd
}

// refreshBuffer re-renders the log panel when the buffer changed since the
// last look. force bypasses the version check, for theme changes.
func (m *Model) refreshBuffer(force bool) {
	snap := m.sess.Buffer().Snapshot()
	if !force && snap.Version == m.lastVersion {
		return
	}
	m.lastVersion = snap.Version
	m.lines = snap.Lines
	m.viewport.SetContent(renderContent(snap.Content, m.styles))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Follow: m.follow})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	follow := "follow off"
	if m.follow {
		follow = "follow on"
	}
	header := fmt.Sprintf("run %s  ·  %d lines  ·  %s  ·  %s",
		m.sess.ID(), m.lines, m.sess.Source(), follow)
	return m.styles.Header.Width(m.width).Render(header)
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				m.styles.Text.Render(h.Key), m.styles.MutedText.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedText.Render("Press any key to close"))
	return b.String()
}

// Messages

type tickMsg time.Time

type ctxDoneMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ctxDoneMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("ui requires a session")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
