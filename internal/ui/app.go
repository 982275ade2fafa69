// Package ui provides the Bubble Tea shell for the fermentation
// monitor: a login form and a chart view fed by pipeline outcomes.
package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wortmonitor/internal/credstore"
	"wortmonitor/internal/pipeline"
	"wortmonitor/internal/prefs"
	"wortmonitor/internal/series"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewChart
)

// chartSeries is the cycle order for the chart view. "time" is the x
// axis, never charted on its own.
var chartSeries = []string{"plato", "temperature", "voltage"}

// seriesUnits maps a series name to its display unit.
var seriesUnits = map[string]string{
	"plato":       "°P",
	"temperature": "°C",
	"voltage":     "V",
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Orchestrator *pipeline.Orchestrator
	Store        credstore.Store
	PrefsPath    string

	// AutoSignIn, when set, signs in with the remembered credentials as
	// soon as the program starts.
	AutoSignIn *credstore.Credentials
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	orch      *pipeline.Orchestrator
	store     credstore.Store
	prefsPath string

	view   View
	width  int
	height int
	keys   keyMap

	// Login state
	inputs   [2]textinput.Model // email, password
	focusIdx int                // 0 email, 1 password, 2 remember toggle
	remember bool
	busy     bool
	notice   string

	// Chart state
	set         series.Set
	selected    string
	lastUpdated time.Time
	modal       string

	autoSignIn *credstore.Credentials
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	email := textinput.New()
	email.Placeholder = "e-mail"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	userPrefs := prefs.Load(opts.PrefsPath)

	return Model{
		ctx:        ctx,
		orch:       opts.Orchestrator,
		store:      opts.Store,
		prefsPath:  opts.PrefsPath,
		view:       ViewLogin,
		keys:       defaultKeyMap(),
		inputs:     [2]textinput.Model{email, password},
		selected:   userPrefs.Series,
		autoSignIn: opts.AutoSignIn,
		busy:       opts.AutoSignIn != nil,
	}
}

type outcomeMsg pipeline.Outcome

type opErrMsg struct{ err error }

// waitForOutcome blocks on the orchestrator's outcome channel and
// re-arms after every message, the usual channel-to-Cmd bridge.
func waitForOutcome(ch <-chan pipeline.Outcome) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(<-ch)
	}
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := m.orch.SignIn(m.ctx, email, password); err != nil {
			return opErrMsg{err}
		}
		return nil
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.orch.Refresh(m.ctx); err != nil {
			return opErrMsg{err}
		}
		return nil
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		waitForOutcome(m.orch.Outcomes()),
	}
	if m.autoSignIn != nil {
		cmds = append(cmds, m.signInCmd(m.autoSignIn.Email, m.autoSignIn.Password))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		return m.handleOutcome(pipeline.Outcome(msg))

	case opErrMsg:
		m.busy = false
		m.notice = msg.err.Error()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// A blocking informational message swallows the next key press.
	if m.modal != "" {
		m.modal = ""
		return m, nil
	}

	if m.view == ViewLogin {
		return m.handleLoginKey(msg)
	}
	return m.handleChartKey(msg)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.focusIdx = (m.focusIdx + 1) % 3
		return m.applyFocus(), nil

	case key.Matches(msg, m.keys.PrevField):
		m.focusIdx = (m.focusIdx + 2) % 3
		return m.applyFocus(), nil

	case key.Matches(msg, m.keys.Toggle) && m.focusIdx == 2:
		m.remember = !m.remember
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.notice = ""
		return m, m.signInCmd(m.inputs[0].Value(), m.inputs[1].Value())
	}

	return m.updateInputs(msg)
}

func (m Model) handleChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.CycleSeries):
		m.selected = nextSeries(m.selected)
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Series: m.selected}); err != nil {
			slog.Warn("saving preferences failed", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.LogOut):
		return m.logOut()
	}

	return m, nil
}

func (m Model) handleOutcome(outcome pipeline.Outcome) (tea.Model, tea.Cmd) {
	rearm := waitForOutcome(m.orch.Outcomes())

	switch outcome.Kind {
	case pipeline.KindAuthenticated:
		if m.remember && m.store != nil {
			creds := credstore.Credentials{
				Email:    m.inputs[0].Value(),
				Password: m.inputs[1].Value(),
			}
			if err := credstore.Remember(m.store, creds); err != nil {
				slog.Warn("remembering credentials failed", "error", err)
			}
		}
		// Still busy: the first data outcome follows.
		return m, rearm

	case pipeline.KindAuthFailed:
		m.busy = false
		m.notice = "Incorrect e-mail or password!"
		return m, rearm

	case pipeline.KindAuthMalformed:
		m.busy = false
		m.notice = "Sign-in service returned an unexpected response."
		return m, rearm

	case pipeline.KindDataReady:
		m.busy = false
		m.view = ViewChart
		m.set = outcome.Series
		m.lastUpdated = time.Now()
		if _, ok := m.set[m.selected]; !ok {
			m.selected = nextSeries(m.selected)
		}
		return m, rearm

	case pipeline.KindDataEmpty:
		m.busy = false
		m.view = ViewChart
		m.set = nil
		m.lastUpdated = time.Now()
		m.modal = "The database is empty."
		return m, rearm

	case pipeline.KindDataError:
		m.busy = false
		m.view = ViewChart
		m.modal = "Loading data failed, please try again."
		if outcome.Err != nil {
			slog.Warn("data fetch failed", "error", outcome.Err)
		}
		return m, rearm
	}

	return m, rearm
}

func (m Model) logOut() (tea.Model, tea.Cmd) {
	if err := m.orch.SignOut(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	if m.store != nil {
		if err := credstore.Forget(m.store); err != nil {
			slog.Warn("clearing remembered credentials failed", "error", err)
		}
	}

	m.view = ViewLogin
	m.set = nil
	m.modal = ""
	m.notice = ""
	m.remember = false
	m.inputs[0].SetValue("")
	m.inputs[1].SetValue("")
	m.focusIdx = 0
	return m.applyFocus(), nil
}

func (m Model) applyFocus() Model {
	for i := range m.inputs {
		if i == m.focusIdx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds[0], cmds[1])
}

// nextSeries cycles through the chartable series names.
func nextSeries(current string) string {
	for i, name := range chartSeries {
		if name == current {
			return chartSeries[(i+1)%len(chartSeries)]
		}
	}
	return chartSeries[0]
}

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
