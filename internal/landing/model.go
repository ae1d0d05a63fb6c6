package landing

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/devices"
	"github.com/loghoi/loghoi/internal/logger"
	"github.com/loghoi/loghoi/internal/readiness"
	"github.com/loghoi/loghoi/internal/ui"
)

// Starter launches the readiness check. *readiness.Runner satisfies it.
type Starter interface {
	Start()
}

// Options wires the model to its collaborators.
type Options struct {
	Starter   Starter
	Lister    devices.Lister
	Registrar devices.Registrar
	Aliases   devices.AliasResolver
	Log       logger.Logger
}

type pane int

const (
	paneList pane = iota
	paneRegister
)

// Model is the Bubble Tea model for the landing screen.
type Model struct {
	opts Options

	state       readiness.State
	loading     ui.SpinnerComponent
	fingerprint string

	// Main view, built when setup completes
	mounted  bool
	list     devices.ListModel
	register devices.RegisterModel
	focus    pane

	keys     keyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	quitting bool
}

// NewModel creates the landing model in the setup view.
func NewModel(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	return Model{
		opts:    opts,
		state:   readiness.NewState(),
		loading: ui.NewLoadingIndicator("Loading"),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init animates the loading indicator and starts the readiness check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.startCmd())
}

func (m Model) startCmd() tea.Cmd {
	starter := m.opts.Starter
	if starter == nil {
		return nil
	}
	return func() tea.Msg {
		starter.Start()
		return nil
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.mounted {
			m.layout()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PhaseMsg:
		return m.handlePhase(msg)
	}

	if !m.mounted {
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	}
	return m.updatePanels(msg)
}

func (m Model) handlePhase(msg PhaseMsg) (tea.Model, tea.Cmd) {
	if err := m.state.Advance(msg.Phase); err != nil {
		m.opts.Log.Debug("ignoring phase change: %v", err)
		return m, nil
	}

	if msg.Outcome.PublicKey != "" && m.fingerprint == "" {
		if fp, err := backend.Fingerprint(msg.Outcome.PublicKey); err == nil {
			m.fingerprint = fp
		} else {
			m.opts.Log.Debug("backend public key not parseable: %v", err)
		}
	}

	if m.state.SetupComplete() && !m.mounted {
		return m, m.mount()
	}
	return m, nil
}

// mount builds the main view. Called exactly once, on the transition to
// PhaseComplete.
func (m *Model) mount() tea.Cmd {
	m.mounted = true
	m.loading.Stop()
	m.list = devices.NewListModel(m.opts.Lister)
	m.register = devices.NewRegisterModel(m.opts.Registrar, m.opts.Aliases)
	m.focus = paneList
	m.list.Focus()
	m.layout()
	return tea.Batch(m.list.Init(), m.register.Init())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.mounted {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Switch) {
		m.toggleFocus()
		return m, nil
	}

	// The form takes every other key so q and ? can be typed into it.
	if m.focus == paneList {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.register, cmd = m.register.Update(msg)
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == paneList {
		m.focus = paneRegister
		m.list.Blur()
		m.register.Focus()
		return
	}
	m.focus = paneList
	m.register.Blur()
	m.list.Focus()
}

// updatePanels hands non-key messages to both panels; each ignores what
// isn't addressed to it.
func (m Model) updatePanels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var listCmd, registerCmd tea.Cmd
	m.list, listCmd = m.list.Update(msg)
	m.register, registerCmd = m.register.Update(msg)
	return m, tea.Batch(listCmd, registerCmd)
}

// Phase returns the current readiness phase.
func (m Model) Phase() readiness.Phase { return m.state.Phase() }

// SetupComplete reports whether the main view is showing.
func (m Model) SetupComplete() bool { return m.state.SetupComplete() }

// History returns the readiness phases seen so far.
func (m Model) History() []readiness.Phase { return m.state.History() }

// Mounted reports whether the device panels have been created.
func (m Model) Mounted() bool { return m.mounted }

// Fingerprint returns the backend key fingerprint, if the backend sent a key.
func (m Model) Fingerprint() string { return m.fingerprint }
