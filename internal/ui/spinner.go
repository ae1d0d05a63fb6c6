package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames is the ◐ ◓ ◑ ◒ animation at 10 frames per second.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	detailStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// SpinnerComponent is the loading indicator embedded in Bubble Tea models:
// the setup screen shows one while readiness is unknown, and the device
// panels show one while a request is in flight.
//
// A stopped spinner drops tick messages, so a hidden indicator stops
// scheduling frames.
type SpinnerComponent struct {
	spinner spinner.Model
	running bool

	Label string
	// Detail is an optional muted line rendered under the label while running.
	Detail string
}

// NewSpinnerComponent creates a stopped spinner with the given label.
func NewSpinnerComponent(label string) SpinnerComponent {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = spinnerStyle
	return SpinnerComponent{spinner: sp, Label: label}
}

// NewLoadingIndicator returns a spinner that is already running. Callers
// batch its Init into their own Init to animate it.
func NewLoadingIndicator(label string) SpinnerComponent {
	s := NewSpinnerComponent(label)
	s.running = true
	return s
}

// Init returns the first tick, or nil when stopped.
func (s SpinnerComponent) Init() tea.Cmd {
	if !s.running {
		return nil
	}
	return s.spinner.Tick
}

// Update advances the animation on spinner ticks.
func (s SpinnerComponent) Update(msg tea.Msg) (SpinnerComponent, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !s.running {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

// View renders the frame and label, then Detail when set. A stopped
// spinner renders the label next to the pending symbol.
func (s SpinnerComponent) View() string {
	if !s.running {
		return detailStyle.Render(SymbolPending) + " " + s.Label
	}
	out := s.spinner.View() + " " + s.Label + "..."
	if s.Detail != "" {
		out += "\n\n" + detailStyle.Render(s.Detail)
	}
	return out
}

// Start runs the spinner and returns the tick that animates it. Starting a
// running spinner is harmless: the spinner drops the duplicate tick.
func (s *SpinnerComponent) Start() tea.Cmd {
	s.running = true
	return s.spinner.Tick
}

// Stop halts the animation.
func (s *SpinnerComponent) Stop() {
	s.running = false
}

// Running reports whether the spinner is animating.
func (s SpinnerComponent) Running() bool {
	return s.running
}
