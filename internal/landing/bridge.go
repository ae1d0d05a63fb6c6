package landing

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/loghoi/loghoi/internal/readiness"
)

// Bridge implements readiness.Listener and forwards phase changes to the
// Bubble Tea program via program.Send(). This is goroutine-safe.
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a new bridge that forwards events to the given program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// PhaseChanged forwards the phase change to the TUI.
func (b *Bridge) PhaseChanged(phase readiness.Phase, outcome readiness.Outcome) {
	b.program.Send(PhaseMsg{Phase: phase, Outcome: outcome})
}
