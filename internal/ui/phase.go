package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// PhaseDisplay renders step-by-step status lines to a writer. It is used for
// the non-interactive output of commands that would otherwise show a TUI.
type PhaseDisplay struct {
	w io.Writer
}

// NewPhaseDisplay creates a new phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{w: w}
}

// RenderProgress renders a phase in progress.
// Shows: ◐ Checking SSH key...
func (pd *PhaseDisplay) RenderProgress(name string) {
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	fmt.Fprintf(pd.w, "%s %s...\n", style.Render(SymbolProgress), name)
}

// RenderSuccess renders a completed phase.
// Shows: ● SSH key ready (0.3s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	symbolStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(pd.w, "%s %s %s\n",
		symbolStyle.Render(SymbolComplete),
		name,
		timingStyle.Render(formatDuration(duration)),
	)
}

// RenderWarning renders a phase that finished without the result it wanted
// but did not stop anything.
// Shows: ⚠ SSH key setup failed (0.1s)
func (pd *PhaseDisplay) RenderWarning(name string, duration time.Duration) {
	symbolStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(pd.w, "%s %s %s\n",
		symbolStyle.Render(SymbolWarning),
		name,
		timingStyle.Render(formatDuration(duration)),
	)
}

// RenderSubStatus renders an indented sub-status line.
// Shows:   ○ fingerprint  SHA256:...
func (pd *PhaseDisplay) RenderSubStatus(symbol string, name string, status string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "  %s %s %s\n",
		style.Render(symbol),
		name,
		style.Render(status),
	)
}

// Divider renders a horizontal line.
func (pd *PhaseDisplay) Divider(width int) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "%s\n", style.Render(strings.Repeat("━", width)))
}

// formatDuration formats a duration for display (e.g., "(0.3s)", "(1.2s)").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("(%.2fs)", secs)
	}
	return fmt.Sprintf("(%.1fs)", secs)
}
