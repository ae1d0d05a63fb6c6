package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication (ANSI codes for broad terminal support).
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Accent colors for the banner and focused panels.
const (
	ColorAccent lipgloss.Color = "#FF2E97"
	ColorBorder lipgloss.Color = "#2A2A4A"
)

// DisableColors switches lipgloss to monochrome output (--no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
