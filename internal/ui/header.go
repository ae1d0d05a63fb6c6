package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Title is the banner shown on every landing screen.
const Title = "Welcome to Log Hoihoi!"

// BannerInfo contains what the title banner shows.
type BannerInfo struct {
	Title    string // Defaults to Title
	Subtitle string // Optional muted line under the title
}

// RenderBanner renders the title banner centered in width columns.
// A width of zero or less renders without centering.
func RenderBanner(info BannerInfo, width int) string {
	title := info.Title
	if title == "" {
		title = Title
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	lines := []string{titleStyle.Render(title)}
	if info.Subtitle != "" {
		lines = append(lines, subtitleStyle.Render(info.Subtitle))
	}

	if width <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, l := range lines {
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, l)
	}
	return strings.Join(lines, "\n")
}
