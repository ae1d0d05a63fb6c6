package landing

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/loghoi/loghoi/internal/ui"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorBorder).
			Padding(0, 1)

	panelFocusedStyle = panelStyle.
				BorderForeground(ui.ColorAccent)
)

// Fallback size before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// View renders the setup view until setup completes, then the main view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.mounted {
		return m.setupView()
	}
	return m.mainView()
}

func (m Model) setupView() string {
	loading := m.loading
	loading.Detail = StatusMessage(m.state.Phase())

	body := lipgloss.JoinVertical(lipgloss.Center,
		ui.RenderBanner(ui.BannerInfo{}, 0),
		"",
		loading.View(),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) mainView() string {
	width, _ := m.size()

	var subtitle string
	if m.fingerprint != "" {
		subtitle = "backend key " + m.fingerprint
	}
	banner := ui.RenderBanner(ui.BannerInfo{Subtitle: subtitle}, width)

	listStyle, registerStyle := panelStyle, panelStyle
	if m.focus == paneList {
		listStyle = panelFocusedStyle
	} else {
		registerStyle = panelFocusedStyle
	}

	leftWidth, rightWidth := m.panelWidths()
	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Width(leftWidth).Render(m.list.View()),
		registerStyle.Width(rightWidth).Render(m.register.View()),
	)

	var b strings.Builder
	b.WriteString(banner)
	b.WriteString("\n\n")
	b.WriteString(panels)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// panelWidths splits the screen in half, minus borders and padding.
func (m Model) panelWidths() (int, int) {
	width, _ := m.size()
	frame := panelStyle.GetHorizontalFrameSize()
	left := width/2 - frame
	right := width - width/2 - frame
	if left < 10 {
		left = 10
	}
	if right < 10 {
		right = 10
	}
	return left, right
}

// layout pushes the current size down to the panels.
func (m *Model) layout() {
	_, height := m.size()
	left, right := m.panelWidths()
	// banner (2), spacer (1), borders (2), help (1)
	panelHeight := height - 6
	m.list.SetSize(left, panelHeight)
	m.register.SetWidth(right)
}
