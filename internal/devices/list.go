package devices

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/ui"
)

// Lister fetches registered devices.
type Lister interface {
	ListDevices(ctx context.Context) ([]backend.Device, error)
}

// Columns shared by the panel and the plain-text devices command.
var Columns = []ui.TableColumn{
	{Title: "NAME", Width: 18},
	{Title: "ADDRESS", Width: 16},
	{Title: "CLUSTER", Width: 36},
}

// Rows converts devices to table rows matching Columns.
func Rows(devices []backend.Device) [][]string {
	rows := make([][]string, len(devices))
	for i, d := range devices {
		cluster := d.ClusterUUID
		if cluster == "" {
			cluster = "-"
		}
		rows[i] = []string{d.DisplayName(), d.Address, cluster}
	}
	return rows
}

var (
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	errorLineStyle  = lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedLineStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

// RefreshKey re-fetches the list while the panel has focus. The landing
// keymap shows it in the help bar.
var RefreshKey = key.NewBinding(
	key.WithKeys("r"),
	key.WithHelp("r", "refresh list"),
)

// ListModel is the device list panel. Until the first fetch returns it shows
// the loading indicator in place of the table.
type ListModel struct {
	lister  Lister
	spinner ui.SpinnerComponent
	table   table.Model

	fetchID int
	loading bool
	devices []backend.Device
	err     error

	width   int
	height  int
	focused bool
}

// NewListModel creates the panel. Nothing is fetched until Init.
func NewListModel(lister Lister) ListModel {
	return ListModel{
		lister:  lister,
		spinner: ui.NewLoadingIndicator("Loading devices"),
		table:   ui.NewTable(Columns, nil, 0),
		loading: true,
		fetchID: 1,
	}
}

// Init starts the first fetch.
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.fetchCmd())
}

// Update handles fetch results, refresh requests, and navigation keys.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case devicesLoadedMsg:
		if msg.id != m.fetchID {
			// A newer fetch is in flight
			return m, nil
		}
		m.loading = false
		m.spinner.Stop()
		m.err = msg.err
		if msg.err == nil {
			m.devices = msg.devices
		}
		m.rebuildTable()
		return m, nil

	case RegisteredMsg:
		return m, m.refresh()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if key.Matches(msg, RefreshKey) {
			return m, m.refresh()
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m ListModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Devices"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
	case m.err != nil:
		b.WriteString(errorLineStyle.Render(ui.SymbolFail + " " + errors.Short(m.err)))
		b.WriteString("\n")
		b.WriteString(mutedLineStyle.Render("press r to retry"))
	case len(m.devices) == 0:
		b.WriteString(mutedLineStyle.Render("No devices registered yet."))
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(mutedLineStyle.Render(fmt.Sprintf("%d device(s)", len(m.devices))))
	}

	return b.String()
}

// SetSize sets the panel's outer dimensions.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.rebuildTable()
}

// Focus gives the panel keyboard focus.
func (m *ListModel) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *ListModel) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused reports whether the panel has keyboard focus.
func (m ListModel) Focused() bool { return m.focused }

// Loading reports whether a fetch is in flight.
func (m ListModel) Loading() bool { return m.loading }

// Devices returns the last successfully fetched devices.
func (m ListModel) Devices() []backend.Device { return m.devices }

// Err returns the last fetch error, if any.
func (m ListModel) Err() error { return m.err }

func (m *ListModel) refresh() tea.Cmd {
	m.fetchID++
	m.loading = true
	m.err = nil
	return tea.Batch(m.spinner.Start(), m.fetchCmd())
}

func (m ListModel) fetchCmd() tea.Cmd {
	lister, id := m.lister, m.fetchID
	return func() tea.Msg {
		devices, err := lister.ListDevices(context.Background())
		return devicesLoadedMsg{id: id, devices: devices, err: err}
	}
}

func (m *ListModel) rebuildTable() {
	rows := Rows(m.devices)
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}

	height := len(rows) + 1
	// title, blank line, and the count line
	if m.height > 0 && height > m.height-4 {
		height = m.height - 4
	}

	focused := m.focused
	m.table = ui.NewTable(Columns, tableRows, height)
	if focused {
		m.table.Focus()
	}
}
