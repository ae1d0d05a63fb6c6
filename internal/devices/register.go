package devices

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/errors"
	"github.com/loghoi/loghoi/internal/ui"
)

// Registrar registers devices with the backend.
type Registrar interface {
	RegisterDevice(ctx context.Context, reg backend.Registration) error
}

// registrationValues backs the form fields. Held by pointer so the huh form
// keeps writing to the same fields while the model is copied around.
type registrationValues struct {
	address  string
	username string
	password string
}

var successLineStyle = lipgloss.NewStyle().Foreground(ui.ColorSuccess)

// RegisterModel is the device registration panel.
type RegisterModel struct {
	registrar Registrar
	aliases   AliasResolver

	values     *registrationValues
	form       *huh.Form
	spinner    ui.SpinnerComponent
	submitting bool

	status    string
	statusErr bool

	width   int
	focused bool
}

// NewRegisterModel creates the panel. aliases may be nil.
func NewRegisterModel(registrar Registrar, aliases AliasResolver) RegisterModel {
	if aliases == nil {
		aliases = identityResolver{}
	}
	m := RegisterModel{
		registrar: registrar,
		aliases:   aliases,
		spinner:   ui.NewSpinnerComponent("Registering"),
	}
	m.resetForm()
	return m
}

// Init focuses the first form field.
func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update routes messages to the form and submits it once completed.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.spinner.Stop()
			m.status = fmt.Sprintf("%s %s: %s", ui.SymbolFail, msg.reg.Address, errors.Short(msg.err))
			m.statusErr = true
			m.retryForm()
			return m, m.form.Init()
		}
		m.spinner.Stop()
		m.status = fmt.Sprintf("%s Registered %s", ui.SymbolSuccess, msg.reg.Address)
		m.statusErr = false
		m.resetForm()
		address := msg.reg.Address
		return m, tea.Batch(func() tea.Msg { return RegisteredMsg{Address: address} }, m.form.Init())

	case tea.KeyMsg:
		if !m.focused || m.submitting {
			return m, nil
		}
	}

	if m.submitting {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		reg := m.registration()
		m.submitting = true
		m.status = ""
		return m, tea.Batch(cmd, m.spinner.Start(), m.submitCmd(reg))
	case huh.StateAborted:
		m.resetForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// View renders the panel.
func (m RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Register device"))
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(m.spinner.View())
	} else {
		b.WriteString(m.form.View())
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorLineStyle.Render(m.status))
		} else {
			b.WriteString(successLineStyle.Render(m.status))
		}
	}

	return b.String()
}

// SetWidth sets the panel width.
func (m *RegisterModel) SetWidth(width int) {
	m.width = width
	if m.form != nil && width > 0 {
		m.form = m.form.WithWidth(width)
	}
}

// Focus gives the panel keyboard focus.
func (m *RegisterModel) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *RegisterModel) Blur() { m.focused = false }

// Focused reports whether the panel has keyboard focus.
func (m RegisterModel) Focused() bool { return m.focused }

// Submitting reports whether a registration is in flight.
func (m RegisterModel) Submitting() bool { return m.submitting }

// Status returns the last result line.
func (m RegisterModel) Status() string { return m.status }

func (m RegisterModel) registration() backend.Registration {
	return backend.Registration{
		Address:  m.aliases.Resolve(m.values.address),
		Username: strings.TrimSpace(m.values.username),
		Password: m.values.password,
	}
}

func (m RegisterModel) submitCmd(reg backend.Registration) tea.Cmd {
	registrar := m.registrar
	return func() tea.Msg {
		err := registrar.RegisterDevice(context.Background(), reg)
		return registerResultMsg{reg: reg, err: err}
	}
}

func (m *RegisterModel) resetForm() {
	m.values = &registrationValues{}
	m.buildForm()
}

// retryForm rebuilds the form after a failed submit, keeping the address and
// username. The password is cleared.
func (m *RegisterModel) retryForm() {
	m.values = &registrationValues{address: m.values.address, username: m.values.username}
	m.buildForm()
}

func (m *RegisterModel) buildForm() {
	m.form = NewRegistrationForm(&m.values.address, &m.values.username, &m.values.password).
		WithShowHelp(false)
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
}

// NewRegistrationForm builds the registration form bound to the given fields.
// The devices command reuses it for interactive registration.
func NewRegistrationForm(address, username, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Description("IP, hostname, or SSH config alias").
				Placeholder("10.0.0.10").
				Value(address).
				Validate(required("address")),
			huh.NewInput().
				Title("Username").
				Placeholder("admin").
				Value(username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(required("password")),
		),
	)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
