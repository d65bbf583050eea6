package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mdmuzammil18/invoice-app/internal/auth"
	"github.com/Mdmuzammil18/invoice-app/internal/form"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type LoginModel struct {
	CommonModel
	gate *auth.Gate

	form     *huh.Form
	username string
	password string

	submitting bool
	fieldErrs  map[string]string
	err        error
}

func NewLoginModel(gate *auth.Gate) LoginModel {
	m := LoginModel{gate: gate}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: submit | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Placeholder("Enter your username").
				Value(&m.username),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(44).WithShowHelp(false)
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false

		if msg.err != nil {
			m.err = msg.err
		}

		m.fieldErrs = msg.fieldErrs

		if msg.err == nil && len(msg.fieldErrs) == 0 {
			return m, func() tea.Msg { return LoginSuccessMsg{} }
		}

		// Rebuild the form so another attempt can be made.
		m.password = ""
		m.form = m.buildForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.submitting {
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.err = nil
	m.fieldErrs = nil

	return m, m.loginCmd(m.form.GetString("username"), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Login")

	body := m.form.View()
	if m.submitting {
		body = "Signing in..."
	}

	var errLines string

	if m.err != nil {
		errLines += errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	for _, field := range []string{"username", "password"} {
		if msg, ok := m.fieldErrs[field]; ok {
			errLines += errStyle.Render(msg) + "\n"
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", errLines+body),
	)
}

type loginResultMsg struct {
	fieldErrs map[string]string
	err       error
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		// Pre-check so empty submissions fail fast without touching storage.
		if errs := form.ValidateLogin(username, password); len(errs) > 0 {
			return loginResultMsg{fieldErrs: errs}
		}

		fieldErrs, err := m.gate.Login(username, password)

		return loginResultMsg{fieldErrs: fieldErrs, err: err}
	}
}
