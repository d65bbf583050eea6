package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mdmuzammil18/invoice-app/internal/export"
)

type exportState int

const (
	exportStatePath exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state exportState
	err   error

	form    *huh.Form
	path    string
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *export.Service, defaultDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		exportService: svc,
		path:          defaultDir,
		spinner:       s,
	}
	m.form = m.buildPathForm()

	return m
}

func (m ExportModel) Title() string { return "Export Invoices" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.form.GetString("path")))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m *ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Rendering invoices to PDF...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.exportService.Export(ctx, nil, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: m.exportService.GenerateSummary(items)}
	}
}
