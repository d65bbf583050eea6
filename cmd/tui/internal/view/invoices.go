package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

type InvoicesModel struct {
	CommonModel
	invoices *invoice.Service

	state listState
	table table.Model
	invs  []*invoice.Invoice
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formStatus string
	formNotes  string
}

func NewInvoicesModel(invSvc *invoice.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 12},
		{Title: "Bill To", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoicesModel{
		invoices: invSvc,
		table:    t,
		loading:  true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: select | e: edit | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.invs = msg.invs
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else if msg.status != "" {
			m.status = msg.status
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.invoices.ClearCurrent()
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if inv := m.selected(); inv != nil {
				m.invoices.SetCurrent(inv)
				m.status = fmt.Sprintf("Selected %s", inv.InvoiceNumber)
			}

			return m, nil
		case "e":
			return m.enterEditMode()
		case "x":
			if inv := m.selected(); inv != nil {
				return m, m.deleteCmd(inv.ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invs) {
		return nil
	}

	return m.invs[idx]
}

func (m InvoicesModel) enterEditMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	m.formStatus = string(inv.Status)
	m.formNotes = inv.Notes

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(huh.NewOptions(
					string(invoice.StatusDraft),
					string(invoice.StatusPending),
					string(invoice.StatusPaid),
					string(invoice.StatusOverdue),
				)...).
				Value(&m.formStatus),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if inv := m.selected(); inv != nil && m.state == listStateBrowse {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDetail(inv))
	}

	if m.state == listStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Invoice\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m InvoicesModel) viewDetail(inv *invoice.Invoice) string {
	var lines []string

	lines = append(lines,
		lipgloss.NewStyle().Bold(true).Render("Invoice "+inv.InvoiceNumber),
		"",
		fmt.Sprintf("Status:   %s", inv.Status),
		fmt.Sprintf("Subtotal: %s", FormatAmount(inv.Subtotal)),
		fmt.Sprintf("Total:    %s", FormatAmount(inv.Total)),
	)

	if len(inv.Items) > 0 {
		lines = append(lines, "", "Items:")
		for _, item := range inv.Items {
			lines = append(lines, fmt.Sprintf("- %s  %g x %s", item.Description, item.Quantity, FormatAmount(item.Price)))
		}
	}

	if inv.PDFURL != "" {
		lines = append(lines, "", "PDF: "+inv.PDFURL)
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(40).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invs))

	for _, inv := range m.invs {
		rows = append(rows, table.Row{
			inv.InvoiceNumber,
			inv.Date,
			inv.DueDate,
			string(inv.Status),
			FormatAmount(inv.Total),
			inv.BillTo.Name,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invs []*invoice.Invoice
	err  error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		invs, err := m.invoices.List(ctx)

		return loadInvoicesMsg{invs: invs, err: err}
	}
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.invoices.Delete(ctx, id); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: "Invoice deleted"}
	}
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}

	status := invoice.Status(m.form.GetString("status"))
	notes := m.form.GetString("notes")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.invoices.Update(ctx, inv.ID, invoice.UpdateParams{
			Status: &status,
			Notes:  &notes,
		})
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: "Invoice updated"}
	}
}
