package view

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mdmuzammil18/invoice-app/internal/form"
	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

type entryTab int

const (
	entryTabVendor entryTab = iota
	entryTabInvoice
	entryTabComments
)

var entryTabTitles = []string{"Vendor Details", "Invoice Details", "Comments"}

// vendorFields are the form fields shown on the vendor tab; everything
// else belongs to the invoice tab.
var vendorFields = map[string]bool{form.FieldVendor: true}

type EntryModel struct {
	CommonModel
	invoices *invoice.Service
	drafts   *form.DraftStore

	tab entryTab

	vendorForm  *huh.Form
	invoiceForm *huh.Form

	// vals backs every huh binding; the map is built once so the pointers
	// stay stable across model copies.
	vals map[string]*string

	// attachment is a transient in-memory handle; it is never persisted
	// with the draft or the invoice.
	attachment string

	commentInput textinput.Model
	comments     []string

	fieldErrs map[string]string
	status    string
	lastDraft string
}

func NewEntryModel(invSvc *invoice.Service, drafts *form.DraftStore) EntryModel {
	saved := drafts.Load()

	vals := make(map[string]*string, len(form.Fields))

	for _, f := range form.Fields {
		v := saved[f]
		vals[f] = &v
	}

	ci := textinput.New()
	ci.Placeholder = "Add a comment and use @Name to tag someone"
	ci.Width = 60

	m := EntryModel{
		invoices:     invSvc,
		drafts:       drafts,
		vals:         vals,
		commentInput: ci,
	}
	m.vendorForm = m.buildVendorForm()

	return m
}

func (m EntryModel) Title() string { return "Create Invoice" }

func (m EntryModel) ShortHelp() string {
	if m.tab == entryTabComments {
		return "Enter: add comment | Ctrl+S: submit & new | Ctrl+D: save as draft | Esc: back"
	}

	return "Enter: next field | Esc: back"
}

func (m EntryModel) Init() tea.Cmd {
	return m.vendorForm.Init()
}

func (m *EntryModel) buildVendorForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(form.FieldVendor).
				Title("Vendor").
				Options(huh.NewOptions(
					"A - 1 Exterminators",
					"Vendor 2",
				)...).
				Value(m.vals[form.FieldVendor]),

			huh.NewInput().
				Key("attachment").
				Title("Attach Invoice File").
				Description("Optional; pdf, doc or docx").
				Placeholder("/path/to/invoice.pdf").
				Value(&m.attachment),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m *EntryModel) buildInvoiceForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(form.FieldPONumber).
				Title("Purchase Order Number").
				Options(huh.NewOptions(
					"PO-2024-001",
					"PO-2024-002",
					"PO-2024-003",
				)...).
				Value(m.vals[form.FieldPONumber]),

			huh.NewInput().
				Key(form.FieldInvoiceNumber).
				Title("Invoice Number").
				Value(m.vals[form.FieldInvoiceNumber]),

			huh.NewInput().
				Key(form.FieldInvoiceDate).
				Title("Invoice Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(m.vals[form.FieldInvoiceDate]),

			huh.NewInput().
				Key(form.FieldTotalAmount).
				Title("Total Amount").
				Placeholder("0.00").
				Value(m.vals[form.FieldTotalAmount]),

			huh.NewSelect[string]().
				Key(form.FieldPaymentTerms).
				Title("Payment Terms").
				Options(huh.NewOptions(
					"Net 15",
					"Net 30",
					"Net 45",
					"Net 60",
				)...).
				Value(m.vals[form.FieldPaymentTerms]),

			huh.NewInput().
				Key(form.FieldInvoiceDueDate).
				Title("Invoice Due Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(m.vals[form.FieldInvoiceDueDate]),

			huh.NewInput().
				Key(form.FieldGLPostDate).
				Title("GL Post Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(m.vals[form.FieldGLPostDate]),

			huh.NewInput().
				Key(form.FieldInvoiceDescription).
				Title("Invoice Description").
				Value(m.vals[form.FieldInvoiceDescription]),
		),
		huh.NewGroup(
			huh.NewInput().
				Key(form.FieldLineAmount).
				Title("Line Amount").
				Placeholder("0.00").
				Value(m.vals[form.FieldLineAmount]),

			huh.NewSelect[string]().
				Key(form.FieldDepartment).
				Title("Department").
				Options(huh.NewOptions(
					"Finance",
					"Operations",
					"Facilities",
					"IT",
				)...).
				Value(m.vals[form.FieldDepartment]),

			huh.NewSelect[string]().
				Key(form.FieldAccount).
				Title("Account").
				Options(huh.NewOptions(
					"6000 - Expenses",
					"6100 - Services",
					"6200 - Supplies",
				)...).
				Value(m.vals[form.FieldAccount]),

			huh.NewSelect[string]().
				Key(form.FieldLocation).
				Title("Location").
				Options(huh.NewOptions(
					"Head Office",
					"Warehouse",
					"Remote",
				)...).
				Value(m.vals[form.FieldLocation]),

			huh.NewInput().
				Key(form.FieldExpenseDescription).
				Title("Expense Description").
				Value(m.vals[form.FieldExpenseDescription]),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(entrySubmitMsg); ok {
		return m.handleSubmitResult(result)
	}

	switch m.tab {
	case entryTabVendor:
		return m.updateVendor(msg)
	case entryTabInvoice:
		return m.updateInvoice(msg)
	case entryTabComments:
		return m.updateComments(msg)
	}

	return m, nil
}

func (m EntryModel) updateVendor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	f, cmd := m.vendorForm.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.vendorForm = hf
	}

	m.persistDraft()

	if m.vendorForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.tab = entryTabInvoice
	m.invoiceForm = m.buildInvoiceForm()

	return m, m.invoiceForm.Init()
}

func (m EntryModel) updateInvoice(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.tab = entryTabVendor
		m.vendorForm = m.buildVendorForm()

		return m, m.vendorForm.Init()
	}

	f, cmd := m.invoiceForm.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.invoiceForm = hf
	}

	m.persistDraft()

	if m.invoiceForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.tab = entryTabComments
	m.commentInput.Focus()

	return m, nil
}

func (m EntryModel) updateComments(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.tab = entryTabInvoice
			m.invoiceForm = m.buildInvoiceForm()

			return m, m.invoiceForm.Init()

		case "enter":
			if c := strings.TrimSpace(m.commentInput.Value()); c != "" {
				m.comments = append(m.comments, c)
				m.commentInput.SetValue("")
			}

			return m, nil

		case "ctrl+s":
			return m, m.submitCmd()

		case "ctrl+d":
			m.persistDraft()
			m.status = "Draft saved"

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)

	return m, cmd
}

func (m EntryModel) handleSubmitResult(result entrySubmitMsg) (tea.Model, tea.Cmd) {
	if result.err != nil {
		m.status = fmt.Sprintf("Error: %v", result.err)
		return m, nil
	}

	if len(result.fieldErrs) > 0 {
		m.fieldErrs = result.fieldErrs
		m.status = "Please fix the highlighted fields"

		// Vendor errors surface on the vendor tab, everything else on the
		// invoice tab.
		m.tab = entryTabInvoice
		for f := range result.fieldErrs {
			if vendorFields[f] {
				m.tab = entryTabVendor
				break
			}
		}

		if m.tab == entryTabVendor {
			m.vendorForm = m.buildVendorForm()
			return m, m.vendorForm.Init()
		}

		m.invoiceForm = m.buildInvoiceForm()

		return m, m.invoiceForm.Init()
	}

	// Submit & New: reset to a clean form.
	for _, f := range form.Fields {
		*m.vals[f] = ""
	}

	m.attachment = ""
	m.comments = nil
	m.fieldErrs = nil
	m.lastDraft = ""
	m.status = fmt.Sprintf("Invoice %s submitted", result.created.InvoiceNumber)
	m.tab = entryTabVendor
	m.vendorForm = m.buildVendorForm()

	return m, m.vendorForm.Init()
}

func (m EntryModel) View() string {
	var body string

	switch m.tab {
	case entryTabVendor:
		body = m.vendorForm.View()

		if m.attachment != "" {
			body += "\n" + lipgloss.NewStyle().Faint(true).Render("Attached: "+m.attachment)
		}
	case entryTabInvoice:
		body = m.invoiceForm.View()
	case entryTabComments:
		body = m.viewComments()
	}

	sections := []string{m.viewTabs(), ""}

	if errs := m.tabErrors(); errs != "" {
		sections = append(sections, errs)
	}

	sections = append(sections, body)

	if m.status != "" {
		sections = append(sections, "", lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m EntryModel) viewTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inactive := lipgloss.NewStyle().Faint(true)

	tabs := make([]string, len(entryTabTitles))

	for i, t := range entryTabTitles {
		if entryTab(i) == m.tab {
			tabs[i] = active.Render(t)
		} else {
			tabs[i] = inactive.Render(t)
		}
	}

	return strings.Join(tabs, "  |  ")
}

func (m EntryModel) viewComments() string {
	var sb strings.Builder

	sb.WriteString(m.commentInput.View())
	sb.WriteString("\n")

	for _, c := range m.comments {
		sb.WriteString("\n- " + c)
	}

	return sb.String()
}

// tabErrors renders the validation messages belonging to the active tab.
func (m EntryModel) tabErrors() string {
	if len(m.fieldErrs) == 0 {
		return ""
	}

	var lines []string

	for _, f := range form.Fields {
		msg, ok := m.fieldErrs[f]
		if !ok {
			continue
		}

		onVendorTab := vendorFields[f]
		if (m.tab == entryTabVendor) == onVendorTab {
			lines = append(lines, errStyle.Render(msg))
		}
	}

	return strings.Join(lines, "\n")
}

func (m EntryModel) snapshot() form.Values {
	values := make(form.Values, len(m.vals))
	for f, v := range m.vals {
		values[f] = *v
	}

	return values
}

// persistDraft writes the current values wholesale whenever they changed.
// The attachment handle and comments are deliberately left out.
func (m *EntryModel) persistDraft() {
	values := m.snapshot()

	data, err := json.Marshal(values)
	if err != nil {
		return
	}

	if string(data) == m.lastDraft {
		return
	}

	if err := m.drafts.Save(values); err != nil {
		m.status = fmt.Sprintf("Error saving draft: %v", err)
		return
	}

	m.lastDraft = string(data)
}

type entrySubmitMsg struct {
	created   *invoice.Invoice
	fieldErrs map[string]string
	err       error
}

func (m EntryModel) submitCmd() tea.Cmd {
	values := m.snapshot()

	return func() tea.Msg {
		if errs := form.Validate(values); len(errs) > 0 {
			return entrySubmitMsg{fieldErrs: errs}
		}

		lineAmount, _ := strconv.ParseFloat(values[form.FieldLineAmount], 64)

		ctx, cancel := OpCtx()
		defer cancel()

		created, err := m.invoices.Create(ctx, invoice.CreateParams{
			InvoiceNumber: values[form.FieldInvoiceNumber],
			Date:          values[form.FieldInvoiceDate],
			DueDate:       values[form.FieldInvoiceDueDate],
			Status:        invoice.StatusPending,
			BillFrom:      invoice.Address{Name: values[form.FieldVendor]},
			Items: []invoice.Item{{
				Description: values[form.FieldExpenseDescription],
				Quantity:    1,
				Price:       lineAmount,
			}},
			Terms: values[form.FieldPaymentTerms],
			Notes: values[form.FieldInvoiceDescription],
		})
		if err != nil {
			return entrySubmitMsg{err: err}
		}

		if err := m.drafts.Clear(); err != nil {
			return entrySubmitMsg{err: err}
		}

		return entrySubmitMsg{created: created}
	}
}
