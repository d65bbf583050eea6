package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Mdmuzammil18/invoice-app/cmd/tui/internal/view"
	"github.com/Mdmuzammil18/invoice-app/internal/auth"
	"github.com/Mdmuzammil18/invoice-app/internal/config"
	"github.com/Mdmuzammil18/invoice-app/internal/export"
	"github.com/Mdmuzammil18/invoice-app/internal/form"
	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
	invStore "github.com/Mdmuzammil18/invoice-app/internal/invoice/store"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

type View int

const (
	ViewLogin    View = 0
	ViewMenu     View = 1
	ViewEntry    View = 2
	ViewInvoices View = 3
	ViewExport   View = 4
)

// viewNames label protected destinations so login can resume at the view
// the user originally asked for.
var viewNames = map[View]string{
	ViewMenu:     "dashboard",
	ViewEntry:    "entry",
	ViewInvoices: "invoices",
	ViewExport:   "export",
}

func viewByName(name string) View {
	for v, n := range viewNames {
		if n == name {
			return v
		}
	}

	return ViewMenu
}

type model struct {
	invoiceService *invoice.Service
	exportService  *export.Service
	draftStore     *form.DraftStore
	gate           *auth.Gate
	exportDir      string

	currentView View

	loginView    view.LoginModel
	entryView    view.EntryModel
	invoicesView view.InvoicesModel
	exportView   view.ExportModel
}

func initialModel(cfg *config.Config, store storage.Store, gate *auth.Gate) model {
	invSvc := invoice.NewService(invStore.New(store))
	expSvc := export.NewService(invSvc)
	drafts := form.NewDraftStore(store)

	m := model{
		invoiceService: invSvc,
		exportService:  expSvc,
		draftStore:     drafts,
		gate:           gate,
		exportDir:      cfg.Export.Dir,
		loginView:      view.NewLoginModel(gate),
	}

	if gate.RequireAuth(viewNames[ViewMenu]) {
		m.currentView = ViewMenu
	} else {
		m.currentView = ViewLogin
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.SessionChangedMsg:
		// Logout observed in another context: every protected view drops
		// back to login, remembering where the user was.
		if msg.State != auth.StateAuthenticated && m.currentView != ViewLogin {
			m.gate.RequireAuth(viewNames[m.currentView])
			m.currentView = ViewLogin
			m.loginView = view.NewLoginModel(m.gate)

			return m, m.loginView.Init()
		}

		return m, nil

	case view.LoginSuccessMsg:
		return m.openView(viewByName(m.gate.ConsumeReturnTo()))

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				return m.openView(ViewEntry)
			case "2":
				return m.openView(ViewInvoices)
			case "3":
				return m.openView(ViewExport)
			case "l":
				if err := m.gate.Logout(); err != nil {
					slog.Error("logout failed", "error", err)
				}

				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.gate)

				return m, m.loginView.Init()
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// openView routes to a protected destination, falling back to login when
// the session is gone.
func (m model) openView(v View) (tea.Model, tea.Cmd) {
	if !m.gate.RequireAuth(viewNames[v]) {
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.gate)

		return m, m.loginView.Init()
	}

	m.currentView = v

	switch v {
	case ViewEntry:
		m.entryView = view.NewEntryModel(m.invoiceService, m.draftStore)
		return m, m.entryView.Init()
	case ViewInvoices:
		m.invoicesView = view.NewInvoicesModel(m.invoiceService)
		return m, m.invoicesView.Init()
	case ViewExport:
		m.exportView = view.NewExportModel(m.exportService, m.exportDir)
		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		username := m.gate.Username()

		return lipgloss.NewStyle().Padding(2).Render(
			"Invoice Entry — " + username + "\n\n" +
				"1. New Invoice\n" +
				"2. Invoices List\n" +
				"3. Export PDFs\n\n" +
				"l. Logout\n" +
				"q. Quit",
		)
	case ViewEntry:
		return m.entryView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		slog.Error("failed to resolve data directory", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewFileStore(dataDir)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	gate := auth.NewGate(store)

	p := tea.NewProgram(initialModel(cfg, store, gate))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go gate.Run(ctx, func(state auth.State) {
		p.Send(view.SessionChangedMsg{State: state})
	})

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
