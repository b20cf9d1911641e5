package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/myfinance/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/myfinance/internal/auth"
	"github.com/MrJamesThe3rd/myfinance/internal/backup"
	"github.com/MrJamesThe3rd/myfinance/internal/bills"
	"github.com/MrJamesThe3rd/myfinance/internal/config"
	"github.com/MrJamesThe3rd/myfinance/internal/investment"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/memory"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/postgres"
	"github.com/MrJamesThe3rd/myfinance/internal/kvstore/sqlite"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type model struct {
	currentView View

	transactionsView view.TransactionsModel
	summaryView      view.SummaryModel
	billsView        view.BillsModel
	investmentsView  view.InvestmentsModel
	settingsView     view.SettingsModel

	ledgerService     *ledger.Service
	billService       *bills.Service
	investmentService *investment.Service
	settingsService   *settings.Service
	authService       *auth.Service
	backupService     *backup.Service
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewSummary      View = 2
	ViewBills        View = 3
	ViewInvestments  View = 4
	ViewSettings     View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(store)
	billSvc := bills.NewService(store)
	invSvc := investment.NewService(store)
	settingsSvc := settings.NewService(store)
	authSvc := auth.NewService(store, cfg.Auth.SessionSecret)
	backupSvc := backup.NewService(store)

	return model{
		currentView:       ViewMenu,
		ledgerService:     ledgerSvc,
		billService:       billSvc,
		investmentService: invSvc,
		settingsService:   settingsSvc,
		authService:       authSvc,
		backupService:     backupSvc,
		transactionsView:  view.NewTransactionsModel(ledgerSvc, settingsSvc),
		summaryView:       view.NewSummaryModel(ledgerSvc, settingsSvc),
		billsView:         view.NewBillsModel(billSvc, settingsSvc),
		investmentsView:   view.NewInvestmentsModel(invSvc, settingsSvc),
		settingsView:      view.NewSettingsModel(settingsSvc, authSvc, backupSvc),
	}
}

func openStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.Open(cfg.ConnectionString())
	case "memory":
		return memory.New(), nil
	default:
		return sqlite.Open(cfg.Storage.Path)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService, m.settingsService)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.ledgerService, m.settingsService)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.billService, m.settingsService)

				return m, m.billsView.Init()
			case "4":
				m.currentView = ViewInvestments
				m.investmentsView = view.NewInvestmentsModel(m.investmentService, m.settingsService)

				return m, m.investmentsView.Init()
			case "5":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService, m.authService, m.backupService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewInvestments:
		var newModel tea.Model
		newModel, cmd = m.investmentsView.Update(msg)
		m.investmentsView = newModel.(view.InvestmentsModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"MyFinance\n\n" +
				"1. Transactions\n" +
				"2. Summary\n" +
				"3. Fixed Bills\n" +
				"4. Investments\n" +
				"5. Settings\n\n" +
				"q. Quit",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewBills:
		return m.billsView.View()
	case ViewInvestments:
		return m.investmentsView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
