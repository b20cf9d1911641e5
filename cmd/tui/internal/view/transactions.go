package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type transactionsState int

const (
	transactionsStateBrowse transactionsState = iota
	transactionsStateAdd
)

type TransactionsModel struct {
	CommonModel
	ledgerService   *ledger.Service
	settingsService *settings.Service

	state  transactionsState
	table  table.Model
	txs    []ledger.Transaction
	totals ledger.Totals
	form   *huh.Form

	hideAmounts bool
	loading     bool
	err         error
	status      string

	// Form bindings
	formDesc   string
	formAmount string
	formType   ledger.Type
}

func NewTransactionsModel(ledgerSvc *ledger.Service, settingsSvc *settings.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 7},
		{Title: "Type", Width: 9},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 30},
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

	return TransactionsModel{
		ledgerService:   ledgerSvc,
		settingsService: settingsSvc,
		table:           t,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	if m.state == transactionsStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: delete | v: show/hide amounts | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.txs = msg.txs
		m.totals = msg.totals
		m.hideAmounts = msg.hideAmounts
		m.refreshTable()
		return m, nil

	case transactionSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = transactionsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case transactionsStateBrowse:
		return m.updateBrowse(msg)
	case transactionsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			return m, m.deleteCmd()
		case "v":
			return m, m.toggleVisibilityCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formDesc = ""
	m.formAmount = ""
	m.formType = ledger.TypeExpense

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ledger.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Despesa", ledger.TypeExpense),
					huh.NewOption("Entrada", ledger.TypeIncome),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0,00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ledger.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("Supermercado").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = transactionsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m TransactionsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = transactionsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Balance: %s | Income: %s | Expense: %s",
		Amount(m.totals.Balance, m.hideAmounts),
		Amount(m.totals.Income, m.hideAmounts),
		Amount(m.totals.Expense, m.hideAmounts),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == transactionsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Transaction\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		label := "Despesa"
		if tx.Type == ledger.TypeIncome {
			label = "Entrada"
		}
		rows = append(rows, table.Row{
			tx.Date,
			tx.Time,
			label,
			Amount(tx.Amount, m.hideAmounts),
			tx.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type transactionsLoadedMsg struct {
	txs         []ledger.Transaction
	totals      ledger.Totals
	hideAmounts bool
	err         error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.ledgerService.List(ctx)
		if err != nil {
			return transactionsLoadedMsg{err: err}
		}

		snap, err := m.settingsService.Load(ctx)
		if err != nil {
			return transactionsLoadedMsg{err: err}
		}

		return transactionsLoadedMsg{
			txs:         txs,
			totals:      ledger.Recalculate(txs),
			hideAmounts: snap.HideAmounts,
		}
	}
}

type transactionSavedMsg struct {
	err error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	desc := strings.TrimSpace(m.formDesc)
	rawAmount := m.formAmount
	txType := m.formType

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		amount, err := ledger.ParseAmount(rawAmount)
		if err != nil {
			return transactionSavedMsg{err: err}
		}

		_, err = m.ledgerService.Add(ctx, ledger.CreateParams{
			Description: desc,
			Amount:      amount,
			Type:        txType,
		})

		return transactionSavedMsg{err: err}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return transactionSavedMsg{err: m.ledgerService.Remove(ctx, id)}
	}
}

func (m TransactionsModel) toggleVisibilityCmd() tea.Cmd {
	hide := !m.hideAmounts

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.settingsService.SetHideAmounts(ctx, hide); err != nil {
			return transactionSavedMsg{err: err}
		}

		return transactionSavedMsg{}
	}
}
