package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/myfinance/internal/investment"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type investmentsState int

const (
	investmentsStateBrowse investmentsState = iota
	investmentsStateAdd
)

type InvestmentsModel struct {
	CommonModel
	investmentService *investment.Service
	settingsService   *settings.Service

	state investmentsState
	table table.Model
	list  []investment.Investment
	form  *huh.Form

	hideAmounts bool
	loading     bool
	err         error
	status      string

	// Form bindings
	formName    string
	formAmount  string
	formCurrent string
	formType    investment.Type
}

func NewInvestmentsModel(invSvc *investment.Service, settingsSvc *settings.Service) InvestmentsModel {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Type", Width: 10},
		{Title: "Invested", Width: 12},
		{Title: "Current", Width: 12},
		{Title: "Profit", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return InvestmentsModel{
		investmentService: invSvc,
		settingsService:   settingsSvc,
		table:             t,
	}
}

func (m InvestmentsModel) Title() string { return "Investments" }
func (m InvestmentsModel) ShortHelp() string {
	if m.state == investmentsStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m InvestmentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvestmentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case investmentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.list = msg.list
		m.hideAmounts = msg.hideAmounts
		m.refreshTable()
		return m, nil

	case investmentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = investmentsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case investmentsStateBrowse:
		return m.updateBrowse(msg)
	case investmentsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m InvestmentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InvestmentsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formAmount = ""
	m.formCurrent = ""
	m.formType = investment.TypeFixed

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Placeholder("Tesouro Direto").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[investment.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Renda fixa", investment.TypeFixed),
					huh.NewOption("Renda variável", investment.TypeVariable),
					huh.NewOption("Cripto", investment.TypeCrypto),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Invested amount").
				Placeholder("0,00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ledger.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("current").
				Title("Current value").
				Placeholder("0,00").
				Value(&m.formCurrent).
				Validate(func(s string) error {
					_, err := ledger.ParseAmount(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = investmentsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvestmentsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = investmentsStateBrowse
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

func (m InvestmentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading investments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	invested, current, yield := investment.PortfolioTotals(m.list)

	header := fmt.Sprintf(
		"Invested: %s | Current: %s | Yield: %s",
		Amount(invested, m.hideAmounts),
		Amount(current, m.hideAmounts),
		Amount(yield, m.hideAmounts),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == investmentsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Investment\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvestmentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, inv := range m.list {
		profit := fmt.Sprintf("%s (%.1f%%)", Amount(inv.Profit(), m.hideAmounts), inv.ProfitPercent())
		if m.hideAmounts {
			profit = MaskedAmount
		}

		rows = append(rows, table.Row{
			inv.Name,
			string(inv.Type),
			Amount(inv.Amount, m.hideAmounts),
			Amount(inv.CurrentValue, m.hideAmounts),
			profit,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type investmentsLoadedMsg struct {
	list        []investment.Investment
	hideAmounts bool
	err         error
}

func (m InvestmentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		list, err := m.investmentService.List(ctx)
		if err != nil {
			return investmentsLoadedMsg{err: err}
		}

		snap, err := m.settingsService.Load(ctx)
		if err != nil {
			return investmentsLoadedMsg{err: err}
		}

		return investmentsLoadedMsg{list: list, hideAmounts: snap.HideAmounts}
	}
}

type investmentSavedMsg struct {
	err error
}

func (m InvestmentsModel) saveCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	rawAmount := m.formAmount
	rawCurrent := m.formCurrent
	invType := m.formType

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		amount, err := ledger.ParseAmount(rawAmount)
		if err != nil {
			return investmentSavedMsg{err: err}
		}

		current, err := ledger.ParseAmount(rawCurrent)
		if err != nil {
			return investmentSavedMsg{err: err}
		}

		_, err = m.investmentService.Add(ctx, investment.CreateParams{
			Name:         name,
			Amount:       amount,
			CurrentValue: current,
			Type:         invType,
		})

		return investmentSavedMsg{err: err}
	}
}

func (m InvestmentsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	id := m.list[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return investmentSavedMsg{err: m.investmentService.Remove(ctx, id)}
	}
}
