package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/myfinance/internal/bills"
	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateAdd
)

type BillsModel struct {
	CommonModel
	billService     *bills.Service
	settingsService *settings.Service

	state    billsState
	table    table.Model
	list     []bills.Bill
	payments bills.PaymentMap
	form     *huh.Form

	// viewed is the first day of the month being browsed.
	viewed time.Time

	hideAmounts bool
	loading     bool
	err         error
	status      string

	// Form bindings
	formTitle  string
	formAmount string
	formDueDay string
}

func NewBillsModel(billSvc *bills.Service, settingsSvc *settings.Service) BillsModel {
	columns := []table.Column{
		{Title: "Title", Width: 25},
		{Title: "Amount", Width: 12},
		{Title: "Due", Width: 5},
		{Title: "Status", Width: 10},
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

	now := time.Now()

	return BillsModel{
		billService:     billSvc,
		settingsService: settingsSvc,
		table:           t,
		viewed:          time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
	}
}

func (m BillsModel) Title() string { return "Fixed Bills" }
func (m BillsModel) ShortHelp() string {
	if m.state == billsStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | h/l: month | p: toggle paid | a: add | x: delete | r: refresh"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.list = msg.list
		m.payments = msg.payments
		m.hideAmounts = msg.hideAmounts
		m.refreshTable()
		return m, nil

	case billSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case billsStateBrowse:
		return m.updateBrowse(msg)
	case billsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "h", "left":
			m.viewed = m.viewed.AddDate(0, -1, 0)
			m.refreshTable()
			return m, nil
		case "l", "right":
			m.viewed = m.viewed.AddDate(0, 1, 0)
			m.refreshTable()
			return m, nil
		case "p", " ":
			return m, m.toggleCmd()
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

func (m BillsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formTitle = ""
	m.formAmount = ""
	m.formDueDay = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("Aluguel").
				Value(&m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),

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
				Key("due_day").
				Title("Due day").
				Placeholder("1-31").
				Value(&m.formDueDay).
				Validate(func(s string) error {
					day, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || day < 1 || day > 31 {
						return fmt.Errorf("due day must be between 1 and 31")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m BillsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateBrowse
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

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"< %s >  Monthly total: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(MonthLabel(m.viewed)),
		Amount(bills.MonthlyTotal(m.list), m.hideAmounts),
	)

	if next := bills.NextDue(m.list, time.Now()); next != nil {
		header += fmt.Sprintf(" | Next due: %s (day %d)", next.Title, next.DueDay)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == billsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Bill\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BillsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, b := range m.list {
		rows = append(rows, table.Row{
			b.Title,
			Amount(b.Amount, m.hideAmounts),
			strconv.Itoa(b.DueDay),
			string(m.billService.Status(b, m.payments, m.viewed)),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type billsLoadedMsg struct {
	list        []bills.Bill
	payments    bills.PaymentMap
	hideAmounts bool
	err         error
}

func (m BillsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		list, err := m.billService.List(ctx)
		if err != nil {
			return billsLoadedMsg{err: err}
		}

		payments, err := m.billService.Payments(ctx)
		if err != nil {
			return billsLoadedMsg{err: err}
		}

		snap, err := m.settingsService.Load(ctx)
		if err != nil {
			return billsLoadedMsg{err: err}
		}

		return billsLoadedMsg{list: list, payments: payments, hideAmounts: snap.HideAmounts}
	}
}

type billSavedMsg struct {
	err error
}

func (m BillsModel) saveCmd() tea.Cmd {
	title := strings.TrimSpace(m.formTitle)
	rawAmount := m.formAmount
	rawDueDay := m.formDueDay

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		amount, err := ledger.ParseAmount(rawAmount)
		if err != nil {
			return billSavedMsg{err: err}
		}

		dueDay, err := strconv.Atoi(strings.TrimSpace(rawDueDay))
		if err != nil {
			return billSavedMsg{err: err}
		}

		_, err = m.billService.Add(ctx, bills.CreateParams{
			Title:  title,
			Amount: amount,
			DueDay: dueDay,
		})

		return billSavedMsg{err: err}
	}
}

func (m BillsModel) toggleCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	id := m.list[idx].ID
	ref := m.viewed

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		_, err := m.billService.TogglePayment(ctx, id, ref)
		return billSavedMsg{err: err}
	}
}

func (m BillsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	id := m.list[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return billSavedMsg{err: m.billService.Remove(ctx, id)}
	}
}
