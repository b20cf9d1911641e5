package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/myfinance/internal/ledger"
	"github.com/MrJamesThe3rd/myfinance/internal/report"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

// summaryTop is how many category slices show before Outros.
const summaryTop = 5

type Timeframe int

const (
	TimeframeThisMonth Timeframe = 0
	TimeframeLastMonth Timeframe = 1
	TimeframeAll       Timeframe = 2
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	}

	return "Unknown"
}

// chartPalette maps bucket color indexes to terminal colors; the last
// entry is the fixed neutral slot for Outros.
var chartPalette = []lipgloss.Color{
	"205", "39", "214", "78", "135", "203", "245",
}

type SummaryModel struct {
	CommonModel
	ledgerService   *ledger.Service
	settingsService *settings.Service

	timeframe Timeframe
	agg       report.Summary
	buckets   []report.Bucket
	ranking   []report.Rank

	hideAmounts bool
	loading     bool
	err         error
}

func NewSummaryModel(ledgerSvc *ledger.Service, settingsSvc *settings.Service) SummaryModel {
	return SummaryModel{
		ledgerService:   ledgerSvc,
		settingsService: settingsSvc,
	}
}

func (m SummaryModel) Title() string { return "Summary" }
func (m SummaryModel) ShortHelp() string {
	return "Esc: back | d: timeframe | r: refresh"
}

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.agg = msg.agg
		m.buckets = msg.buckets
		m.ranking = msg.ranking
		m.hideAmounts = msg.hideAmounts
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "d":
			m.timeframe = (m.timeframe + 1) % 3
			m.loading = true
			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching numbers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Timeframe: %s\n\n",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.timeframe.String()))

	fmt.Fprintf(&b, "Income:  %s\n", Amount(m.agg.Income, m.hideAmounts))
	fmt.Fprintf(&b, "Expense: %s\n", Amount(m.agg.Expense, m.hideAmounts))
	fmt.Fprintf(&b, "Balance: %s\n\n", Amount(m.agg.Balance, m.hideAmounts))

	if len(m.buckets) == 0 {
		b.WriteString("No expenses in this timeframe.\n")
		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	b.WriteString("Expenses by category\n\n")

	for _, bucket := range m.buckets {
		color := chartPalette[bucket.ColorIndex%len(chartPalette)]
		pct := report.Percent(bucket.Value, m.agg.Expense)

		fmt.Fprintf(&b, "%s %-20s %8s  %5.1f%%\n",
			lipgloss.NewStyle().Foreground(color).Render("█"),
			bucket.Name,
			Amount(bucket.Value, m.hideAmounts),
			pct,
		)
	}

	b.WriteString("\nRanking\n\n")

	for _, rank := range m.ranking {
		bar := strings.Repeat("▰", int(rank.Ratio*20))
		if bar == "" {
			bar = "▱"
		}

		fmt.Fprintf(&b, "%2d. %-20s %8s %s\n",
			rank.Position,
			rank.Name,
			Amount(rank.Value, m.hideAmounts),
			lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Render(bar),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type summaryLoadedMsg struct {
	agg         report.Summary
	buckets     []report.Bucket
	ranking     []report.Rank
	hideAmounts bool
	err         error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	tf := m.timeframe

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.ledgerService.List(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		snap, err := m.settingsService.Load(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		if tf != TimeframeAll {
			start, end := timeframeRange(tf)
			txs = report.FilterByRange(txs, start, end)
		}

		agg := report.Aggregate(txs)

		return summaryLoadedMsg{
			agg:         agg,
			buckets:     report.ChartBuckets(agg.ByCategory, summaryTop),
			ranking:     report.Ranking(agg.ByCategory, agg.Expense),
			hideAmounts: snap.HideAmounts,
		}
	}
}

func timeframeRange(tf Timeframe) (time.Time, time.Time) {
	now := time.Now()

	switch tf {
	case TimeframeLastMonth:
		lastMonth := now.AddDate(0, -1, 0)
		start := time.Date(lastMonth.Year(), lastMonth.Month(), 1, 0, 0, 0, 0, lastMonth.Location())

		return start, start.AddDate(0, 1, -1)
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	}
}
