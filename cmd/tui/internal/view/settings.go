package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/myfinance/internal/auth"
	"github.com/MrJamesThe3rd/myfinance/internal/backup"
	"github.com/MrJamesThe3rd/myfinance/internal/settings"
)

type settingsState int

const (
	settingsStateBrowse settingsState = iota
	settingsStatePIN
	settingsStateImport
)

type SettingsModel struct {
	CommonModel
	settingsService *settings.Service
	authService     *auth.Service
	backupService   *backup.Service

	state settingsState
	snap  settings.Snapshot
	form  *huh.Form

	hasPIN  bool
	loading bool
	err     error
	status  string

	// Form bindings
	formPIN  string
	formPath string
}

func NewSettingsModel(settingsSvc *settings.Service, authSvc *auth.Service, backupSvc *backup.Service) SettingsModel {
	return SettingsModel{
		settingsService: settingsSvc,
		authService:     authSvc,
		backupService:   backupSvc,
	}
}

func (m SettingsModel) Title() string { return "Settings" }
func (m SettingsModel) ShortHelp() string {
	if m.state != settingsStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | v: hide amounts | t: theme | p: set PIN | e: export CSV | i: import CSV"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.snap = msg.snap
		m.hasPIN = msg.hasPIN
		return m, nil

	case settingsDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = settingsStateBrowse
		m.form = nil
		return m, m.loadCmd()
	}

	switch m.state {
	case settingsStateBrowse:
		return m.updateBrowse(msg)
	case settingsStatePIN, settingsStateImport:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m SettingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "v":
		return m, m.toggleVisibilityCmd()
	case "t":
		return m, m.toggleThemeCmd()
	case "p":
		return m.enterPINMode()
	case "e":
		return m, m.exportCmd()
	case "i":
		return m.enterImportMode()
	}

	return m, nil
}

func (m SettingsModel) enterPINMode() (tea.Model, tea.Cmd) {
	m.formPIN = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pin").
				Title("New PIN").
				Placeholder("at least 4 digits").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPIN),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = settingsStatePIN
	return m, m.form.Init()
}

func (m SettingsModel) enterImportMode() (tea.Model, tea.Cmd) {
	m.formPath = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV file path").
				Placeholder("transactions.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = settingsStateImport
	return m, m.form.Init()
}

func (m SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateBrowse
			m.form = nil
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

	if m.state == settingsStatePIN {
		return m, m.setPINCmd()
	}

	return m, m.importCmd()
}

func (m SettingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	visibility := "visible"
	if m.snap.HideAmounts {
		visibility = "hidden"
	}

	pin := "not set"
	if m.hasPIN {
		pin = "set"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "[v] Amounts: %s\n", activeLabel(visibility))
	fmt.Fprintf(&b, "[t] Theme:   %s\n", activeLabel(string(m.snap.Theme)))
	fmt.Fprintf(&b, "[p] PIN:     %s\n", activeLabel(pin))
	b.WriteString("[e] Export transactions to CSV\n")
	b.WriteString("[i] Import transactions from CSV\n")

	content := b.String()

	if m.state != settingsStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeLabel(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Messages

type settingsLoadedMsg struct {
	snap   settings.Snapshot
	hasPIN bool
	err    error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		snap, err := m.settingsService.Load(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}

		hasPIN, err := m.authService.HasPIN(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}

		return settingsLoadedMsg{snap: snap, hasPIN: hasPIN}
	}
}

type settingsDoneMsg struct {
	status string
	err    error
}

func (m SettingsModel) toggleVisibilityCmd() tea.Cmd {
	hide := !m.snap.HideAmounts

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return settingsDoneMsg{err: m.settingsService.SetHideAmounts(ctx, hide)}
	}
}

func (m SettingsModel) toggleThemeCmd() tea.Cmd {
	theme := settings.ThemeDark
	if m.snap.Theme == settings.ThemeDark {
		theme = settings.ThemeLight
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return settingsDoneMsg{err: m.settingsService.SetTheme(ctx, theme)}
	}
}

func (m SettingsModel) setPINCmd() tea.Cmd {
	pin := m.formPIN

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.authService.SetPIN(ctx, pin); err != nil {
			return settingsDoneMsg{err: err}
		}

		return settingsDoneMsg{status: "PIN updated"}
	}
}

func (m SettingsModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		f, err := os.Create("transactions.csv")
		if err != nil {
			return settingsDoneMsg{err: err}
		}
		defer f.Close()

		if err := m.backupService.ExportCSV(ctx, f); err != nil {
			return settingsDoneMsg{err: err}
		}

		return settingsDoneMsg{status: "Exported to transactions.csv"}
	}
}

func (m SettingsModel) importCmd() tea.Cmd {
	path := strings.TrimSpace(m.formPath)

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return settingsDoneMsg{err: err}
		}
		defer f.Close()

		result, err := m.backupService.ImportCSV(ctx, f)
		if err != nil {
			return settingsDoneMsg{err: err}
		}

		return settingsDoneMsg{
			status: fmt.Sprintf("Imported %d rows, skipped %d", result.Imported, len(result.Skipped)),
		}
	}
}
