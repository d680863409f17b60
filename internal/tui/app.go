// Package tui is the terminal interface: a welcome screen for picking a
// profile, then tabbed views over the active profile's logs.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/export"
	"github.com/workie-app/workie/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	touring       bool
	exportPicking bool
	exportCursor  int

	welcome   welcomeModel
	dashboard dashboardModel
	logs      logsModel
	profile   profileModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, weeklyLimit float64) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewDashboard,
		welcome:    newWelcomeModel(s),
		dashboard:  newDashboardModel(s, weeklyLimit),
		logs:       newLogsModel(s, weeklyLimit),
		profile:    newProfileModel(s),
		settings:   newSettingsModel(s, weeklyLimit),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.welcome.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) signedIn() bool {
	return a.store.Active() != ""
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.welcome.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.logs.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		// Keeps the clock indicator in the footer live.
		return a, tickCmd()

	case loggedInMsg:
		a.activeView = viewDashboard
		a.status = "Signed in as " + msg.name
		a.statusErr = false
		a.touring = msg.newUser && !a.store.TourCompleted()
		return a, tea.Batch(a.dashboard.refresh(), a.logs.refresh())

	case loggedOutMsg:
		a.status = ""
		a.statusErr = false
		return a, a.welcome.refresh()

	case logsChangedMsg:
		// Log mutations in one view invalidate the others.
		return a, tea.Batch(a.dashboard.refresh(), a.logs.refresh())

	case limitChangedMsg:
		a.dashboard.setLimit(msg.limit)
		a.logs.setLimit(msg.limit)
		return a, a.dashboard.refresh()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	// Data messages go to their owning view even when another tab is
	// showing, so a refresh batched from a mutation is never dropped.
	case usersDataMsg:
		var cmd tea.Cmd
		a.welcome, cmd = a.welcome.update(msg)
		return a, cmd
	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case logsDataMsg:
		var cmd tea.Cmd
		a.logs, cmd = a.logs.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case tea.KeyMsg:
		if a.touring {
			a.touring = false
			a.store.CompleteTour()
			return a, nil
		}

		if !a.signedIn() {
			if key.Matches(msg, keys.Quit) && !a.welcome.formActive {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.welcome, cmd = a.welcome.update(msg)
			return a, cmd
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewLogs
			return a, a.logs.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProfile
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}
	}

	if !a.signedIn() {
		var cmd tea.Cmd
		a.welcome, cmd = a.welcome.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLogs:
		a.logs, cmd = a.logs.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLogs:
		return a.logs.formActive
	case viewProfile:
		return a.profile.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewLogs:
		return a.logs.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.signedIn() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.welcome.view())
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLogs:
		content = a.logs.view()
	case viewProfile:
		content = a.profile.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.touring {
		content = a.renderTour()
	}
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("workie")
	user := mutedStyle.Render(" " + a.store.Active())
	left := title + user

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Clock indicator in footer
	clockInfo := ""
	if a.logs.clockRunning() {
		clockInfo = successStyle.Render(" ● " + formatClock(a.logs.clockElapsed()))
	}

	left := footerStyle.Render(helpView)
	right := clockInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderTour() string {
	w := a.width - 4
	lines := []string{
		titleStyle.Render("Quick tour"),
		"",
		"  1  Dashboard shows this week's hours, pay and remaining allowance",
		"  2  Logs is where you add shifts; press c to clock in and out",
		"  3  Profile handles renaming, reset and deletion",
		"  4  Settings holds your pay rates and weekly limit",
		"",
		mutedStyle.Render("  press any key to continue"),
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		logs := a.store.Logs()
		currency := a.store.Settings().Currency
		user := a.store.Active()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("workie-export-%s.csv", dateStr))
			if err := export.ToCSV(logs, currency, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("workie-export-%s.json", dateStr))
			if err := export.ToJSON(logs, user, currency, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
