package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewDashboard viewState = iota
	viewLogs
	viewProfile
	viewSettings
)

var viewNames = []string{"Dashboard", "Logs", "Profile", "Settings"}

// --- Messages ---

type loggedInMsg struct {
	name    string
	newUser bool
}

type loggedOutMsg struct{}

type logsChangedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type limitChangedMsg struct {
	limit float64
}

type exportDoneMsg struct {
	path string
}

type tickMsg time.Time

// --- Helpers ---

func errorStatus(format string, args ...any) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...), isError: true}
	}
}

func infoStatus(format string, args ...any) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...)}
	}
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

func formatMoney(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

func formatClock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
