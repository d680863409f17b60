package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/store"
	"github.com/workie-app/workie/internal/timeutil"
	"github.com/workie-app/workie/internal/workie"
)

// logsModel is the log list plus the add/edit form. The weekly limit is
// enforced here, on submission of a new entry only.
type logsModel struct {
	store  *store.Store
	limit  float64
	width  int
	height int

	logs   []workie.WorkLog
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty when adding

	// Clock in/out state. Clocking out prefills the add form.
	clockedIn bool
	clockIn   time.Time

	// Form field pointers (survive value copies)
	fDate        *string
	fWorkType    *string
	fCustomWork  *string
	fStart       *string
	fEnd         *string
	fPayType     *string
	fCustomRate  *string
	fBreakOption *string
	fCustomBreak *string
	fNotes       *string
}

func newLogsModel(s *store.Store, limit float64) logsModel {
	date, workType, customWork := "", workie.WorkTypeSA, ""
	start, end := "", ""
	payType, customRate := workie.PayTypeSP2, ""
	breakOption, customBreak, notes := "1", "", ""
	return logsModel{
		store:        s,
		limit:        limit,
		fDate:        &date,
		fWorkType:    &workType,
		fCustomWork:  &customWork,
		fStart:       &start,
		fEnd:         &end,
		fPayType:     &payType,
		fCustomRate:  &customRate,
		fBreakOption: &breakOption,
		fCustomBreak: &customBreak,
		fNotes:       &notes,
	}
}

func (m *logsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *logsModel) setLimit(limit float64) {
	m.limit = limit
}

func (m logsModel) clockRunning() bool { return m.clockedIn }
func (m logsModel) clockElapsed() time.Duration {
	return time.Since(m.clockIn)
}

type logsDataMsg struct {
	logs []workie.WorkLog
}

func (m logsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return logsDataMsg{logs: m.store.Logs()}
	}
}

func (m logsModel) update(msg tea.Msg) (logsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logsDataMsg:
		m.logs = msg.logs
		if m.cursor >= len(m.logs) {
			m.cursor = max(0, len(m.logs)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.logs)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			m.resetFields()
			return m.showForm("")
		case key.Matches(msg, keys.Edit):
			if len(m.logs) > 0 {
				m.fillFields(m.logs[m.cursor])
				return m.showForm(m.logs[m.cursor].ID)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.logs) > 0 {
				id := m.logs[m.cursor].ID
				if err := m.store.DeleteLog(id); err != nil {
					return m, errorStatus("Delete failed: %v", err)
				}
				return m, tea.Batch(m.refresh(), infoStatus("Log deleted"), notifyLogsChanged())
			}
		case key.Matches(msg, keys.Clock):
			return m.toggleClock()
		}
	}
	return m, nil
}

func notifyLogsChanged() tea.Cmd {
	return func() tea.Msg { return logsChangedMsg{} }
}

// toggleClock starts a shift clock, or on the second press opens the add
// form with the clocked times filled in.
func (m logsModel) toggleClock() (logsModel, tea.Cmd) {
	if !m.clockedIn {
		m.clockedIn = true
		m.clockIn = time.Now()
		return m, infoStatus("Clocked in at %s", m.clockIn.Format("15:04"))
	}

	m.clockedIn = false
	m.resetFields()
	*m.fDate = timeutil.FormatDate(m.clockIn)
	*m.fStart = m.clockIn.Format("15:04")
	*m.fEnd = time.Now().Format("15:04")
	return m.showForm("")
}

func (m *logsModel) resetFields() {
	*m.fDate = timeutil.FormatDate(time.Now())
	*m.fWorkType = workie.WorkTypeSA
	*m.fCustomWork = ""
	*m.fStart = ""
	*m.fEnd = ""
	*m.fPayType = workie.PayTypeSP2
	*m.fCustomRate = ""
	*m.fBreakOption = "1"
	*m.fCustomBreak = ""
	*m.fNotes = ""
}

func (m *logsModel) fillFields(l workie.WorkLog) {
	*m.fDate = l.Date
	*m.fWorkType = l.WorkType
	*m.fCustomWork = l.CustomWorkType
	*m.fStart = l.StartTime
	*m.fEnd = l.EndTime
	*m.fPayType = l.PayType
	*m.fCustomRate = ""
	if l.PayType == workie.PayTypeCustom {
		*m.fCustomRate = strconv.FormatFloat(l.CustomPayRate, 'f', -1, 64)
	}
	*m.fBreakOption = "Custom"
	*m.fCustomBreak = strconv.FormatFloat(l.BreakDuration, 'f', -1, 64)
	for _, opt := range workie.BreakOptions {
		if opt != "Custom" && opt == *m.fCustomBreak {
			*m.fBreakOption = opt
			*m.fCustomBreak = ""
			break
		}
	}
	*m.fNotes = l.Notes
}

// draft assembles the current form fields into a Draft.
func (m logsModel) draft() workie.Draft {
	return workie.Draft{
		Date:                strings.TrimSpace(*m.fDate),
		WorkType:            *m.fWorkType,
		CustomWorkType:      strings.TrimSpace(*m.fCustomWork),
		StartTime:           strings.TrimSpace(*m.fStart),
		EndTime:             strings.TrimSpace(*m.fEnd),
		PayType:             *m.fPayType,
		CustomPayRate:       strings.TrimSpace(*m.fCustomRate),
		BreakOption:         *m.fBreakOption,
		CustomBreakDuration: strings.TrimSpace(*m.fCustomBreak),
		Notes:               strings.TrimSpace(*m.fNotes),
	}
}

// fieldCheck adapts one key of the core validator to a huh field
// validator. The draft is rebuilt from the shared pointers on every
// call, so cross-field rules (end after start, custom pairings) see the
// current values.
func (m logsModel) fieldCheck(field string) func(string) error {
	return func(string) error {
		if msg, ok := workie.Validate(m.draft())[field]; ok {
			return errors.New(msg)
		}
		return nil
	}
}

func (m logsModel) showForm(editingID string) (logsModel, tea.Cmd) {
	m.editingID = editingID

	workOptions := make([]huh.Option[string], len(workie.WorkTypes))
	for i, t := range workie.WorkTypes {
		workOptions[i] = huh.NewOption(t, t)
	}
	payOptions := make([]huh.Option[string], len(workie.PayTypes))
	for i, t := range workie.PayTypes {
		payOptions[i] = huh.NewOption(t, t)
	}
	breakOptions := make([]huh.Option[string], len(workie.BreakOptions))
	for i, b := range workie.BreakOptions {
		label := b + "h"
		if b == "Custom" {
			label = b
		}
		breakOptions[i] = huh.NewOption(label, b)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Description("YYYY-MM-DD").
				Value(m.fDate).Validate(m.fieldCheck("date")),
			huh.NewSelect[string]().Title("Work Type").
				Options(workOptions...).Value(m.fWorkType),
			huh.NewInput().Title("Custom Work Type").
				Description("Only for the Custom work type").
				Value(m.fCustomWork).Validate(m.fieldCheck("customWorkType")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start Time").Description("HH:MM").
				Value(m.fStart).Validate(m.fieldCheck("startTime")),
			huh.NewInput().Title("End Time").Description("HH:MM").
				Value(m.fEnd).Validate(m.fieldCheck("endTime")),
			huh.NewSelect[string]().Title("Break").
				Options(breakOptions...).Value(m.fBreakOption),
			huh.NewInput().Title("Custom Break (hours)").
				Description("Only for the Custom break").
				Value(m.fCustomBreak).Validate(m.fieldCheck("customBreakDuration")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Pay Type").
				Options(payOptions...).Value(m.fPayType),
			huh.NewInput().Title("Custom Rate").
				Description("Hourly rate, only for Custom Pay").
				Value(m.fCustomRate).Validate(m.fieldCheck("customPayRate")),
			huh.NewInput().Title("Notes").Value(m.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m logsModel) updateForm(msg tea.Msg) (logsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		return m.submit()
	}

	return m, cmd
}

func (m logsModel) submit() (logsModel, tea.Cmd) {
	d := m.draft()

	if errs := workie.Validate(d); len(errs) > 0 {
		for _, msg := range errs {
			return m, errorStatus("Invalid entry: %s", msg)
		}
	}

	if m.editingID == "" {
		// The weekly limit gates new entries only; edits go through
		// regardless so old weeks stay correctable.
		hours, _ := workie.Calculate(d, m.store.Settings().PayRates)
		if total, exceeded := workie.CheckWeeklyLimit(d, hours, m.store.Logs(), m.limit); exceeded {
			return m, errorStatus(
				"Weekly limit exceeded: this entry brings the week to %s of %sh",
				formatHours(total), trimFloat(m.limit),
			)
		}
		if _, err := m.store.AddLog(d); err != nil {
			return m, errorStatus("Save failed: %v", err)
		}
		return m, tea.Batch(m.refresh(), infoStatus("Log added"), notifyLogsChanged())
	}

	updated := workie.WorkLog{
		ID:        m.editingID,
		Date:      d.Date,
		WorkType:  d.WorkType,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		PayType:   d.PayType,
		Notes:     d.Notes,
	}
	if d.WorkType == workie.WorkTypeCustom {
		updated.CustomWorkType = d.CustomWorkType
	}
	if d.PayType == workie.PayTypeCustom {
		updated.CustomPayRate = d.PayRateValue()
	}
	updated.BreakDuration = d.BreakDuration()

	if err := m.store.UpdateLog(updated); err != nil {
		return m, errorStatus("Update failed: %v", err)
	}
	return m, tea.Batch(m.refresh(), infoStatus("Log updated"), notifyLogsChanged())
}

func (m logsModel) view() string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Log")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Log")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	currency := m.store.Settings().Currency
	title := titleStyle.Render("Work Logs")

	if len(m.logs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No logs yet. Press n to add one, or c to clock in."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-14s %-13s %6s %7s %9s  %s",
		"Date", "Type", "Time", "Break", "Hours", "Pay", "Notes"))
	rows = append(rows, header)

	visible := m.logs
	maxRows := m.height - 10
	if maxRows > 0 && len(visible) > maxRows {
		visible = visible[:maxRows]
	}

	for i, l := range visible {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		notes := l.Notes
		if len(notes) > 20 {
			notes = notes[:17] + "..."
		}
		row := style.Render(fmt.Sprintf("%s%-12s %-14s %s-%s %5.1fh %6.2fh %9s  %s",
			cursor, l.Date, l.WorkTypeLabel(), l.StartTime, l.EndTime,
			l.BreakDuration, l.HoursWorked, formatMoney(currency, l.Pay), notes))
		rows = append(rows, row)
	}
	if len(visible) < len(m.logs) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(m.logs)-len(visible))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  c: clock in/out"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
