package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/store"
	"github.com/workie-app/workie/internal/timeutil"
	"github.com/workie-app/workie/internal/workie"
)

var dayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dashboardModel shows the weekly summary card and the per-day hours
// chart for the week being browsed.
type dashboardModel struct {
	store  *store.Store
	limit  float64
	width  int
	height int

	// weekOffset counts weeks back from the current one; 0 is this week.
	weekOffset int

	summary workie.Summary
	daily   [7]float64
	chart   barchart.Model
}

func newDashboardModel(s *store.Store, limit float64) dashboardModel {
	return dashboardModel{
		store: s,
		limit: limit,
		chart: barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) setLimit(limit float64) {
	d.limit = limit
}

func (d dashboardModel) weekStart() time.Time {
	return timeutil.AddDays(timeutil.WeekStart(time.Now()), -7*d.weekOffset)
}

type dashboardDataMsg struct {
	summary workie.Summary
	daily   [7]float64
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		logs := d.store.Logs()
		ws := d.weekStart()
		return dashboardDataMsg{
			summary: workie.WeekSummary(logs, ws, d.limit),
			daily:   workie.DailyHours(logs, ws),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.summary = msg.summary
		d.daily = msg.daily
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			d.weekOffset++
			return d, d.refresh()
		case key.Matches(msg, keys.Right):
			if d.weekOffset > 0 {
				d.weekOffset--
			}
			return d, d.refresh()
		}
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 28 {
		chartWidth = 28
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	today := timeutil.FormatDate(time.Now())
	dates := timeutil.WeekDates(d.weekStart())

	var bars []barchart.BarData
	for i, hours := range d.daily {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if timeutil.FormatDate(dates[i]) == today {
			style = lipgloss.NewStyle().Foreground(colorSecondary)
		}
		if hours == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: dayLabels[i],
			Values: []barchart.BarValue{
				{Name: dayLabels[i], Value: hours, Style: style},
			},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4
	currency := d.store.Settings().Currency

	summaryPanel := d.renderSummaryPanel(w, currency)
	chartPanel := d.renderChartPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, summaryPanel, chartPanel)
}

func (d dashboardModel) renderSummaryPanel(w int, currency string) string {
	ws := d.weekStart()
	weekEnd := timeutil.AddDays(ws, 6)
	label := fmt.Sprintf("%s — %s", ws.Format("Jan 02"), weekEnd.Format("Jan 02, 2006"))
	if d.weekOffset == 0 {
		label = "This week  " + mutedStyle.Render(label)
	}

	title := titleStyle.Render("Weekly Summary")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", mutedStyle.Render(label))

	earned := statValueStyle.Render(formatMoney(currency, d.summary.TotalPay))
	hours := statValueStyle.Render(formatHours(d.summary.TotalHours))

	remaining := statValueStyle.Render(formatHours(d.summary.HoursRemaining))
	note := ""
	if d.summary.HoursRemaining < 0 {
		remaining = statOverStyle.Render(formatHours(d.summary.HoursRemaining))
		note = errorStyle.Render(fmt.Sprintf("  over the %sh weekly limit", trimFloat(d.limit)))
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		fmt.Sprintf("Earned %s", earned), "    ",
		fmt.Sprintf("Worked %s", hours), "    ",
		fmt.Sprintf("Remaining %s", remaining), note,
	)

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", stats)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Hours per Day")
	nav := mutedStyle.Render("  ←/→: change week")

	hasData := false
	for _, h := range d.daily {
		if h > 0 {
			hasData = true
			break
		}
	}

	var rows []string
	rows = append(rows, title, "")
	if hasData {
		rows = append(rows, d.chart.View())
	} else {
		rows = append(rows, mutedStyle.Render("No hours logged this week"))
	}
	rows = append(rows, "", nav)

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// trimFloat renders a float without trailing zeros, for limit labels.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
