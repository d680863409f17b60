package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/store"
	"github.com/workie-app/workie/internal/workie"
)

type settingsModel struct {
	store  *store.Store
	limit  float64
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	fSP2      *string
	fSP7      *string
	fCurrency *string
	fLimit    *string
}

func newSettingsModel(s *store.Store, limit float64) settingsModel {
	sp2, sp7, cur, lim := "", "", "", ""
	return settingsModel{
		store:     s,
		limit:     limit,
		fSP2:      &sp2,
		fSP7:      &sp7,
		fCurrency: &cur,
		fLimit:    &lim,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	current := s.store.Settings()
	*s.fSP2 = strconv.FormatFloat(current.PayRates[workie.PayTypeSP2], 'f', 2, 64)
	*s.fSP7 = strconv.FormatFloat(current.PayRates[workie.PayTypeSP7], 'f', 2, 64)
	*s.fCurrency = current.Currency
	*s.fLimit = trimFloat(s.limit)

	currencyOptions := make([]huh.Option[string], len(workie.Currencies))
	for i, c := range workie.Currencies {
		currencyOptions[i] = huh.NewOption(c, c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("SP2 hourly rate").Value(s.fSP2).Validate(positiveNumber),
			huh.NewInput().Title("SP7 hourly rate").Value(s.fSP7).Validate(positiveNumber),
		).Title("Pay Rates"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Currency").
				Options(currencyOptions...).Value(s.fCurrency),
			huh.NewInput().Title("Weekly hour limit").Value(s.fLimit).Validate(positiveNumber),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func positiveNumber(v string) error {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s.save()
	}

	return s, cmd
}

func (s settingsModel) save() (settingsModel, tea.Cmd) {
	sp2, _ := strconv.ParseFloat(*s.fSP2, 64)
	sp7, _ := strconv.ParseFloat(*s.fSP7, 64)
	limit, _ := strconv.ParseFloat(*s.fLimit, 64)

	err := s.store.UpdateSettings(workie.Settings{
		PayRates: map[string]float64{
			workie.PayTypeSP2: sp2,
			workie.PayTypeSP7: sp7,
		},
		Currency: *s.fCurrency,
	})
	if err != nil {
		return s, errorStatus("Save failed: %v", err)
	}

	s.limit = limit
	return s, tea.Batch(
		infoStatus("Settings saved"),
		func() tea.Msg { return limitChangedMsg{limit: limit} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4
	if w < 20 {
		w = 20
	}

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	current := s.store.Settings()
	title := titleStyle.Render("Settings")

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s",
			lipgloss.NewStyle().Width(20).Render(label),
			highlightStyle.Render(value))
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, row("SP2 hourly rate", formatMoney(current.Currency, current.PayRates[workie.PayTypeSP2])))
	rows = append(rows, row("SP7 hourly rate", formatMoney(current.Currency, current.PayRates[workie.PayTypeSP7])))
	rows = append(rows, row("Currency", current.Currency))
	rows = append(rows, row("Weekly hour limit", trimFloat(s.limit)+"h"))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
