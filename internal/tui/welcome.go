package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/store"
)

// welcomeModel is the profile picker shown before anyone is signed in.
type welcomeModel struct {
	store  *store.Store
	width  int
	height int

	users  []string
	cursor int

	formActive bool
	form       *huh.Form
	formName   *string
}

func newWelcomeModel(s *store.Store) welcomeModel {
	name := ""
	return welcomeModel{
		store:    s,
		formName: &name,
	}
}

func (w *welcomeModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

type usersDataMsg struct {
	users []string
}

func (w welcomeModel) refresh() tea.Cmd {
	return func() tea.Msg {
		users, _ := w.store.Users()
		return usersDataMsg{users: users}
	}
}

func (w welcomeModel) update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case usersDataMsg:
		w.users = msg.users
		if w.cursor >= len(w.users) {
			w.cursor = max(0, len(w.users)-1)
		}
		return w, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if w.cursor > 0 {
				w.cursor--
			}
		case key.Matches(msg, keys.Down):
			if w.cursor < len(w.users)-1 {
				w.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(w.users) > 0 {
				return w, w.login(w.users[w.cursor], false)
			}
			return w.showNewProfileForm()
		case key.Matches(msg, keys.New):
			return w.showNewProfileForm()
		}
	}
	return w, nil
}

func (w welcomeModel) login(name string, newUser bool) tea.Cmd {
	return func() tea.Msg {
		if err := w.store.Login(name); err != nil {
			return statusMsg{text: fmt.Sprintf("Sign in failed: %v", err), isError: true}
		}
		return loggedInMsg{name: name, newUser: newUser}
	}
}

func (w welcomeModel) showNewProfileForm() (welcomeModel, tea.Cmd) {
	*w.formName = ""

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile Name").
				Description("At least 3 characters").
				Value(w.formName).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) < 3 {
						return errors.New("must be at least 3 characters")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w welcomeModel) updateForm(msg tea.Msg) (welcomeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		name := strings.TrimSpace(*w.formName)
		isNew := true
		for _, u := range w.users {
			if u == name {
				isNew = false
			}
		}
		return w, w.login(name, isNew)
	}

	return w, cmd
}

func (w welcomeModel) view() string {
	width := w.width - 4
	if width < 20 {
		width = 20
	}

	title := titleStyle.Render("Welcome to workie")
	subtitle := mutedStyle.Render("Track your work hours and pay")

	if w.formActive && w.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", w.form.View())
		return activePanelStyle.Width(width).Render(content)
	}

	var rows []string
	rows = append(rows, title, subtitle, "")

	if len(w.users) == 0 {
		rows = append(rows, mutedStyle.Render("No profiles yet. Press n to create one."))
	} else {
		rows = append(rows, mutedStyle.Render("Pick a profile:"))
		for i, u := range w.users {
			cursor := "  "
			style := normalItemStyle
			if i == w.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(cursor+u))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: sign in  n: new profile  q: quit"))

	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
