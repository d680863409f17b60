package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/workie-app/workie/internal/store"
)

// profileModel covers the account actions: rename, avatar, reset,
// delete, sign out.
type profileModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form
	formType   string // "rename", "avatar", "reset", "delete"

	fName    *string
	fAvatar  *string
	fConfirm *bool
}

func newProfileModel(s *store.Store) profileModel {
	name, avatar, confirm := "", "", false
	return profileModel{
		store:    s,
		fName:    &name,
		fAvatar:  &avatar,
		fConfirm: &confirm,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "r":
			return p.showRenameForm()
		case "a":
			return p.showAvatarForm()
		case "x":
			return p.showConfirmForm("reset", "Reset account?",
				"Deletes all logs and the avatar. Settings are kept.")
		case "D":
			return p.showConfirmForm("delete", "Delete account?",
				"Removes this profile and everything in it. Cannot be undone.")
		case "o":
			p.store.Logout()
			return p, func() tea.Msg { return loggedOutMsg{} }
		}
	}
	return p, nil
}

func (p profileModel) showRenameForm() (profileModel, tea.Cmd) {
	*p.fName = p.store.Active()
	p.formType = "rename"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Name").
				Description("At least 3 characters").
				Value(p.fName).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) < 3 {
						return errors.New("must be at least 3 characters")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showAvatarForm() (profileModel, tea.Cmd) {
	*p.fAvatar = p.store.Avatar()
	p.formType = "avatar"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Avatar").
				Description("Path or URL of your avatar image").
				Value(p.fAvatar),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showConfirmForm(formType, title, description string) (profileModel, tea.Cmd) {
	*p.fConfirm = false
	p.formType = formType

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(p.fConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		return p.applyForm()
	}

	return p, cmd
}

func (p profileModel) applyForm() (profileModel, tea.Cmd) {
	switch p.formType {
	case "rename":
		oldName := p.store.Active()
		newName := strings.TrimSpace(*p.fName)
		if err := p.store.RenameUser(oldName, newName); err != nil {
			return p, errorStatus("Rename failed: %v", err)
		}
		return p, infoStatus("Renamed to %s", newName)

	case "avatar":
		if err := p.store.UpdateAvatar(strings.TrimSpace(*p.fAvatar)); err != nil {
			return p, errorStatus("Avatar update failed: %v", err)
		}
		return p, infoStatus("Avatar updated")

	case "reset":
		if !*p.fConfirm {
			return p, nil
		}
		if err := p.store.ResetAccount(); err != nil {
			return p, errorStatus("Reset failed: %v", err)
		}
		return p, tea.Batch(infoStatus("Account reset"), notifyLogsChanged())

	case "delete":
		if !*p.fConfirm {
			return p, nil
		}
		if err := p.store.DeleteAccount(); err != nil {
			return p, errorStatus("Delete failed: %v", err)
		}
		return p, func() tea.Msg { return loggedOutMsg{} }
	}
	return p, nil
}

func (p profileModel) view() string {
	w := p.width - 4
	if w < 20 {
		w = 20
	}

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Profile")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Profile")

	name := highlightStyle.Render(p.store.Active())
	avatar := p.store.Avatar()
	if avatar == "" {
		avatar = mutedStyle.Render("not set")
	}
	logCount := len(p.store.Logs())

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, "  Name    "+name)
	rows = append(rows, "  Avatar  "+avatar)
	rows = append(rows, "  Logs    "+highlightStyle.Render(plural(logCount, "entry", "entries")))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  r: rename  a: avatar  x: reset account  D: delete account  o: sign out"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
