package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
	"ctpostman/internal/session"
)

// usersView is the users screen with its DELETE form.
type usersView struct {
	listing api.Listing
	method  method.Method
	id      textinput.Model
	focus   int // 0 is the method selector, 1 is the id input
	message string
	err     string
	loading bool
	busy    bool
}

func newUsersView() usersView {
	ti := textinput.New()
	ti.Placeholder = "user ID"
	ti.Prompt = "id: "
	ti.CharLimit = 64
	ti.Width = 32
	return usersView{id: ti}
}

func (v *usersView) focusSelector() tea.Cmd {
	v.focus = 0
	v.id.Blur()
	return nil
}

func (v *usersView) focusID() tea.Cmd {
	v.focus = 1
	return v.id.Focus()
}

func (m Model) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.users.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+l":
		m.logout()
		return m, nil
	case "ctrl+n":
		m.resetWizard()
		m.users = newUsersView()
		m.navigate(session.RouteWizard)
		return m, nil
	case "ctrl+r":
		return m, m.loadUsers()
	case "tab", "shift+tab", "up", "down":
		if m.users.focus == 0 {
			return m, m.users.focusID()
		}
		return m, m.users.focusSelector()
	case "enter":
		return m, m.deleteUser()
	}

	if m.users.focus == 0 {
		switch msg.String() {
		case "left", "h":
			m.users.method = m.users.method.Prev()
			m.users.err = ""
		case "right", "l", " ":
			m.users.method = m.users.method.Next()
			m.users.err = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.users.id, cmd = m.users.id.Update(msg)
	m.users.err = ""
	return m, cmd
}

func (m *Model) loadUsers() tea.Cmd {
	svc, ctx := m.deps.Users, m.ctx
	if svc == nil {
		return nil
	}
	m.users.loading = true
	return func() tea.Msg {
		listing, err := svc.List(ctx)
		return usersLoadedMsg{listing: listing, err: err}
	}
}

func (m *Model) deleteUser() tea.Cmd {
	svc, ctx := m.deps.Users, m.ctx
	if svc == nil {
		return nil
	}
	verb, id := m.users.method, m.users.id.Value()
	m.users.busy = true
	m.users.message = ""
	return func() tea.Msg {
		res, err := svc.Delete(ctx, verb, id)
		msg := res.Message
		if err == nil && msg == "" {
			msg = "User deleted."
		}
		return userDeletedMsg{id: id, message: msg, err: err}
	}
}

func (m Model) viewUsers() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Users"))
	b.WriteString("\n")
	if m.users.listing.Message != "" {
		b.WriteString(successStyle.Render(m.users.listing.Message))
		b.WriteString("\n\n")
	}

	if len(m.users.listing.Users) == 0 {
		b.WriteString(mutedStyle.Render("No users."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(m.users.listing.Users))
		for _, u := range m.users.listing.Users {
			rows = append(rows, []string{u.ID, u.Username, u.Code, u.Number5})
		}
		cell := lipgloss.NewStyle().Padding(0, 1)
		header := cell.Bold(true).Foreground(primaryColor)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
			Headers("ID", "USERNAME", "CODE", "NUMBER5").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	var form strings.Builder
	form.WriteString(titleStyle.Render("Delete a user"))
	form.WriteString("\n")
	shown := string(m.users.method)
	if shown == "" {
		shown = "select"
	}
	sel := selectorStyle
	if m.users.focus == 0 {
		sel = focusedSelectorStyle
	}
	form.WriteString("method: " + sel.Render("◂ "+shown+" ▸"))
	form.WriteString("\n")
	form.WriteString(m.users.id.View())
	if m.users.busy || m.users.loading {
		form.WriteString("\n" + m.spinner.View() + " working…")
	}
	if m.users.message != "" {
		form.WriteString("\n" + successStyle.Render(m.users.message))
	}
	if m.users.err != "" {
		form.WriteString("\n" + errorStyle.Render(m.users.err))
	}

	b.WriteString("\n")
	b.WriteString(panelStyle.Render(form.String()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: switch field • ←/→: method • enter: send • ctrl+r: refresh • ctrl+n: new run • ctrl+l: logout • ctrl+c: quit"))
	return b.String()
}
