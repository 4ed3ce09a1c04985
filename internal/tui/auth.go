package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ctpostman/internal/session"
)

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

const (
	authName = iota
	authEmail
	authPassword
)

// authForm is the login/signup screen.
type authForm struct {
	mode   authMode
	inputs []textinput.Model
	focus  int
	err    string
	busy   bool
}

func newAuthForm() authForm {
	labels := []string{"name", "email", "password"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = label + ": "
		ti.CharLimit = 128
		ti.Width = 32
		inputs[i] = ti
	}
	inputs[authPassword].EchoMode = textinput.EchoPassword
	inputs[authPassword].EchoCharacter = '•'

	f := authForm{inputs: inputs}
	f.focusInput(0)
	return f
}

// visible returns the indices of the inputs shown in the current mode.
func (f authForm) visible() []int {
	if f.mode == modeSignup {
		return []int{authName, authEmail, authPassword}
	}
	return []int{authEmail, authPassword}
}

// focusInput focuses the i-th visible input.
func (f *authForm) focusInput(i int) tea.Cmd {
	vis := f.visible()
	f.focus = ((i % len(vis)) + len(vis)) % len(vis)

	var cmd tea.Cmd
	for j := range f.inputs {
		if j == vis[f.focus] {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	f.busy = false
	f.focusInput(0)
}

func (f authForm) value(i int) string {
	return f.inputs[i].Value()
}

// validate rejects empty required fields before any request is sent.
func (f authForm) validate() string {
	if f.mode == modeSignup && strings.TrimSpace(f.value(authName)) == "" {
		return "Please enter your name."
	}
	if strings.TrimSpace(f.value(authEmail)) == "" {
		return "Please enter your email."
	}
	if f.value(authPassword) == "" {
		return "Please enter your password."
	}
	return ""
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.auth.focusInput(m.auth.focus + 1)
	case "shift+tab", "up":
		return m, m.auth.focusInput(m.auth.focus - 1)
	case "ctrl+t":
		if m.auth.mode == modeLogin {
			m.auth.mode = modeSignup
		} else {
			m.auth.mode = modeLogin
		}
		m.auth.err = ""
		return m, m.auth.focusInput(0)
	case "enter":
		if problem := m.auth.validate(); problem != "" {
			m.auth.err = problem
			return m, nil
		}
		m.auth.err = ""
		m.auth.busy = true
		return m, m.authenticate()
	}

	i := m.auth.visible()[m.auth.focus]
	var cmd tea.Cmd
	m.auth.inputs[i], cmd = m.auth.inputs[i].Update(msg)
	m.auth.err = ""
	return m, cmd
}

func (m *Model) authenticate() tea.Cmd {
	auth, ctx := m.deps.Auth, m.ctx
	mode := m.auth.mode
	name, email, password := m.auth.value(authName), m.auth.value(authEmail), m.auth.value(authPassword)

	return func() tea.Msg {
		var (
			s   session.Session
			err error
		)
		if mode == modeSignup {
			s, err = session.Signup(ctx, auth, name, email, password)
		} else {
			s, err = session.Login(ctx, auth, email, password)
		}
		return authDoneMsg{session: s, err: err}
	}
}

func authErrorMessage(err error) string {
	if errors.Is(err, session.ErrNoToken) {
		return "Authentication failed."
	}
	return requestErrorMessage(err)
}

func (m Model) viewAuth() string {
	var b strings.Builder

	title := "Login"
	toggle := "ctrl+t: create an account"
	if m.auth.mode == modeSignup {
		title = "Sign up"
		toggle = "ctrl+t: I already have an account"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for _, i := range m.auth.visible() {
		b.WriteString(m.auth.inputs[i].View())
		b.WriteString("\n")
	}

	if m.auth.busy {
		b.WriteString(m.spinner.View() + " signing in…\n")
	}
	if m.auth.err != "" {
		b.WriteString(errorStyle.Render(m.auth.err))
		b.WriteString("\n")
	}

	body := activePanelStyle.Render(strings.TrimRight(b.String(), "\n"))
	return body + "\n" + helpStyle.Render("tab: next field • enter: submit • "+toggle+" • ctrl+c: quit")
}
