package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ctpostman/internal/method"
	"ctpostman/internal/step"
)

// openPanel shows the inputs of s. The panel's inputs mirror the step's
// required fields; the method selector is focused first.
func (m *Model) openPanel(s step.Step) tea.Cmd {
	rule, err := m.wiz.Rule(s)
	if err != nil {
		m.closePanel()
		return nil
	}

	form := m.wiz.State().Forms[s]
	m.panel = s
	m.fields = rule.Required
	m.inputs = make([]textinput.Model, len(rule.Required))
	for i, f := range rule.Required {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.Prompt = fmt.Sprintf("%-10s ", f.Label()+":")
		ti.CharLimit = 64
		ti.Width = 32
		if f == step.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(form.Get(f))
		m.inputs[i] = ti
	}
	return m.setFocus(0)
}

func (m *Model) closePanel() {
	m.panel = ""
	m.fields = nil
	m.inputs = nil
	m.focus = 0
}

// focusPanel re-applies focus after returning to the wizard screen.
func (m *Model) focusPanel() tea.Cmd {
	if m.panel == "" {
		return nil
	}
	return m.setFocus(m.focus)
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs) + 1
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus-1 {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		if m.busy {
			return m, nil
		}
		m.logout()
		return m, nil
	}

	if m.panel == "" || m.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "enter":
		return m, m.submit()
	}

	if m.focus == 0 {
		switch msg.String() {
		case "left", "h":
			m.cycleMethod(method.Method.Prev)
		case "right", "l", " ":
			m.cycleMethod(method.Method.Next)
		}
		return m, nil
	}

	i := m.focus - 1
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if after := m.inputs[i].Value(); after != before {
		m.wiz.SetField(m.panel, m.fields[i], after)
	}
	return m, cmd
}

func (m *Model) cycleMethod(next func(method.Method) method.Method) {
	current := m.wiz.State().Methods[m.panel]
	m.wiz.SelectMethod(m.panel, next(current))
}

// submit runs the panel's step off the update loop. The wizard reports
// progress through events; the returned message only closes the call.
func (m *Model) submit() tea.Cmd {
	w, s, ctx := m.wiz, m.panel, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{step: s, err: w.Submit(ctx, s)}
	}
}

func (m Model) viewWizard() string {
	var b strings.Builder

	state := m.wiz.State()
	index, total := m.wiz.Progress()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Verification Wizard  %d/%d", index, total)))
	b.WriteString("\n")

	for _, s := range step.All() {
		if s.IsTerminal() {
			continue
		}
		expected, _ := m.wiz.ExpectedMethod(s)
		label := fmt.Sprintf("%-9s", s.Title())
		switch _, done := state.Results[s]; {
		case done:
			b.WriteString(successStyle.Render("✓ " + label + " " + string(expected)))
		case s == state.Current:
			b.WriteString("› " + label)
		default:
			b.WriteString(mutedStyle.Render("○ " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.panel == "" {
		if state.Current.IsTerminal() {
			b.WriteString(successStyle.Render("Wizard complete."))
		} else {
			b.WriteString(mutedStyle.Render("Waiting…"))
		}
	} else {
		b.WriteString(m.viewPanel())
	}

	b.WriteString(helpStyle.Render("tab: next field • ←/→: method • enter: submit • ctrl+l: logout • ctrl+c: quit"))
	return b.String()
}

func (m Model) viewPanel() string {
	var b strings.Builder
	s := m.panel

	b.WriteString(titleStyle.Render(s.Title()))
	b.WriteString("\n")

	verb := m.wiz.State().Methods[s]
	shown := string(verb)
	if shown == "" {
		shown = "select"
	}
	sel := selectorStyle
	if m.focus == 0 {
		sel = focusedSelectorStyle
	}
	b.WriteString("method:    " + sel.Render("◂ "+shown+" ▸"))
	b.WriteString("\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if echo := m.echoHint(); echo != "" {
		b.WriteString(mutedStyle.Render(echo))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View() + " sending…")
		b.WriteString("\n")
	}
	if e := m.wiz.Error(s); e != nil {
		b.WriteString(errorStyle.Render(e.Message))
		b.WriteString("\n")
	}

	return activePanelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

// echoHint shows the value the previous step returned, which the user must
// copy into this step.
func (m Model) echoHint() string {
	rule, err := m.wiz.Rule(m.panel)
	if err != nil || !rule.HasEcho() {
		return ""
	}
	v := m.wiz.Echoed(rule.Echo)
	if v == "" {
		return ""
	}
	return fmt.Sprintf("previous step returned %s %q", rule.Echo.Label(), v)
}
