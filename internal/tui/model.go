// Package tui is the interactive front end: an auth screen, the wizard's step
// panels and the users screen, built on bubbletea.
//
// The wizard never touches the terminal. It reports what should be shown
// through [wizard.Event] values, which the model receives as tea messages and
// turns into panel visibility, the busy spinner and navigation. Every screen
// change goes through [session.Resolve].
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/logging"
	"ctpostman/internal/method"
	"ctpostman/internal/session"
	"ctpostman/internal/step"
	"ctpostman/internal/wizard"
)

// eventBuffer bounds the wizard events queued between update ticks. One
// submission emits at most four.
const eventBuffer = 32

// UsersService serves the users screen. [users.Service] implements it.
type UsersService interface {
	List(ctx context.Context) (api.Listing, error)
	Delete(ctx context.Context, verb method.Method, id string) (api.Result, error)
}

// Deps are the collaborators of the [Model].
type Deps struct {
	Auth    session.Authenticator
	Runner  wizard.StepRunner
	Users   UsersService
	Logger  *zap.Logger
	Session session.Session
}

// Model is the bubbletea model of the interactive client.
type Model struct {
	deps   Deps
	ctx    context.Context
	logger *zap.Logger

	route   session.Route
	session session.Session

	wiz    *wizard.Wizard
	events chan wizard.Event
	panel  step.Step
	fields []step.Field
	inputs []textinput.Model
	focus  int // 0 is the method selector, i > 0 is inputs[i-1]
	busy   bool

	spinner spinner.Model
	auth    authForm
	users   usersView

	width    int
	height   int
	quitting bool
}

// New creates the model. ctx bounds every request the model issues.
func New(ctx context.Context, deps Deps) Model {
	m := Model{
		deps:    deps,
		ctx:     ctx,
		logger:  logging.OrNop(deps.Logger),
		session: deps.Session,
		events:  make(chan wizard.Event, eventBuffer),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(successStyle)),
		auth:    newAuthForm(),
		users:   newUsersView(),
	}
	m.resetWizard()
	m.navigate(session.RouteWizard)
	return m
}

// Run starts a full-screen program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.route {
		case session.RouteAuth:
			return m.updateAuth(msg)
		case session.RouteUsers:
			return m.updateUsers(msg)
		default:
			return m.updateWizard(msg)
		}

	case wizardEventMsg:
		cmd := m.handleEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case submitDoneMsg:
		if msg.err != nil {
			var stepErr *wizard.StepError
			if !errors.As(msg.err, &stepErr) {
				m.logger.Debug("submit ignored", zap.String("step", string(msg.step)), zap.Error(msg.err))
			}
		}
		return m, nil

	case authDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = authErrorMessage(msg.err)
			m.logger.Info("authentication failed", zap.Error(msg.err))
			return m, nil
		}
		m.auth.reset()
		m.session = msg.session
		m.logger.Info("authenticated", zap.String("user", msg.session.User))
		m.navigate(session.RouteWizard)
		return m, m.focusPanel()

	case usersLoadedMsg:
		m.users.loading = false
		if msg.err != nil {
			m.users.err = requestErrorMessage(msg.err)
			return m, nil
		}
		m.users.listing = msg.listing
		return m, nil

	case userDeletedMsg:
		m.users.busy = false
		if msg.err != nil {
			m.users.err = msg.err.Error()
			return m, nil
		}
		m.users.err = ""
		m.users.message = msg.message
		m.users.id.SetValue("")
		return m, m.loadUsers()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// waitForEvent blocks until the wizard emits and hands the event to Update,
// which re-arms it.
func waitForEvent(ch <-chan wizard.Event) tea.Cmd {
	return func() tea.Msg {
		return wizardEventMsg{event: <-ch}
	}
}

func (m *Model) handleEvent(e wizard.Event) tea.Cmd {
	switch e.Kind {
	case wizard.EventReveal:
		// A wizard replaced by a new run may still have events queued.
		if e.Step != m.wiz.Current() {
			return nil
		}
		return m.openPanel(e.Step)
	case wizard.EventHide:
		if m.panel == e.Step {
			m.closePanel()
		}
	case wizard.EventNavigate:
		if e.Target == wizard.TargetUsers {
			if res, ok := m.wiz.Result(step.Redirect); ok {
				m.users.listing = api.Listing{Message: res.Message, Users: res.Users}
			}
			m.users.message = ""
			m.users.err = ""
			m.navigate(session.RouteUsers)
			return m.users.focusSelector()
		}
	case wizard.EventBusy:
		m.busy = true
	case wizard.EventIdle:
		m.busy = false
	}
	return nil
}

// navigate moves to want, or wherever the route gate sends the session.
func (m *Model) navigate(want session.Route) {
	m.route = session.Resolve(m.session, want)
	if m.route == session.RouteAuth {
		m.auth.focusInput(0)
	}
}

func (m *Model) resetWizard() {
	w := wizard.NewWizard(m.deps.Runner)
	w.SetLogger(m.logger)
	events := m.events
	w.SetEventHandler(func(e wizard.Event) {
		events <- e
	})
	m.wiz = w
	m.busy = false
	m.closePanel()
	w.Start()
}

func (m *Model) logout() {
	m.logger.Info("logged out", zap.String("user", m.session.User))
	m.session = session.Logout()
	m.users = newUsersView()
	m.resetWizard()
	m.navigate(session.RouteWizard)
}

// requestErrorMessage renders a remote or transport failure.
func requestErrorMessage(err error) string {
	if apiErr, ok := api.AsRemote(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Request failed with status %d", apiErr.StatusCode)
	}
	return "Network error. Please try again."
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("ctpostman")
	if m.session.Authenticated() {
		header += mutedStyle.Render("  signed in as " + m.session.User)
	}

	var body string
	switch m.route {
	case session.RouteAuth:
		body = m.viewAuth()
	case session.RouteUsers:
		body = m.viewUsers()
	default:
		body = m.viewWizard()
	}
	return header + "\n" + body + "\n"
}
