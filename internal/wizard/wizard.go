// Package wizard implements the four-step verification wizard.
//
// The [Wizard] walks CREATE → VERIFY → UPDATE → REDIRECT → DONE. Each step is
// double gated: the verb the user selected must equal the step's expected verb,
// and for VERIFY and UPDATE the supplied code or id must equal the value echoed
// by the previous successful result. Only then does the step issue exactly one
// remote call through a [StepRunner]; success advances the wizard, failure
// leaves it where it is with a step-scoped [*StepError].
//
// Key concepts:
//   - The gating data comes from a [router.Router] table, so one generic
//     transition function serves every step
//   - Presentation side effects are [Event] values delivered to an [EventHandler]
//   - At most one call is in flight; [Wizard.Busy] reports it
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/logging"
	"ctpostman/internal/method"
	"ctpostman/internal/router"
	"ctpostman/internal/step"
	"ctpostman/internal/workflow"
)

// StepRunner issues the remote call behind a step.
//
// The [workflow.Runner] type implements this interface.
type StepRunner interface {
	RunStep(ctx context.Context, s step.Step, form step.Form) (workflow.StepResult, error)
}

// State is a snapshot of the wizard returned by [Wizard.State].
type State struct {
	// Current is the active step.
	Current step.Step

	// Busy is true while the current step's call is in flight.
	Busy bool

	// Methods holds the verb selected for each step.
	Methods map[step.Step]method.Method

	// Forms holds the text inputs of each step.
	Forms map[step.Step]step.Form

	// Errors holds the step-scoped error message of each step, if any.
	Errors map[step.Step]string

	// Results holds the result of each completed step.
	Results map[step.Step]workflow.StepResult
}

// Wizard is the verification state machine.
//
// Create with [NewWizard]. A Wizard is safe for concurrent use: the
// presentation layer may read [Wizard.State] or [Wizard.Busy] while a
// [Wizard.Submit] is in flight on another goroutine.
type Wizard struct {
	runner  StepRunner
	router  *router.Router
	logger  *zap.Logger
	handler EventHandler

	mu      sync.Mutex
	current step.Step
	busy    bool
	methods map[step.Step]method.Method
	forms   map[step.Step]step.Form
	errs    map[step.Step]*StepError
	results map[step.Step]workflow.StepResult
}

// NewWizard creates a [Wizard] positioned at the first step of the default
// router chain.
func NewWizard(runner StepRunner) *Wizard {
	r := router.NewRouter()
	return &Wizard{
		runner:  runner,
		router:  r,
		logger:  zap.NewNop(),
		current: r.First(),
		methods: make(map[step.Step]method.Method),
		forms:   make(map[step.Step]step.Form),
		errs:    make(map[step.Step]*StepError),
		results: make(map[step.Step]workflow.StepResult),
	}
}

// SetRouter replaces the routing table and rewinds to its first step.
// Call it before the first submission.
func (w *Wizard) SetRouter(r *router.Router) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.router = r
	w.current = r.First()
}

// SetLogger sets the logger. A nil logger disables logging.
func (w *Wizard) SetLogger(l *zap.Logger) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logging.OrNop(l)
}

// SetEventHandler registers the presentation callback. Nil disables events.
func (w *Wizard) SetEventHandler(h EventHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = h
}

// Start announces the current step to the presentation layer.
func (w *Wizard) Start() {
	w.mu.Lock()
	current := w.current
	w.mu.Unlock()

	if current.IsTerminal() {
		return
	}
	w.emit(Event{Kind: EventReveal, Step: current})
}

// Current returns the active step.
func (w *Wizard) Current() step.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Busy reports whether a call is in flight.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Done reports whether the wizard reached its terminal step.
func (w *Wizard) Done() bool {
	return w.Current().IsTerminal()
}

// Progress returns the 1-based position of the current step and the number of
// actionable steps. At the terminal step index equals total.
func (w *Wizard) Progress() (index, total int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	total = len(w.router.Rules())
	remaining, err := w.router.GetRemaining(w.current)
	if err != nil {
		return total, total
	}
	return total - len(remaining) + 1, total
}

// ExpectedMethod returns the verb the exercise expects for s.
func (w *Wizard) ExpectedMethod(s step.Step) (method.Method, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.router.ExpectedMethod(s)
}

// Rule returns the routing rule of s.
func (w *Wizard) Rule(s step.Step) (router.Rule, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.router.GetRule(s)
}

// SelectMethod records the verb chosen for s and clears s's error.
// It reports false and does nothing when s is not the current step or a call
// is in flight.
func (w *Wizard) SelectMethod(s step.Step, m method.Method) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s != w.current || w.busy {
		return false
	}
	w.methods[s] = m
	delete(w.errs, s)
	return true
}

// SetField records a text input of s and clears s's error.
// It reports false and does nothing when s is not the current step or a call
// is in flight.
func (w *Wizard) SetField(s step.Step, f step.Field, value string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s != w.current || w.busy {
		return false
	}
	form, ok := w.forms[s]
	if !ok {
		form = make(step.Form)
		w.forms[s] = form
	}
	form[f] = value
	delete(w.errs, s)
	return true
}

// Error returns the step-scoped error of s, or nil.
func (w *Wizard) Error(s step.Step) *StepError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs[s]
}

// Result returns the result of s if s completed.
func (w *Wizard) Result(s step.Step) (workflow.StepResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.results[s]
	return r, ok
}

// Echoed returns the value the next payload check for f will compare
// against: the most recent non-empty value of f among completed results.
func (w *Wizard) Echoed(f step.Field) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.echoed(f)
}

// State returns a deep copy of the wizard state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := State{
		Current: w.current,
		Busy:    w.busy,
		Methods: make(map[step.Step]method.Method, len(w.methods)),
		Forms:   make(map[step.Step]step.Form, len(w.forms)),
		Errors:  make(map[step.Step]string, len(w.errs)),
		Results: make(map[step.Step]workflow.StepResult, len(w.results)),
	}
	for s, m := range w.methods {
		st.Methods[s] = m
	}
	for s, f := range w.forms {
		st.Forms[s] = f.Clone()
	}
	for s, e := range w.errs {
		st.Errors[s] = e.Message
	}
	for s, r := range w.results {
		r.Users = append([]api.User(nil), r.Users...)
		st.Results[s] = r
	}
	return st
}

// Submit runs step s.
//
// Submit returns [ErrBusy] while another call is in flight,
// [router.ErrWizardComplete] once the wizard is done and [ErrStepNotActive]
// for any step other than the current one; none of these change state.
//
// Otherwise s is validated against its rule. A failed check records and
// returns a [*StepError] without issuing a call. When every check passes,
// exactly one call is issued. On success the result is stored, all step
// errors are cleared and the wizard advances, emitting Hide for s followed by
// Reveal for the next step, or Navigate after REDIRECT. On failure the
// wizard stays on s and records a remote or transport [*StepError].
//
// There is no automatic retry; resubmitting issues a new call.
func (w *Wizard) Submit(ctx context.Context, s step.Step) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	if w.current.IsTerminal() {
		w.mu.Unlock()
		return router.ErrWizardComplete
	}
	if s != w.current {
		w.mu.Unlock()
		return ErrStepNotActive
	}

	rule, err := w.router.GetRule(s)
	if err != nil {
		w.mu.Unlock()
		return err
	}

	log := w.logger.With(zap.String("step", string(s)))

	if stepErr := w.validate(rule); stepErr != nil {
		w.errs[s] = stepErr
		w.mu.Unlock()
		log.Info("step rejected",
			zap.Stringer("kind", stepErr.Kind),
			zap.String("message", stepErr.Message))
		return stepErr
	}

	form := w.forms[s].Clone()
	w.busy = true
	w.mu.Unlock()

	log.Debug("step dispatched", zap.String("method", string(rule.Method)))
	w.emit(Event{Kind: EventBusy, Step: s})

	result, callErr := w.runner.RunStep(ctx, s, form)

	w.mu.Lock()
	w.busy = false
	if callErr != nil {
		stepErr := classify(s, callErr)
		w.errs[s] = stepErr
		w.mu.Unlock()

		log.Warn("step failed",
			zap.Stringer("kind", stepErr.Kind),
			zap.String("message", stepErr.Message),
			zap.Error(callErr))
		w.emit(Event{Kind: EventIdle, Step: s})
		return stepErr
	}

	w.results[s] = result
	clear(w.errs)
	w.current = rule.Next
	w.mu.Unlock()

	log.Info("step advanced", zap.String("next", string(rule.Next)))
	w.emit(Event{Kind: EventIdle, Step: s})
	w.emit(Event{Kind: EventHide, Step: s})
	if rule.Next.IsTerminal() {
		w.emit(Event{Kind: EventNavigate, Step: s, Target: TargetUsers})
	} else {
		w.emit(Event{Kind: EventReveal, Step: rule.Next})
	}
	return nil
}

// validate applies the rule's checks in order: verb, required fields, echo.
// An empty echo field is a payload mismatch, never missing input.
// Callers must hold w.mu.
func (w *Wizard) validate(rule router.Rule) *StepError {
	s := rule.Step

	if w.methods[s] != rule.Method {
		return &StepError{Step: s, Kind: KindMethodMismatch, Message: msgInvalidMethod}
	}

	form := w.forms[s]
	for _, f := range rule.Required {
		// The echo field is judged by the payload check alone.
		if f == rule.Echo {
			continue
		}
		if strings.TrimSpace(form.Get(f)) == "" {
			return &StepError{Step: s, Kind: KindMissingInput, Message: missingInputMessage(f)}
		}
	}

	if v := form.Get(rule.Echo); rule.HasEcho() && (v == "" || v != w.echoed(rule.Echo)) {
		return &StepError{Step: s, Kind: KindPayloadMismatch, Message: payloadMismatchMessage(rule.Echo)}
	}

	return nil
}

// echoed walks completed steps in chain order and keeps the last non-empty
// value of f. Callers must hold w.mu.
func (w *Wizard) echoed(f step.Field) string {
	var value string
	for _, rule := range w.router.Rules() {
		res, ok := w.results[rule.Step]
		if !ok {
			break
		}
		if v := res.Value(f); v != "" {
			value = v
		}
	}
	return value
}

func (w *Wizard) emit(e Event) {
	w.mu.Lock()
	h := w.handler
	w.mu.Unlock()

	if h != nil {
		h(e)
	}
}

// classify turns a runner error into a step-scoped remote or transport error.
func classify(s step.Step, err error) *StepError {
	if apiErr, ok := api.AsRemote(err); ok {
		msg := apiErr.Message
		if msg == "" {
			msg = fmt.Sprintf("Request failed with status %d", apiErr.StatusCode)
		}
		return &StepError{Step: s, Kind: KindRemoteFailure, Message: msg, Err: err}
	}

	return &StepError{Step: s, Kind: KindTransportFailure, Message: msgNetworkError, Err: err}
}
