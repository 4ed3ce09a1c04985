// Package lifecycle drives a wizard from its current step to done without a
// human at the keyboard.
//
// The lifecycle package provides [Executor], which feeds a [Plan] into the
// wizard one step at a time: it selects the planned verb, fills the planned
// inputs and submits. The wizard's own gates still apply, so a plan with a
// wrong verb or a wrong code fails exactly the way a user would.
//
// Key concepts:
//   - Remaining steps are determined by the wizard's routing rules
//   - An echo-checked input left out of the plan is filled with the value the
//     previous step returned
//   - Progress can be tracked via [ProgressCallback]
package lifecycle

import (
	"context"
	"fmt"

	"ctpostman/internal/method"
	"ctpostman/internal/router"
	"ctpostman/internal/step"
	"ctpostman/internal/workflow"
)

// Driver is the wizard surface the executor needs.
//
// The [wizard.Wizard] type implements this interface.
type Driver interface {
	Current() step.Step
	Rule(s step.Step) (router.Rule, error)
	SelectMethod(s step.Step, m method.Method) bool
	SetField(s step.Step, f step.Field, value string) bool
	Submit(ctx context.Context, s step.Step) error
	Echoed(f step.Field) string
	Result(s step.Step) (workflow.StepResult, bool)
}

// Plan holds what to enter at each step.
type Plan struct {
	// Methods is the verb to select per step. A step without an entry uses
	// the verb its rule expects.
	Methods map[step.Step]method.Method

	// Inputs holds the text inputs per step.
	Inputs map[step.Step]step.Form
}

// method returns the planned verb for s, defaulting to expected.
func (p Plan) method(s step.Step, expected method.Method) method.Method {
	if m, ok := p.Methods[s]; ok {
		return m
	}
	return expected
}

// PlanFromMethods builds a plan that selects methods[i] at the i-th rule.
func PlanFromMethods(rules []router.Rule, methods []method.Method) (Plan, error) {
	if len(methods) != len(rules) {
		return Plan{}, fmt.Errorf("expected %d methods, got %d", len(rules), len(methods))
	}
	p := Plan{Methods: make(map[step.Step]method.Method, len(rules))}
	for i, r := range rules {
		p.Methods[r.Step] = methods[i]
	}
	return p, nil
}

// ProgressCallback is invoked before each step is submitted.
//
// The callback receives stepIndex (1-based), totalSteps count, the step and
// the verb about to be sent.
type ProgressCallback func(stepIndex, totalSteps int, s step.Step, m method.Method)

// ResultCallback is invoked after each step completes.
type ResultCallback func(s step.Step, result workflow.StepResult)

// Executor runs a [Plan] through a [Driver] from the current step to done.
type Executor struct {
	driver           Driver
	progressCallback ProgressCallback
	resultCallback   ResultCallback
}

// NewExecutor creates a new Executor for driver.
func NewExecutor(driver Driver) *Executor {
	return &Executor{driver: driver}
}

// SetProgressCallback configures an optional progress callback.
func (e *Executor) SetProgressCallback(cb ProgressCallback) {
	e.progressCallback = cb
}

// SetResultCallback configures an optional callback receiving each step result.
func (e *Executor) SetResultCallback(cb ResultCallback) {
	e.resultCallback = cb
}

// Execute submits every remaining step according to plan.
//
// Execute uses fail-fast behavior: it stops on the first rejected or failed
// step and returns that step's error unchanged, leaving the wizard on it.
// When the wizard is already done Execute returns [router.ErrWizardComplete].
func (e *Executor) Execute(ctx context.Context, plan Plan) error {
	steps, err := e.GetSteps()
	if err != nil {
		return err
	}

	totalSteps := len(steps)
	for i, rule := range steps {
		s := rule.Step
		verb := plan.method(s, rule.Method)

		if e.progressCallback != nil {
			e.progressCallback(i+1, totalSteps, s, verb)
		}

		e.driver.SelectMethod(s, verb)
		form := plan.Inputs[s]
		for _, f := range rule.Required {
			value := form.Get(f)
			if value == "" && rule.HasEcho() && f == rule.Echo {
				value = e.driver.Echoed(f)
			}
			e.driver.SetField(s, f, value)
		}

		if err := e.driver.Submit(ctx, s); err != nil {
			return err
		}

		if e.resultCallback != nil {
			res, _ := e.driver.Result(s)
			e.resultCallback(s, res)
		}
	}

	return nil
}

// GetSteps returns the rules of the remaining steps without executing them.
//
// For a finished wizard it returns [router.ErrWizardComplete].
func (e *Executor) GetSteps() ([]router.Rule, error) {
	var steps []router.Rule
	for s := e.driver.Current(); !s.IsTerminal(); {
		rule, err := e.driver.Rule(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, rule)
		s = rule.Next
	}
	if len(steps) == 0 {
		return nil, router.ErrWizardComplete
	}
	return steps, nil
}
