// Package router provides the table that drives the verification wizard.
//
// The router maps each [step.Step] to a [Rule] naming the expected HTTP verb,
// the required form fields, the field checked against the previous result and
// the step that follows. Collapsing the per-step checks into one table lets the
// wizard run a single generic transition function.
//
// Key types:
//   - [Router] - ordered chain of rules
//   - [Rule] - gating and transition data for one step
//
// Package-level functions [GetRule] and [GetRemaining] use the default router.
package router

import (
	"errors"

	"ctpostman/internal/method"
	"ctpostman/internal/step"
)

// Sentinel errors for step routing.
var (
	// ErrWizardComplete indicates the wizard reached [step.Done] and no step
	// remains to run. Callers should treat this as completion, not failure.
	ErrWizardComplete = errors.New("wizard is complete, no step remaining")

	// ErrUnknownStep indicates the step is not part of the chain.
	ErrUnknownStep = errors.New("unknown step")
)

// Router routes wizard steps to their rules.
//
// Create with [NewRouter]. The chain is fixed: each step has exactly one
// expected verb and exactly one successor.
type Router struct {
	// chain is the ordered list of actionable rules.
	chain []Rule

	// index maps step → position in chain.
	index map[step.Step]int
}

// NewRouter creates a [Router] with the exercise's routing rules.
//
// The chain is: CREATE (POST) → VERIFY (GET) → UPDATE (PATCH) → REDIRECT (GET) → DONE.
func NewRouter() *Router {
	chain := []Rule{
		{
			Step:     step.Create,
			Method:   method.Post,
			Required: []step.Field{step.FieldUsername, step.FieldPassword},
			Next:     step.Verify,
		},
		{
			Step:     step.Verify,
			Method:   method.Get,
			Required: []step.Field{step.FieldCode},
			Echo:     step.FieldCode,
			Next:     step.Update,
		},
		{
			Step:     step.Update,
			Method:   method.Patch,
			Required: []step.Field{step.FieldID, step.FieldUsername},
			Echo:     step.FieldID,
			Next:     step.Redirect,
		},
		{
			Step:   step.Redirect,
			Method: method.Get,
			Next:   step.Done,
		},
	}

	r := &Router{
		chain: chain,
		index: make(map[step.Step]int, len(chain)),
	}
	for i, rule := range chain {
		r.index[rule.Step] = i
	}
	return r
}

// First returns the step the wizard starts at.
func (r *Router) First() step.Step {
	return r.chain[0].Step
}

// GetRule returns the rule for s.
//
// Returns [ErrWizardComplete] for [step.Done] and [ErrUnknownStep] for steps
// outside the chain.
func (r *Router) GetRule(s step.Step) (Rule, error) {
	if s == step.Done {
		return Rule{}, ErrWizardComplete
	}

	i, ok := r.index[s]
	if !ok {
		return Rule{}, ErrUnknownStep
	}
	return r.chain[i], nil
}

// ExpectedMethod returns the verb the exercise expects for s.
func (r *Router) ExpectedMethod(s step.Step) (method.Method, error) {
	rule, err := r.GetRule(s)
	if err != nil {
		return "", err
	}
	return rule.Method, nil
}

// GetRemaining returns the rules from s through the end of the chain.
//
// Returns [ErrWizardComplete] for [step.Done] and [ErrUnknownStep] for steps
// outside the chain.
func (r *Router) GetRemaining(s step.Step) ([]Rule, error) {
	if s == step.Done {
		return nil, ErrWizardComplete
	}

	start, ok := r.index[s]
	if !ok {
		return nil, ErrUnknownStep
	}

	remaining := make([]Rule, len(r.chain)-start)
	copy(remaining, r.chain[start:])
	return remaining, nil
}

// Rules returns a copy of the complete chain.
func (r *Router) Rules() []Rule {
	rules := make([]Rule, len(r.chain))
	copy(rules, r.chain)
	return rules
}

// defaultRouter is the package-level router used by the package functions.
var defaultRouter = NewRouter()

// GetRule returns the rule for s using the default router.
func GetRule(s step.Step) (Rule, error) {
	return defaultRouter.GetRule(s)
}

// GetRemaining returns the remaining rules from s using the default router.
func GetRemaining(s step.Step) ([]Rule, error) {
	return defaultRouter.GetRemaining(s)
}
