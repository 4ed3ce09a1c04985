package router

import (
	"ctpostman/internal/method"
	"ctpostman/internal/step"
)

// Rule describes how a single wizard step is gated and where it leads.
//
// The wizard consults the rule for the current step before issuing the step's
// remote call: the selected verb must equal Method, every field in Required
// must be non-empty, and when Echo is set the supplied value for that field
// must equal the value echoed by an earlier successful result.
type Rule struct {
	// Step is the step this rule applies to.
	Step step.Step

	// Method is the single HTTP verb the exercise expects for this step.
	Method method.Method

	// Required lists the form fields that must be non-empty before the call.
	Required []step.Field

	// Echo is the field whose value must match the previous result.
	// Empty for steps without a payload check (CREATE, REDIRECT).
	Echo step.Field

	// Next is the step the wizard advances to after a successful call.
	Next step.Step
}

// HasEcho reports whether the rule carries a payload check.
func (r Rule) HasEcho() bool {
	return r.Echo != ""
}
