// Package step defines the stages of the verification wizard and the form
// fields each stage collects.
//
// Key types:
//   - [Step] is one stage of the wizard (CREATE, VERIFY, UPDATE, REDIRECT, DONE)
//   - [Field] names a single text input belonging to a step
//
// Steps are ordered; the order is owned by the router package, not by the
// numeric value of the constants.
package step

import (
	"fmt"
	"strings"
)

// Step is a stage of the verification wizard.
type Step string

// Wizard stages in execution order.
const (
	// Create signs up a demo record with POST.
	Create Step = "create"

	// Verify reads the record back by its generated code with GET.
	Verify Step = "verify"

	// Update renames the record by id with PATCH.
	Update Step = "update"

	// Redirect lists users with GET and navigates to the users listing.
	Redirect Step = "redirect"

	// Done is the terminal stage. It has no action.
	Done Step = "done"
)

// All returns every step, terminal stage included, in execution order.
func All() []Step {
	return []Step{Create, Verify, Update, Redirect, Done}
}

// IsValid reports whether s is one of the known steps.
func (s Step) IsValid() bool {
	switch s {
	case Create, Verify, Update, Redirect, Done:
		return true
	}
	return false
}

// IsTerminal reports whether s is the final stage.
func (s Step) IsTerminal() bool {
	return s == Done
}

// Title returns the upper-case label shown in banners ("CREATE", "VERIFY", ...).
func (s Step) Title() string {
	return strings.ToUpper(string(s))
}

// Parse converts user input such as "Verify" or "VERIFY" into a [Step].
func Parse(raw string) (Step, error) {
	s := Step(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown step: %q", raw)
	}
	return s, nil
}

// Field names a text input collected by a step.
type Field string

// Form fields used across the wizard.
const (
	FieldUsername Field = "username"
	FieldPassword Field = "password"
	FieldCode     Field = "code"
	FieldID       Field = "id"
)

// Label returns the human readable name used in prompts and error messages.
func (f Field) Label() string {
	switch f {
	case FieldID:
		return "user ID"
	default:
		return string(f)
	}
}

// Form holds the text inputs of one step keyed by field.
type Form map[Field]string

// Get returns the value of f, or "" when unset. Safe on a nil Form.
func (f Form) Get(field Field) string {
	return f[field]
}

// Clone returns an independent copy of f.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
