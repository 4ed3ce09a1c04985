package wizard

import (
	"errors"
	"fmt"

	"ctpostman/internal/step"
)

// Control errors returned by [Wizard.Submit] without touching state.
var (
	// ErrStepNotActive indicates the submitted step is not the current step.
	ErrStepNotActive = errors.New("step is not active")

	// ErrBusy indicates a call is already in flight.
	ErrBusy = errors.New("a step is already in flight")
)

// Sentinels matched by [*StepError] via errors.Is, one per [Kind].
var (
	ErrMethodMismatch   = errors.New("method mismatch")
	ErrMissingInput     = errors.New("missing input")
	ErrPayloadMismatch  = errors.New("payload mismatch")
	ErrRemoteFailure    = errors.New("remote failure")
	ErrTransportFailure = errors.New("transport failure")
)

// Kind classifies a step-scoped error.
type Kind int

const (
	// KindMethodMismatch: the selected verb is not the step's expected verb.
	KindMethodMismatch Kind = iota + 1

	// KindMissingInput: a required field is empty.
	KindMissingInput

	// KindPayloadMismatch: the supplied code or id differs from the value
	// echoed by the previous result.
	KindPayloadMismatch

	// KindRemoteFailure: the call completed with a non-2xx status.
	KindRemoteFailure

	// KindTransportFailure: the call did not complete.
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindMethodMismatch:
		return "method-mismatch"
	case KindMissingInput:
		return "missing-input"
	case KindPayloadMismatch:
		return "payload-mismatch"
	case KindRemoteFailure:
		return "remote-failure"
	case KindTransportFailure:
		return "transport-failure"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case KindMethodMismatch:
		return ErrMethodMismatch
	case KindMissingInput:
		return ErrMissingInput
	case KindPayloadMismatch:
		return ErrPayloadMismatch
	case KindRemoteFailure:
		return ErrRemoteFailure
	case KindTransportFailure:
		return ErrTransportFailure
	}
	return nil
}

// IsLocal reports whether the error was raised before any call was made.
func (k Kind) IsLocal() bool {
	return k == KindMethodMismatch || k == KindMissingInput || k == KindPayloadMismatch
}

// StepError is a step-scoped, recoverable error.
//
// Message is the text shown next to the step's inputs. Err carries the
// underlying remote or transport error for remote kinds and is nil for
// locally detected problems.
type StepError struct {
	Step    step.Step
	Kind    Kind
	Message string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

// Is matches the sentinel of e's kind.
func (e *StepError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Messages surfaced to the user.
const (
	msgInvalidMethod = "Invalid HTTP method"
	msgNetworkError  = "Network error. Please try again."
)

func missingInputMessage(f step.Field) string {
	return fmt.Sprintf("Please enter a %s.", f.Label())
}

func payloadMismatchMessage(f step.Field) string {
	switch f {
	case step.FieldCode:
		return "Code does not match"
	case step.FieldID:
		return "ID does not match"
	}
	return fmt.Sprintf("%s does not match", f.Label())
}
