package wizard

import "ctpostman/internal/step"

// EventKind identifies a presentation event emitted by the [Wizard].
type EventKind int

const (
	// EventReveal asks the presentation layer to show the step's panel.
	EventReveal EventKind = iota + 1

	// EventHide asks the presentation layer to close the step's panel.
	EventHide

	// EventNavigate asks the presentation layer to leave the wizard for Target.
	EventNavigate

	// EventBusy reports that the step's call was dispatched.
	EventBusy

	// EventIdle reports that the step's call resolved.
	EventIdle
)

func (k EventKind) String() string {
	switch k {
	case EventReveal:
		return "reveal"
	case EventHide:
		return "hide"
	case EventNavigate:
		return "navigate"
	case EventBusy:
		return "busy"
	case EventIdle:
		return "idle"
	}
	return "unknown"
}

// Target is a navigation destination outside the wizard.
type Target string

// TargetUsers is the users listing reached after REDIRECT.
const TargetUsers Target = "users"

// Event is a side effect the wizard asks its presentation layer to perform.
//
// The wizard never owns visibility state; it only announces which step should
// be shown or hidden.
type Event struct {
	Kind   EventKind
	Step   step.Step
	Target Target
}

// EventHandler receives wizard events. Handlers run on the goroutine that
// caused the event, outside the wizard's lock, so they may call back into the
// wizard.
type EventHandler func(Event)
