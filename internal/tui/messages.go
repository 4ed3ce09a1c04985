package tui

import (
	"ctpostman/internal/api"
	"ctpostman/internal/session"
	"ctpostman/internal/step"
	"ctpostman/internal/wizard"
)

// wizardEventMsg delivers one wizard event to the update loop.
type wizardEventMsg struct {
	event wizard.Event
}

// submitDoneMsg reports that a step submission returned.
type submitDoneMsg struct {
	step step.Step
	err  error
}

// authDoneMsg reports the outcome of a login or signup.
type authDoneMsg struct {
	session session.Session
	err     error
}

// usersLoadedMsg carries a refreshed users listing.
type usersLoadedMsg struct {
	listing api.Listing
	err     error
}

// userDeletedMsg reports the outcome of a delete.
type userDeletedMsg struct {
	id      string
	message string
	err     error
}
