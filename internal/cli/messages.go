package cli

import (
	"errors"
	"fmt"

	"ctpostman/internal/api"
	"ctpostman/internal/session"
	"ctpostman/internal/wizard"
)

// userMessage renders err the way the interactive client would show it.
func userMessage(err error) string {
	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Message
	}
	if errors.Is(err, session.ErrNoToken) {
		return "Authentication failed."
	}
	if apiErr, ok := api.AsRemote(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Request failed with status %d", apiErr.StatusCode)
	}
	if api.IsTransport(err) {
		return "Network error. Please try again."
	}
	return err.Error()
}
