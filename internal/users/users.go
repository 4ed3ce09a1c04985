// Package users implements the users listing reached after the wizard and the
// DELETE exercise offered on it.
//
// Deleting is gated the same way a wizard step is: the caller must pick the
// DELETE verb and supply a non-empty id before exactly one request is issued.
package users

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/logging"
	"ctpostman/internal/method"
)

// Local rejections. They are wrapped by [*DeleteError].
var (
	ErrInvalidMethod = errors.New("invalid method for delete")
	ErrMissingID     = errors.New("user id is required")
)

// Messages shown next to the delete form.
const (
	msgInvalidMethod = "Invalid HTTP method"
	msgMissingID     = "Please enter a user ID."
	msgDeleteFailed  = "Failed to delete user"
	msgDeleteRetry   = "Failed to delete user. Please try again."
)

// Remote is the subset of the demo API used by the users page.
type Remote interface {
	ListUsers(ctx context.Context) (api.Listing, error)
	DeleteUser(ctx context.Context, id string) (api.Result, error)
}

// DeleteError is a user-facing delete failure.
//
// Message is the text shown to the user. Err is one of the local sentinels
// or the underlying [*api.Error] / [*api.TransportError].
type DeleteError struct {
	ID      string
	Message string
	Err     error
}

func (e *DeleteError) Error() string {
	return e.Message
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Service serves the users page.
type Service struct {
	remote Remote
	logger *zap.Logger
}

// NewService creates a [Service]. A nil logger disables logging.
func NewService(remote Remote, logger *zap.Logger) *Service {
	return &Service{remote: remote, logger: logging.OrNop(logger)}
}

// List fetches the users listing.
func (s *Service) List(ctx context.Context) (api.Listing, error) {
	listing, err := s.remote.ListUsers(ctx)
	if err != nil {
		s.logger.Warn("list users failed", zap.Error(err))
		return api.Listing{}, err
	}
	s.logger.Debug("listed users", zap.Int("count", len(listing.Users)))
	return listing, nil
}

// Delete removes the user with the given id.
//
// verb must be DELETE and id must be non-blank; otherwise no request is made.
// Remote failures surface the body's message or, lacking one, the status
// text. Callers refresh the listing after a successful delete.
func (s *Service) Delete(ctx context.Context, verb method.Method, id string) (api.Result, error) {
	if verb != method.Delete {
		return api.Result{}, &DeleteError{ID: id, Message: msgInvalidMethod, Err: ErrInvalidMethod}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return api.Result{}, &DeleteError{Message: msgMissingID, Err: ErrMissingID}
	}

	log := s.logger.With(zap.String("id", id))
	res, err := s.remote.DeleteUser(ctx, id)
	if err != nil {
		log.Warn("delete user failed", zap.Error(err))
		if apiErr, ok := api.AsRemote(err); ok {
			detail := apiErr.Message
			if detail == "" {
				detail = apiErr.StatusText()
			}
			return api.Result{}, &DeleteError{ID: id, Message: msgDeleteFailed + ": " + detail, Err: err}
		}
		return api.Result{}, &DeleteError{ID: id, Message: msgDeleteRetry, Err: err}
	}

	log.Info("deleted user")
	return res, nil
}
