// Package workflow runs the remote call behind each wizard step.
//
// The wizard decides whether a step may run; the [Runner] decides what running
// it means: which endpoint, which body, and how the response becomes a
// [StepResult]. Each call to [Runner.RunStep] issues exactly one request.
//
// Key types:
//   - [Runner] dispatches a step to the [Remote]
//   - [Remote] is the API surface the runner needs ([api.Client] implements it)
//   - [StepResult] is the payload a successful step hands to the next one
package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/logging"
	"ctpostman/internal/step"
)

// Remote is the subset of the demo API used by the wizard steps.
type Remote interface {
	CreateUser(ctx context.Context, creds api.Credentials) (api.Result, error)
	GetUserByCode(ctx context.Context, code string) (api.Result, error)
	UpdateUser(ctx context.Context, id string, patch api.UserPatch) (api.Result, error)
	ListUsers(ctx context.Context) (api.Listing, error)
}

// StepResult is the opaque payload returned by a step's successful call.
//
// It is held only long enough to seed the next step's payload check and is
// never persisted.
type StepResult struct {
	// Code is the generated code echoed by CREATE.
	Code string

	// ID is the record id echoed by CREATE or VERIFY.
	ID string

	// Message is the remote "message" field.
	Message string

	// Users is the listing fetched by REDIRECT.
	Users []api.User
}

// Value returns the result value for an echo-checked field.
func (r StepResult) Value(f step.Field) string {
	switch f {
	case step.FieldCode:
		return r.Code
	case step.FieldID:
		return r.ID
	}
	return ""
}

// Runner executes wizard steps against a [Remote].
type Runner struct {
	remote Remote
	logger *zap.Logger
}

// NewRunner creates a [Runner]. A nil logger disables logging.
func NewRunner(remote Remote, logger *zap.Logger) *Runner {
	return &Runner{
		remote: remote,
		logger: logging.OrNop(logger),
	}
}

// RunStep issues the single remote call for s using the values in form.
//
// Validation is the caller's job; RunStep sends whatever it is given.
// Errors from the remote are returned unchanged so callers can classify them
// with [api.AsRemote] and [api.IsTransport].
func (r *Runner) RunStep(ctx context.Context, s step.Step, form step.Form) (StepResult, error) {
	log := r.logger.With(zap.String("step", string(s)))
	log.Debug("running step")

	var (
		res StepResult
		err error
	)

	switch s {
	case step.Create:
		var out api.Result
		out, err = r.remote.CreateUser(ctx, api.Credentials{
			Username: form.Get(step.FieldUsername),
			Password: form.Get(step.FieldPassword),
		})
		res = fromResult(out)

	case step.Verify:
		var out api.Result
		out, err = r.remote.GetUserByCode(ctx, form.Get(step.FieldCode))
		res = fromResult(out)

	case step.Update:
		var out api.Result
		out, err = r.remote.UpdateUser(ctx, form.Get(step.FieldID), api.UserPatch{
			Username: form.Get(step.FieldUsername),
		})
		res = fromResult(out)

	case step.Redirect:
		var listing api.Listing
		listing, err = r.remote.ListUsers(ctx)
		res = StepResult{Message: listing.Message, Users: listing.Users}

	default:
		return StepResult{}, fmt.Errorf("no remote call for step %q", s)
	}

	if err != nil {
		log.Info("step call failed", zap.Error(err))
		return StepResult{}, err
	}

	log.Info("step call succeeded", zap.String("message", res.Message))
	return res, nil
}

func fromResult(r api.Result) StepResult {
	return StepResult{Code: r.Code, ID: r.ID, Message: r.Message}
}
