// Package session holds the authentication state of the interactive client
// and the route gate that decides which screen a request may reach.
//
// A [Session] is an explicit value owned by its caller. Nothing is written to
// disk: quitting the program logs the user out.
package session

import (
	"context"
	"errors"
	"strings"

	"ctpostman/internal/api"
)

// ErrNoToken is returned when the auth API answered 2xx without a token.
var ErrNoToken = errors.New("auth response carried no token")

// Session is the authentication state of one user.
type Session struct {
	Token string
	User  string
}

// Authenticated reports whether s carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Route is a screen of the interactive client.
type Route string

// Known routes.
const (
	RouteAuth   Route = "auth"
	RouteWizard Route = "wizard"
	RouteUsers  Route = "users"
)

// Protected reports whether r requires an authenticated session.
func (r Route) Protected() bool {
	return r != RouteAuth
}

// Resolve returns the route a request for want actually lands on.
//
// Unauthenticated requests for protected routes go to the auth screen, and
// authenticated requests for the auth screen go to the wizard.
func Resolve(s Session, want Route) Route {
	switch {
	case !s.Authenticated() && want.Protected():
		return RouteAuth
	case s.Authenticated() && want == RouteAuth:
		return RouteWizard
	}
	return want
}

// Authenticator is the subset of the demo API that issues tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.Session, error)
	Signup(ctx context.Context, name, email, password string) (api.Session, error)
}

// Login authenticates with email and password.
func Login(ctx context.Context, auth Authenticator, email, password string) (Session, error) {
	res, err := auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return Session{}, err
	}
	return fromResponse(res, email)
}

// Signup registers a new account and authenticates it.
func Signup(ctx context.Context, auth Authenticator, name, email, password string) (Session, error) {
	res, err := auth.Signup(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return Session{}, err
	}
	return fromResponse(res, name)
}

// Logout returns the empty session.
func Logout() Session {
	return Session{}
}

func fromResponse(res api.Session, user string) (Session, error) {
	if res.Token == "" {
		return Session{}, ErrNoToken
	}
	return Session{Token: res.Token, User: strings.TrimSpace(user)}, nil
}
