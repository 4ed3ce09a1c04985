// Package api is the JSON client for the remote demo API.
//
// The client covers the users resource driven by the wizard (create, read by
// code, partial update, list, delete) and the login/signup endpoints. Every
// request is JSON in both directions and carries a fresh X-Request-ID. A 2xx
// status is success; anything else becomes an [*Error] carrying the body's
// "message" field when present.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ctpostman/internal/method"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// HeaderRequestID is the header carrying the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// Client talks to the remote demo API.
//
// Create with [NewClient]. A Client is safe for concurrent use.
type Client struct {
	usersURL string
	authURL  string
	http     *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded. The
// timeout applies to the client set by [WithHTTPClient] regardless of order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a [Client] for the given users collection URL and auth
// API base URL. Trailing slashes are ignored.
func NewClient(usersURL, authURL string, opts ...Option) *Client {
	c := &Client{
		usersURL: strings.TrimRight(usersURL, "/"),
		authURL:  strings.TrimRight(authURL, "/"),
		http:     &http.Client{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// CreateUser creates a demo record (POST {users}).
func (c *Client) CreateUser(ctx context.Context, creds Credentials) (Result, error) {
	var body recordBody
	if err := c.do(ctx, method.Post, c.usersURL, creds, &body); err != nil {
		return Result{}, err
	}
	return body.result(), nil
}

// GetUserByCode reads a record by its generated code (GET {users}/code/{code}).
func (c *Client) GetUserByCode(ctx context.Context, code string) (Result, error) {
	var body recordBody
	if err := c.do(ctx, method.Get, c.usersURL+"/code/"+url.PathEscape(code), nil, &body); err != nil {
		return Result{}, err
	}
	return body.result(), nil
}

// UpdateUser partially updates a record by id (PATCH {users}/{id}).
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (Result, error) {
	var body recordBody
	if err := c.do(ctx, method.Patch, c.usersURL+"/"+url.PathEscape(id), patch, &body); err != nil {
		return Result{}, err
	}
	return body.result(), nil
}

// ListUsers fetches the users listing (GET {users}).
func (c *Client) ListUsers(ctx context.Context) (Listing, error) {
	var body listingBody
	if err := c.do(ctx, method.Get, c.usersURL, nil, &body); err != nil {
		return Listing{}, err
	}
	return Listing{Message: body.Message, Users: body.Users}, nil
}

// DeleteUser deletes a record by id (DELETE {users}/{id}).
func (c *Client) DeleteUser(ctx context.Context, id string) (Result, error) {
	var body recordBody
	if err := c.do(ctx, method.Delete, c.usersURL+"/"+url.PathEscape(id), nil, &body); err != nil {
		return Result{}, err
	}
	return body.result(), nil
}

// Login exchanges an email and password for a token (POST {auth}/users/login).
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var body authBody
	req := authRequest{Email: email, Password: password}
	if err := c.do(ctx, method.Post, c.authURL+"/users/login", req, &body); err != nil {
		return Session{}, err
	}
	return Session{Token: body.Token, Message: body.Message}, nil
}

// Signup registers an account and returns its token (POST {auth}/users/signup).
func (c *Client) Signup(ctx context.Context, name, email, password string) (Session, error) {
	var body authBody
	req := authRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, method.Post, c.authURL+"/users/signup", req, &body); err != nil {
		return Session{}, err
	}
	return Session{Token: body.Token, Message: body.Message}, nil
}

// do sends one JSON request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, verb method.Method, target string, in, out any) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, string(verb), target, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", string(verb)),
		zap.String("url", target),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return &TransportError{Op: "read", Err: err}
	}

	log.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode", Err: err}
	}
	return nil
}

// errorMessage extracts the human readable message of a failure body.
// Non-JSON bodies yield "".
func errorMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return firstNonEmpty(body.Message, body.Error)
}
