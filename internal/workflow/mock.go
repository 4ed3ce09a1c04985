package workflow

import (
	"context"
	"sync"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
)

// MockCall records one call received by [MockRemote].
type MockCall struct {
	Method method.Method
	Op     string
	Arg    string
	Body   any
}

// MockRemote is a [Remote] for tests.
//
// Responses are configured per operation name ("create", "get-by-code",
// "update", "list"). An operation with an entry in Errors fails with that
// error. When Gate is non-nil every call blocks until Gate yields a value or
// is closed, which lets tests observe the in-flight state.
type MockRemote struct {
	Results map[string]api.Result
	Listing api.Listing
	Errors  map[string]error
	Gate    chan struct{}

	mu    sync.Mutex
	calls []MockCall
}

// Calls returns a snapshot of the calls received so far.
func (m *MockRemote) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of calls received so far.
func (m *MockRemote) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *MockRemote) record(ctx context.Context, c MockCall) error {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.Errors[c.Op]
}

func (m *MockRemote) CreateUser(ctx context.Context, creds api.Credentials) (api.Result, error) {
	if err := m.record(ctx, MockCall{Method: method.Post, Op: "create", Body: creds}); err != nil {
		return api.Result{}, err
	}
	return m.Results["create"], nil
}

func (m *MockRemote) GetUserByCode(ctx context.Context, code string) (api.Result, error) {
	if err := m.record(ctx, MockCall{Method: method.Get, Op: "get-by-code", Arg: code}); err != nil {
		return api.Result{}, err
	}
	return m.Results["get-by-code"], nil
}

func (m *MockRemote) UpdateUser(ctx context.Context, id string, patch api.UserPatch) (api.Result, error) {
	if err := m.record(ctx, MockCall{Method: method.Patch, Op: "update", Arg: id, Body: patch}); err != nil {
		return api.Result{}, err
	}
	return m.Results["update"], nil
}

func (m *MockRemote) ListUsers(ctx context.Context) (api.Listing, error) {
	if err := m.record(ctx, MockCall{Method: method.Get, Op: "list"}); err != nil {
		return api.Listing{}, err
	}
	return m.Listing, nil
}
