package cli

import (
	"bytes"
	"context"
	"testing"

	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/config"
	"ctpostman/internal/output"
	"ctpostman/internal/workflow"
)

// MockRemote is a [Remote] for testing. Wizard calls go to the embedded
// [workflow.MockRemote]; delete and auth calls are recorded here.
type MockRemote struct {
	*workflow.MockRemote

	DeleteErr error
	Deleted   []string

	Token   string
	AuthErr error
	Logins  []string
	Signups []string
}

func (m *MockRemote) DeleteUser(ctx context.Context, id string) (api.Result, error) {
	m.Deleted = append(m.Deleted, id)
	if m.DeleteErr != nil {
		return api.Result{}, m.DeleteErr
	}
	return api.Result{ID: id, Message: "User deleted"}, nil
}

func (m *MockRemote) Login(ctx context.Context, email, password string) (api.Session, error) {
	m.Logins = append(m.Logins, email)
	return api.Session{Token: m.Token}, m.AuthErr
}

func (m *MockRemote) Signup(ctx context.Context, name, email, password string) (api.Session, error) {
	m.Signups = append(m.Signups, name)
	return api.Session{Token: m.Token}, m.AuthErr
}

// newMockRemote returns a remote whose wizard calls all succeed.
func newMockRemote() *MockRemote {
	return &MockRemote{
		MockRemote: &workflow.MockRemote{
			Results: map[string]api.Result{
				"create":      {Code: "ZT88QP", ID: "u1", Message: "created"},
				"get-by-code": {Code: "ZT88QP", ID: "u1", Message: "found"},
				"update":      {Message: "updated"},
			},
			Listing: api.Listing{
				Message: "Well done",
				Users:   []api.User{{ID: "u1", Username: "demo2", Code: "ZT88QP", Number5: "5"}},
			},
		},
		Token: "tok-123",
	}
}

// newTestApp creates an App writing to a buffer.
func newTestApp(remote Remote) (*App, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	app := &App{
		Config:  config.DefaultConfig(),
		Remote:  remote,
		Printer: output.NewPrinterWithWriter(buf),
		Logger:  zap.NewNop(),
	}
	return app, buf
}

// runCommand executes the root command with args.
func runCommand(t *testing.T, app *App, args ...string) error {
	t.Helper()

	rootCmd := NewRootCommand(app)
	outBuf := &bytes.Buffer{}
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(outBuf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
