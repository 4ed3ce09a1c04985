package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
)

type fakeRemote struct {
	listing   api.Listing
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeRemote) ListUsers(ctx context.Context) (api.Listing, error) {
	return f.listing, f.listErr
}

func (f *fakeRemote) DeleteUser(ctx context.Context, id string) (api.Result, error) {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return api.Result{}, f.deleteErr
	}
	return api.Result{ID: id, Message: "deleted"}, nil
}

func TestService_List(t *testing.T) {
	remote := &fakeRemote{listing: api.Listing{
		Message: "Well done",
		Users:   []api.User{{ID: "u1", Username: "demo"}},
	}}
	svc := NewService(remote, nil)

	listing, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, remote.listing, listing)
}

func TestService_List_Error(t *testing.T) {
	remote := &fakeRemote{listErr: &api.Error{StatusCode: 500}}
	svc := NewService(remote, nil)

	_, err := svc.List(context.Background())

	_, ok := api.AsRemote(err)
	assert.True(t, ok)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		verb        method.Method
		id          string
		remoteErr   error
		wantErr     error
		wantMessage string
		wantCalls   int
	}{
		{
			name:      "delete with valid id",
			verb:      method.Delete,
			id:        "u1",
			wantCalls: 1,
		},
		{
			name:        "wrong verb issues no call",
			verb:        method.Get,
			id:          "u1",
			wantErr:     ErrInvalidMethod,
			wantMessage: "Invalid HTTP method",
		},
		{
			name:        "empty verb issues no call",
			verb:        "",
			id:          "u1",
			wantErr:     ErrInvalidMethod,
			wantMessage: "Invalid HTTP method",
		},
		{
			name:        "blank id issues no call",
			verb:        method.Delete,
			id:          "  ",
			wantErr:     ErrMissingID,
			wantMessage: "Please enter a user ID.",
		},
		{
			name:        "remote message is surfaced",
			verb:        method.Delete,
			id:          "u1",
			remoteErr:   &api.Error{StatusCode: 404, Message: "user not found"},
			wantMessage: "Failed to delete user: user not found",
			wantCalls:   1,
		},
		{
			name:        "status text when remote gives no message",
			verb:        method.Delete,
			id:          "u1",
			remoteErr:   &api.Error{StatusCode: 404},
			wantMessage: "Failed to delete user: Not Found",
			wantCalls:   1,
		},
		{
			name:        "transport failure asks to retry",
			verb:        method.Delete,
			id:          "u1",
			remoteErr:   &api.TransportError{Op: "send", Err: errors.New("refused")},
			wantMessage: "Failed to delete user. Please try again.",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{deleteErr: tt.remoteErr}
			svc := NewService(remote, nil)

			res, err := svc.Delete(context.Background(), tt.verb, tt.id)

			assert.Len(t, remote.deleted, tt.wantCalls)
			if tt.wantMessage == "" {
				require.NoError(t, err)
				assert.Equal(t, "u1", res.ID)
				return
			}

			require.Error(t, err)
			var delErr *DeleteError
			require.ErrorAs(t, err, &delErr)
			assert.Equal(t, tt.wantMessage, delErr.Message)
			assert.Equal(t, tt.wantMessage, err.Error())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.remoteErr != nil {
				assert.ErrorIs(t, err, tt.remoteErr)
			}
		})
	}
}

func TestService_Delete_TrimsID(t *testing.T) {
	remote := &fakeRemote{}
	svc := NewService(remote, nil)

	_, err := svc.Delete(context.Background(), method.Delete, " u1 ")

	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, remote.deleted)
}
