// Package remote is the client's only view of the hosted backend: a record
// store keyed by kind and an auth service holding the session.
package remote

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
)

type Store interface {
	ListRecords(ctx context.Context, kind string) ([]inventory.Record, error)
	InsertRecord(ctx context.Context, kind string, f inventory.Fields) error
	UpdateRecord(ctx context.Context, kind, id string, f inventory.Fields) error
	DeleteRecord(ctx context.Context, kind, id string) error
}

type Auth interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (User, error)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// RemoteError carries whatever the backend reported. Status is zero when the
// request never got a response.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }
