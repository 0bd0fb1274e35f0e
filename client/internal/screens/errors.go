package screens

import (
	"errors"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/remote"
)

type (
	MissingFieldError    = inventory.MissingFieldError
	InvalidNumberError   = inventory.InvalidNumberError
	RemoteOperationError = remote.RemoteError
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnauthorizedSignup = errors.New("invalid admin password")
	ErrNoPendingDelete    = errors.New("no delete awaiting confirmation")
)
