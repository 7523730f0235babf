package service

import (
	"errors"
	"fmt"
)

// Typed failure channel for the services; handlers map these onto HTTP
// status codes and never surface anything else to the client.
var (
	// ErrUserExists covers both duplicate username and duplicate email.
	ErrUserExists = errors.New("username or email already exists")

	// ErrInvalidCredentials is deliberately shared by the unknown-username
	// and wrong-password paths so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUserNotFound = errors.New("user not found")

	ErrTaskNotFound = errors.New("task not found")

	// ErrNotOwner means the task exists but belongs to another user. The
	// HTTP layer maps it to the same 404 as ErrTaskNotFound; keeping the
	// kinds distinct preserves the ownership decision in one place.
	ErrNotOwner = errors.New("task is owned by another user")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
