package store

import "errors"

var (
	// ErrNotFound is returned when a user, request, or message lookup
	// resolves to nothing.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a signup collides with an existing
	// username or email.
	ErrConflict = errors.New("username or email already exists")

	// ErrDuplicateRequest is returned when a chat request already exists
	// for the exact ordered (sender, receiver) pair and is not rejected.
	ErrDuplicateRequest = errors.New("chat request already sent")

	// ErrValidation is returned when a write carries a malformed or
	// out-of-bounds field.
	ErrValidation = errors.New("invalid input")
)
