package repository

import "errors"

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that already
	// has an account. The pre-check is advisory only; the store has no
	// unique constraint on email.
	ErrEmailTaken = errors.New("email already registered")
)
