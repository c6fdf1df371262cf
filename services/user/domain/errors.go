package domain

import "errors"

// Sentinel errors for the user directory. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates another user already holds the email.
	ErrDuplicateEmail = errors.New("email already exists")
)
