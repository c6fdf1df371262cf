package domain

import "errors"

// Sentinel errors for the item request board. Use errors.Is() to check these.
var (
	// ErrRequestNotFound indicates the requested item request does not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrInvalidPagination indicates from/size query parameters out of range.
	ErrInvalidPagination = errors.New("invalid pagination parameters: from must be >= 0, size must be > 0")
)
