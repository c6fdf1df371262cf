package domain

import "errors"

// Sentinel errors for the item catalog. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrAccessDenied indicates the caller is not the item's owner.
	ErrAccessDenied = errors.New("access denied: only owner can update item")

	// ErrInvalidItem indicates the item fields violate domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrCommentNotAllowed indicates the author never completed an approved
	// booking of the item.
	ErrCommentNotAllowed = errors.New("user can only comment on items they have booked in the past")
)
