package domain

import "errors"

// Sentinel errors for the booking lifecycle. Use errors.Is() to check these.
var (
	// ErrBookingNotFound indicates the requested booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied indicates the caller is neither the booker nor the
	// item's owner. Surfaced as 404 at the HTTP boundary.
	ErrAccessDenied = errors.New("access denied")

	// ErrItemUnavailable indicates the item is not available for booking.
	ErrItemUnavailable = errors.New("item is not available for booking")

	// ErrSelfBooking indicates the booker owns the item.
	ErrSelfBooking = errors.New("owner cannot book their own item")

	// ErrInvalidWindow indicates the booking time window violates the
	// creation invariants (start < end, neither in the past).
	ErrInvalidWindow = errors.New("invalid booking dates")

	// ErrNotOwner indicates the approval caller does not own the booked item.
	ErrNotOwner = errors.New("only item owner can approve booking")

	// ErrNotWaiting indicates the booking already left the WAITING state.
	ErrNotWaiting = errors.New("booking is not waiting for approval")

	// ErrNoItems indicates the owner-bookings query found no owned items.
	ErrNoItems = errors.New("user has no items")

	// ErrUnknownState indicates an unrecognized state filter value.
	ErrUnknownState = errors.New("unknown booking state")
)
