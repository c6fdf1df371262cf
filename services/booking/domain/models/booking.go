package models

import (
	"strings"
	"time"

	"github.com/ghuser/lendshare/services/booking/domain"
)

// Status is the lifecycle status of a booking.
// WAITING is the initial state; APPROVED and REJECTED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a reservation of an item for a time window by a non-owner.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   Status
}

// Decide transitions a WAITING booking to APPROVED or REJECTED.
// Returns domain.ErrNotWaiting once the booking left the WAITING state.
func (b *Booking) Decide(approve bool) error {
	if b.Status != StatusWaiting {
		return domain.ErrNotWaiting
	}
	if approve {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	return nil
}

// StateFilter selects bookings by lifecycle or time position in list queries.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT" // start <= now <= end
	FilterPast     StateFilter = "PAST"    // end < now
	FilterFuture   StateFilter = "FUTURE"  // start > now
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter parses a state query value. Empty input defaults to ALL;
// an unrecognized value returns domain.ErrUnknownState.
func ParseStateFilter(s string) (StateFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	switch f := StateFilter(strings.ToUpper(s)); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", domain.ErrUnknownState
	}
}
