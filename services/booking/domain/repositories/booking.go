package repositories

import (
	"context"
	"time"

	"github.com/ghuser/lendshare/services/booking/domain/models"
)

// BookingRepository is the persistence interface for bookings.
// The domain layer owns this interface; infrastructure implements it.
type BookingRepository interface {
	// Create persists a new booking and assigns a store-generated id.
	//
	// The implementation must serialize against concurrent bookings of the
	// same item and re-check availability at insert time, returning
	// domain.ErrItemUnavailable when the item is no longer available.
	Create(ctx context.Context, booking *models.Booking) error

	// GetByID returns the booking or domain.ErrBookingNotFound.
	GetByID(ctx context.Context, id int64) (*models.Booking, error)

	// UpdateStatus persists a status transition.
	UpdateStatus(ctx context.Context, booking *models.Booking) error

	// FindByBookerID returns the booker's bookings matching filter,
	// ordered by start descending.
	FindByBookerID(ctx context.Context, bookerID int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error)

	// FindByItemIDIn returns bookings of any of the items matching filter,
	// ordered by start descending.
	FindByItemIDIn(ctx context.Context, itemIDs []int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error)

	// FindLastApproved returns the most recent APPROVED booking of the item
	// with end <= now, or nil when none exists.
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)

	// FindNextApproved returns the nearest APPROVED booking of the item with
	// end > now, or nil when none exists.
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)

	// HasFinishedApproved reports whether bookerID holds an APPROVED booking
	// of itemID whose end lies strictly before now.
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}
