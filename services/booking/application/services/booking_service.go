package services

import (
	"context"
	"fmt"
	"time"

	bookingdomain "github.com/ghuser/lendshare/services/booking/domain"
	"github.com/ghuser/lendshare/services/booking/domain/models"
	"github.com/ghuser/lendshare/services/booking/domain/repositories"
	domainservices "github.com/ghuser/lendshare/services/booking/domain/services"
	itemmodels "github.com/ghuser/lendshare/services/item/domain/models"
	itemrepos "github.com/ghuser/lendshare/services/item/domain/repositories"
	usermodels "github.com/ghuser/lendshare/services/user/domain/models"
	userrepos "github.com/ghuser/lendshare/services/user/domain/repositories"
)

// BookingView is a booking enriched with its item and booker.
// Assembled at read time, never persisted.
type BookingView struct {
	Booking *models.Booking
	Item    *itemmodels.Item
	Booker  *usermodels.User
}

// BookingService orchestrates the booking lifecycle.
type BookingService struct {
	repo  repositories.BookingRepository
	items itemrepos.ItemRepository
	users userrepos.UserRepository
}

// NewBookingService returns a BookingService wired with the given repositories.
func NewBookingService(
	repo repositories.BookingRepository,
	items itemrepos.ItemRepository,
	users userrepos.UserRepository,
) *BookingService {
	return &BookingService{repo: repo, items: items, users: users}
}

// Create books an item for the given window. The booking starts WAITING.
//
// The availability check here is advisory; the repository re-checks under an
// item row lock at insert time, so two concurrent requests cannot both slip
// past a just-flipped availability flag.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*BookingView, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, bookingdomain.ErrSelfBooking
	}
	if !item.Available {
		return nil, bookingdomain.ErrItemUnavailable
	}
	if err := domainservices.ValidateWindow(start, end, time.Now().UTC()); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return &BookingView{Booking: booking, Item: item, Booker: booker}, nil
}

// Approve lets the item owner decide a WAITING booking. Deciding twice fails
// with ErrNotWaiting; a caller who does not own the item gets ErrNotOwner.
func (s *BookingService) Approve(ctx context.Context, bookingID, callerID int64, approve bool) (*BookingView, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, bookingdomain.ErrNotOwner
	}

	if err := booking.Decide(approve); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booker, err := s.users.GetByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &BookingView{Booking: booking, Item: item, Booker: booker}, nil
}

// Get returns a booking to its booker or the item's owner; anyone else gets
// ErrAccessDenied.
func (s *BookingService) Get(ctx context.Context, bookingID, callerID int64) (*BookingView, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.BookerID && callerID != item.OwnerID {
		return nil, bookingdomain.ErrAccessDenied
	}

	booker, err := s.users.GetByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &BookingView{Booking: booking, Item: item, Booker: booker}, nil
}

// GetUserBookings returns the caller's bookings matching the state filter,
// newest start first.
func (s *BookingService) GetUserBookings(ctx context.Context, bookerID int64, state string) ([]BookingView, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	filter, err := models.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByBookerID(ctx, bookerID, filter, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.enrich(ctx, bookings, nil, booker)
}

// GetOwnerBookings returns bookings of the caller's items matching the state
// filter, newest start first. An owner with no items gets ErrNoItems.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID int64, state string) ([]BookingView, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	filter, err := models.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(items) == 0 {
		return nil, bookingdomain.ErrNoItems
	}

	ids := make([]int64, len(items))
	itemsByID := make(map[int64]*itemmodels.Item, len(items))
	for i, item := range items {
		ids[i] = item.ID
		itemsByID[item.ID] = item
	}

	bookings, err := s.repo.FindByItemIDIn(ctx, ids, filter, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.enrich(ctx, bookings, itemsByID, nil)
}

// enrich resolves items and bookers for a batch of bookings, memoizing
// lookups. Pre-resolved items or a shared booker skip their lookups entirely.
func (s *BookingService) enrich(
	ctx context.Context,
	bookings []*models.Booking,
	itemsByID map[int64]*itemmodels.Item,
	sharedBooker *usermodels.User,
) ([]BookingView, error) {
	if itemsByID == nil {
		itemsByID = make(map[int64]*itemmodels.Item)
	}
	bookers := make(map[int64]*usermodels.User)
	if sharedBooker != nil {
		bookers[sharedBooker.ID] = sharedBooker
	}

	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		item, ok := itemsByID[b.ItemID]
		if !ok {
			var err error
			item, err = s.items.GetByID(ctx, b.ItemID)
			if err != nil {
				return nil, fmt.Errorf("resolve item %d: %w", b.ItemID, err)
			}
			itemsByID[b.ItemID] = item
		}

		booker, ok := bookers[b.BookerID]
		if !ok {
			var err error
			booker, err = s.users.GetByID(ctx, b.BookerID)
			if err != nil {
				return nil, fmt.Errorf("resolve booker %d: %w", b.BookerID, err)
			}
			bookers[b.BookerID] = booker
		}

		views[i] = BookingView{Booking: b, Item: item, Booker: booker}
	}
	return views, nil
}
