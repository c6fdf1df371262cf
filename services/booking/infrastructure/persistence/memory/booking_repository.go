// Package memory provides a map-backed booking repository used by service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingdomain "github.com/ghuser/lendshare/services/booking/domain"
	"github.com/ghuser/lendshare/services/booking/domain/models"
	itemrepos "github.com/ghuser/lendshare/services/item/domain/repositories"
)

// BookingRepository is an in-memory repositories.BookingRepository.
// When items is set, Create re-checks availability the way the SQL
// implementation does under its row lock.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]models.Booking
	nextID   int64
	items    itemrepos.ItemRepository
}

// NewBookingRepository returns an empty in-memory booking store. items may be
// nil to skip the availability re-check on Create.
func NewBookingRepository(items itemrepos.ItemRepository) *BookingRepository {
	return &BookingRepository{
		bookings: make(map[int64]models.Booking),
		nextID:   1,
		items:    items,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items != nil {
		item, err := r.items.GetByID(ctx, booking.ItemID)
		if err != nil {
			return err
		}
		if !item.Available {
			return bookingdomain.ErrItemUnavailable
		}
	}

	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingdomain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bookings[booking.ID]
	if !ok {
		return bookingdomain.ErrBookingNotFound
	}
	cur.Status = booking.Status
	r.bookings[booking.ID] = cur
	return nil
}

func (r *BookingRepository) FindByBookerID(_ context.Context, bookerID int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(b models.Booking) bool {
		return b.BookerID == bookerID && matchesFilter(b, filter, now)
	}), nil
}

func (r *BookingRepository) FindByItemIDIn(_ context.Context, itemIDs []int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	return r.collect(func(b models.Booking) bool {
		return wanted[b.ItemID] && matchesFilter(b, filter, now)
	}), nil
}

func (r *BookingRepository) FindLastApproved(_ context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var last *models.Booking
	for _, b := range r.bookings {
		if b.ItemID != itemID || b.Status != models.StatusApproved || b.End.After(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			b := b
			last = &b
		}
	}
	return last, nil
}

func (r *BookingRepository) FindNextApproved(_ context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var next *models.Booking
	for _, b := range r.bookings {
		if b.ItemID != itemID || b.Status != models.StatusApproved || !b.End.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			b := b
			next = &b
		}
	}
	return next, nil
}

func (r *BookingRepository) HasFinishedApproved(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID &&
			b.Status == models.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func matchesFilter(b models.Booking, filter models.StateFilter, now time.Time) bool {
	switch filter {
	case models.FilterCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case models.FilterPast:
		return b.End.Before(now)
	case models.FilterFuture:
		return b.Start.After(now)
	case models.FilterWaiting:
		return b.Status == models.StatusWaiting
	case models.FilterRejected:
		return b.Status == models.StatusRejected
	default:
		return true
	}
}

// collect returns matching bookings ordered by start descending.
func (r *BookingRepository) collect(match func(models.Booking) bool) []*models.Booking {
	out := make([]*models.Booking, 0)
	for _, b := range r.bookings {
		if match(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}
