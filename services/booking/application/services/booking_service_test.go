package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/ghuser/lendshare/services/booking/domain"
	"github.com/ghuser/lendshare/services/booking/domain/models"
	bookingmemory "github.com/ghuser/lendshare/services/booking/infrastructure/persistence/memory"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	itemmodels "github.com/ghuser/lendshare/services/item/domain/models"
	itemmemory "github.com/ghuser/lendshare/services/item/infrastructure/persistence/memory"
	userdomain "github.com/ghuser/lendshare/services/user/domain"
	usermodels "github.com/ghuser/lendshare/services/user/domain/models"
	usermemory "github.com/ghuser/lendshare/services/user/infrastructure/persistence/memory"
)

type bookingFixture struct {
	svc   *BookingService
	users *usermemory.UserRepository
	items *itemmemory.ItemRepository
}

func newBookingFixture() *bookingFixture {
	users := usermemory.NewUserRepository()
	items := itemmemory.NewItemRepository()
	return &bookingFixture{
		svc:   NewBookingService(bookingmemory.NewBookingRepository(items), items, users),
		users: users,
		items: items,
	}
}

func (f *bookingFixture) addUser(t *testing.T, name string) int64 {
	t.Helper()
	u := &usermodels.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

func (f *bookingFixture) addItem(t *testing.T, ownerID int64, name string, available bool) int64 {
	t.Helper()
	item := &itemmodels.Item{
		Name: name, Description: name + " description",
		Available: available, OwnerID: ownerID,
	}
	require.NoError(t, f.items.Create(context.Background(), item))
	return item.ID
}

func futureWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(24 * time.Hour), now.Add(48 * time.Hour)
}

func TestBookingService_CreateStartsWaiting(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	view, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)
	assert.NotZero(t, view.Booking.ID)
	assert.Equal(t, models.StatusWaiting, view.Booking.Status)
	assert.Equal(t, "Drill", view.Item.Name)
	assert.Equal(t, "bob", view.Booker.Name)
}

func TestBookingService_CreateFailures(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	available := f.addItem(t, owner, "Drill", true)
	unavailable := f.addItem(t, owner, "Ladder", false)
	start, end := futureWindow()

	t.Run("unknown booker", func(t *testing.T) {
		_, err := f.svc.Create(ctx, 999, available, start, end)
		assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.svc.Create(ctx, booker, 999, start, end)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	})

	t.Run("owner books own item", func(t *testing.T) {
		_, err := f.svc.Create(ctx, owner, available, start, end)
		assert.ErrorIs(t, err, bookingdomain.ErrSelfBooking)
	})

	t.Run("unavailable item", func(t *testing.T) {
		_, err := f.svc.Create(ctx, booker, unavailable, start, end)
		assert.ErrorIs(t, err, bookingdomain.ErrItemUnavailable)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := f.svc.Create(ctx, booker, available, end, start)
		assert.ErrorIs(t, err, bookingdomain.ErrInvalidWindow)
	})

	t.Run("window in the past", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := f.svc.Create(ctx, booker, available, now.Add(-2*time.Hour), now.Add(-time.Hour))
		assert.ErrorIs(t, err, bookingdomain.ErrInvalidWindow)
	})
}

func TestBookingService_ApproveLifecycle(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	stranger := f.addUser(t, "carol")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	view, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)
	bookingID := view.Booking.ID

	// Only the item owner decides.
	_, err = f.svc.Approve(ctx, bookingID, stranger, true)
	assert.ErrorIs(t, err, bookingdomain.ErrNotOwner)
	_, err = f.svc.Approve(ctx, bookingID, booker, true)
	assert.ErrorIs(t, err, bookingdomain.ErrNotOwner)

	approved, err := f.svc.Approve(ctx, bookingID, owner, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Booking.Status)

	// The decision is final.
	_, err = f.svc.Approve(ctx, bookingID, owner, true)
	assert.ErrorIs(t, err, bookingdomain.ErrNotWaiting)
	_, err = f.svc.Approve(ctx, bookingID, owner, false)
	assert.ErrorIs(t, err, bookingdomain.ErrNotWaiting)
}

func TestBookingService_Reject(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	view, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)

	rejected, err := f.svc.Approve(ctx, view.Booking.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Booking.Status)
}

func TestBookingService_GetVisibility(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	stranger := f.addUser(t, "carol")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	view, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)

	for _, caller := range []int64{booker, owner} {
		got, err := f.svc.Get(ctx, view.Booking.ID, caller)
		require.NoError(t, err)
		assert.Equal(t, view.Booking.ID, got.Booking.ID)
	}

	_, err = f.svc.Get(ctx, view.Booking.ID, stranger)
	assert.ErrorIs(t, err, bookingdomain.ErrAccessDenied)

	_, err = f.svc.Get(ctx, 999, booker)
	assert.ErrorIs(t, err, bookingdomain.ErrBookingNotFound)
}

func TestBookingService_GetUserBookingsFilters(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	waiting, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)

	all, err := f.svc.GetUserBookings(ctx, booker, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, waiting.Booking.ID, all[0].Booking.ID)

	future, err := f.svc.GetUserBookings(ctx, booker, "FUTURE")
	require.NoError(t, err)
	assert.Len(t, future, 1)

	past, err := f.svc.GetUserBookings(ctx, booker, "PAST")
	require.NoError(t, err)
	assert.Empty(t, past)

	rejected, err := f.svc.GetUserBookings(ctx, booker, "REJECTED")
	require.NoError(t, err)
	assert.Empty(t, rejected)

	_, err = f.svc.GetUserBookings(ctx, booker, "BOGUS")
	assert.ErrorIs(t, err, bookingdomain.ErrUnknownState)
}

func TestBookingService_GetOwnerBookings(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	itemless := f.addUser(t, "carol")
	itemID := f.addItem(t, owner, "Drill", true)

	start, end := futureWindow()
	view, err := f.svc.Create(ctx, booker, itemID, start, end)
	require.NoError(t, err)

	views, err := f.svc.GetOwnerBookings(ctx, owner, "ALL")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, view.Booking.ID, views[0].Booking.ID)
	assert.Equal(t, "bob", views[0].Booker.Name)

	waiting, err := f.svc.GetOwnerBookings(ctx, owner, "WAITING")
	require.NoError(t, err)
	assert.Len(t, waiting, 1)

	_, err = f.svc.GetOwnerBookings(ctx, itemless, "ALL")
	assert.ErrorIs(t, err, bookingdomain.ErrNoItems)
}

func TestBookingService_OrderedByStartDescending(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")
	itemID := f.addItem(t, owner, "Drill", true)

	now := time.Now().UTC()
	early, err := f.svc.Create(ctx, booker, itemID, now.Add(24*time.Hour), now.Add(36*time.Hour))
	require.NoError(t, err)
	late, err := f.svc.Create(ctx, booker, itemID, now.Add(72*time.Hour), now.Add(96*time.Hour))
	require.NoError(t, err)

	views, err := f.svc.GetUserBookings(ctx, booker, "ALL")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, late.Booking.ID, views[0].Booking.ID)
	assert.Equal(t, early.Booking.ID, views[1].Booking.ID)
}
