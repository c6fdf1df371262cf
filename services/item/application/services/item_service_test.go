package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/lendshare/pkg/config"
	"github.com/ghuser/lendshare/pkg/logger"
	bookingmodels "github.com/ghuser/lendshare/services/booking/domain/models"
	bookingmemory "github.com/ghuser/lendshare/services/booking/infrastructure/persistence/memory"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	itemmemory "github.com/ghuser/lendshare/services/item/infrastructure/persistence/memory"
	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	requestmodels "github.com/ghuser/lendshare/services/request/domain/models"
	requestmemory "github.com/ghuser/lendshare/services/request/infrastructure/persistence/memory"
	userdomain "github.com/ghuser/lendshare/services/user/domain"
	usermodels "github.com/ghuser/lendshare/services/user/domain/models"
	usermemory "github.com/ghuser/lendshare/services/user/infrastructure/persistence/memory"
)

type itemFixture struct {
	svc      *ItemService
	users    *usermemory.UserRepository
	requests *requestmemory.RequestRepository
	bookings *bookingmemory.BookingRepository
}

func newItemFixture() *itemFixture {
	users := usermemory.NewUserRepository()
	items := itemmemory.NewItemRepository()
	requests := requestmemory.NewRequestRepository()
	bookings := bookingmemory.NewBookingRepository(items)
	log := logger.New(&config.Config{LogLevel: "error"})
	return &itemFixture{
		svc: NewItemService(
			items,
			itemmemory.NewCommentRepository(),
			users,
			requests,
			bookings,
			nil, // no cache in unit tests
			log,
		),
		users:    users,
		requests: requests,
		bookings: bookings,
	}
}

func (f *itemFixture) addUser(t *testing.T, name string) int64 {
	t.Helper()
	u := &usermodels.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

func TestItemService_Create(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner, item.OwnerID)
}

func TestItemService_CreateUnknownOwner(t *testing.T) {
	f := newItemFixture()

	_, err := f.svc.Create(context.Background(), 999, "Drill", "Cordless", true, nil)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestItemService_CreateDanglingRequest(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	missing := int64(999)
	_, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, &missing)
	assert.ErrorIs(t, err, requestdomain.ErrRequestNotFound)
}

func TestItemService_CreateLinkedToRequest(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	requester := f.addUser(t, "bob")

	req := &requestmodels.ItemRequest{
		Description: "need a drill", RequesterID: requester, Created: time.Now().UTC(),
	}
	require.NoError(t, f.requests.Create(ctx, req))

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, &req.ID)
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, req.ID, *item.RequestID)

	linked, err := f.svc.GetItemsByRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, item.ID, linked[0].ID)
}

func TestItemService_CreateInvalid(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	_, err := f.svc.Create(ctx, owner, "   ", "Cordless", true, nil)
	assert.ErrorIs(t, err, itemdomain.ErrInvalidItem)
}

func TestItemService_UpdateOwnerOnly(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	other := f.addUser(t, "bob")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	name := "Hammer"
	_, err = f.svc.Update(ctx, item.ID, other, &name, nil, nil)
	assert.ErrorIs(t, err, itemdomain.ErrAccessDenied)
}

func TestItemService_UpdatePatchSemantics(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	available := false
	updated, err := f.svc.Update(ctx, item.ID, owner, nil, nil, &available)
	require.NoError(t, err)
	assert.Equal(t, "Drill", updated.Name, "name untouched by nil patch")
	assert.False(t, updated.Available)
}

func TestItemService_SearchBlankShortCircuits(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	_, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	for _, text := range []string{"", "   "} {
		items, err := f.svc.Search(ctx, text)
		require.NoError(t, err)
		assert.Empty(t, items)
	}
}

func TestItemService_SearchAvailableOnly(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")

	_, err := f.svc.Create(ctx, owner, "Cordless Drill", "Two batteries", true, nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, owner, "Old Drill", "Worn out", false, nil)
	require.NoError(t, err)

	// Case-insensitive match over name and description, available items only.
	items, err := f.svc.Search(ctx, "dRiLL")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cordless Drill", items[0].Name)
}

func TestItemService_GetBookingEnrichmentForOwnerOnly(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	past := &bookingmodels.Booking{
		Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour),
		ItemID: item.ID, BookerID: booker, Status: bookingmodels.StatusApproved,
	}
	future := &bookingmodels.Booking{
		Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour),
		ItemID: item.ID, BookerID: booker, Status: bookingmodels.StatusApproved,
	}
	require.NoError(t, f.bookings.Create(ctx, past))
	require.NoError(t, f.bookings.Create(ctx, future))

	ownerView, err := f.svc.Get(ctx, item.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, ownerView.LastBooking)
	require.NotNil(t, ownerView.NextBooking)
	assert.Equal(t, past.ID, ownerView.LastBooking.ID)
	assert.Equal(t, future.ID, ownerView.NextBooking.ID)

	otherView, err := f.svc.Get(ctx, item.ID, booker)
	require.NoError(t, err)
	assert.Nil(t, otherView.LastBooking)
	assert.Nil(t, otherView.NextBooking)
}

func TestItemService_AddCommentRequiresFinishedBooking(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, item.ID, booker, "never rented it")
	assert.ErrorIs(t, err, itemdomain.ErrCommentNotAllowed)

	now := time.Now().UTC()
	finished := &bookingmodels.Booking{
		Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour),
		ItemID: item.ID, BookerID: booker, Status: bookingmodels.StatusApproved,
	}
	require.NoError(t, f.bookings.Create(ctx, finished))

	cv, err := f.svc.AddComment(ctx, item.ID, booker, "great drill")
	require.NoError(t, err)
	assert.NotZero(t, cv.Comment.ID)
	assert.Equal(t, "bob", cv.AuthorName)
}

func TestItemService_AddCommentWaitingBookingNotEnough(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")

	item, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	waiting := &bookingmodels.Booking{
		Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour),
		ItemID: item.ID, BookerID: booker, Status: bookingmodels.StatusWaiting,
	}
	require.NoError(t, f.bookings.Create(ctx, waiting))

	_, err = f.svc.AddComment(ctx, item.ID, booker, "sneaky")
	assert.ErrorIs(t, err, itemdomain.ErrCommentNotAllowed)
}

func TestItemService_GetUserItemsEnriched(t *testing.T) {
	f := newItemFixture()
	ctx := context.Background()
	owner := f.addUser(t, "alice")
	booker := f.addUser(t, "bob")

	drill, err := f.svc.Create(ctx, owner, "Drill", "Cordless", true, nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, owner, "Ladder", "Three meters", true, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	finished := &bookingmodels.Booking{
		Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour),
		ItemID: drill.ID, BookerID: booker, Status: bookingmodels.StatusApproved,
	}
	require.NoError(t, f.bookings.Create(ctx, finished))

	_, err = f.svc.AddComment(ctx, drill.ID, booker, "great drill")
	require.NoError(t, err)

	views, err := f.svc.GetUserItems(ctx, owner)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, drill.ID, views[0].Item.ID)
	require.Len(t, views[0].Comments, 1)
	assert.Equal(t, "bob", views[0].Comments[0].AuthorName)
	require.NotNil(t, views[0].LastBooking)
	assert.Equal(t, finished.ID, views[0].LastBooking.ID)

	assert.Empty(t, views[1].Comments)
	assert.Nil(t, views[1].LastBooking)
	assert.Nil(t, views[1].NextBooking)
}
