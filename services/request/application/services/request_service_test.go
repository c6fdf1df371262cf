package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemmodels "github.com/ghuser/lendshare/services/item/domain/models"
	itemmemory "github.com/ghuser/lendshare/services/item/infrastructure/persistence/memory"
	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	requestmemory "github.com/ghuser/lendshare/services/request/infrastructure/persistence/memory"
	userdomain "github.com/ghuser/lendshare/services/user/domain"
	usermodels "github.com/ghuser/lendshare/services/user/domain/models"
	usermemory "github.com/ghuser/lendshare/services/user/infrastructure/persistence/memory"
)

type requestFixture struct {
	svc   *RequestService
	users *usermemory.UserRepository
	items *itemmemory.ItemRepository
}

func newRequestFixture() *requestFixture {
	users := usermemory.NewUserRepository()
	items := itemmemory.NewItemRepository()
	return &requestFixture{
		svc:   NewRequestService(requestmemory.NewRequestRepository(), users, items),
		users: users,
		items: items,
	}
}

func (f *requestFixture) addUser(t *testing.T, name string) int64 {
	t.Helper()
	u := &usermodels.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

func TestRequestService_Create(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	userID := f.addUser(t, "alice")

	req, err := f.svc.Create(ctx, userID, "need a drill")
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, userID, req.RequesterID)
	assert.False(t, req.Created.IsZero(), "creation timestamp is server-assigned")
}

func TestRequestService_CreateUnknownUser(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.Create(context.Background(), 999, "need a drill")
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestRequestService_GetUserRequestsEnriched(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	req, err := f.svc.Create(ctx, alice, "need a drill")
	require.NoError(t, err)

	item := &itemmodels.Item{
		Name: "Drill", Description: "Cordless", Available: true,
		OwnerID: bob, RequestID: &req.ID,
	}
	require.NoError(t, f.items.Create(ctx, item))

	views, err := f.svc.GetUserRequests(ctx, alice)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, item.ID, views[0].Items[0].ID)
}

func TestRequestService_GetUserRequestsEmptyItems(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	_, err := f.svc.Create(ctx, alice, "need a drill")
	require.NoError(t, err)

	views, err := f.svc.GetUserRequests(ctx, alice)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.NotNil(t, views[0].Items, "items must be an empty slice, not nil")
	assert.Empty(t, views[0].Items)
}

func TestRequestService_GetAllExcludesOwn(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	_, err := f.svc.Create(ctx, alice, "need a drill")
	require.NoError(t, err)
	bobReq, err := f.svc.Create(ctx, bob, "need a ladder")
	require.NoError(t, err)

	views, err := f.svc.GetAll(ctx, alice, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, bobReq.ID, views[0].Request.ID)
}

func TestRequestService_GetAllPaginationValidation(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	tests := []struct {
		name string
		from int
		size int
	}{
		{"negative from", -1, 10},
		{"zero size", 0, 0},
		{"negative size", 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.GetAll(ctx, alice, tt.from, tt.size)
			assert.ErrorIs(t, err, requestdomain.ErrInvalidPagination)
		})
	}
}

func TestRequestService_GetByID(t *testing.T) {
	f := newRequestFixture()
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	req, err := f.svc.Create(ctx, alice, "need a drill")
	require.NoError(t, err)

	// Any existing user may read any request.
	view, err := f.svc.GetByID(ctx, req.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, req.ID, view.Request.ID)

	_, err = f.svc.GetByID(ctx, 999, alice)
	assert.ErrorIs(t, err, requestdomain.ErrRequestNotFound)

	_, err = f.svc.GetByID(ctx, req.ID, 999)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
