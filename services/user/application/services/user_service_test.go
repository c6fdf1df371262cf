package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdomain "github.com/ghuser/lendshare/services/user/domain"
	"github.com/ghuser/lendshare/services/user/infrastructure/persistence/memory"
)

func newUserService() *UserService {
	return NewUserService(memory.NewUserRepository())
}

func TestUserService_CreateAndGet(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Impostor", "alice@example.com")
	assert.ErrorIs(t, err, userdomain.ErrDuplicateEmail)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	name := "Alicia"
	updated, err := svc.Update(ctx, created.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email, "email untouched by nil patch")

	email := "alicia@example.com"
	updated, err = svc.Update(ctx, created.ID, nil, &email)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUserService_UpdateToTakenEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.Update(ctx, bob.ID, nil, &taken)
	assert.ErrorIs(t, err, userdomain.ErrDuplicateEmail)
}

func TestUserService_UpdateKeepingOwnEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	alice, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	// Re-submitting the current email must not trip the uniqueness check.
	same := "alice@example.com"
	name := "Alicia"
	_, err = svc.Update(ctx, alice.ID, &name, &same)
	assert.NoError(t, err)
}

func TestUserService_GetMissing(t *testing.T) {
	svc := newUserService()

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestUserService_DeleteThenGet(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
