package repositories

import (
	"context"

	"github.com/ghuser/lendshare/services/user/domain/models"
)

// UserRepository is the persistence interface for users.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Create persists a new user and assigns a store-generated id.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns the user or domain.ErrUserNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// FindAll returns all users in unspecified order.
	FindAll(ctx context.Context) ([]*models.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user record. Rows referencing the user are left in place.
	Delete(ctx context.Context, id int64) error

	// EmailTaken reports whether any user other than excludeID holds the email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}
