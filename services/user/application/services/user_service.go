package services

import (
	"context"
	"fmt"

	userdomain "github.com/ghuser/lendshare/services/user/domain"
	"github.com/ghuser/lendshare/services/user/domain/models"
	"github.com/ghuser/lendshare/services/user/domain/repositories"
)

// UserService orchestrates the user directory: creation with unique email,
// partial updates, lookups and deletion.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService returns a UserService wired with the given repository.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create persists a new user. Fails with ErrDuplicateEmail when any existing
// user holds the same email (exact, case-sensitive match).
func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	taken, err := s.repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, userdomain.ErrDuplicateEmail
	}

	user := &models.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Update applies only the supplied fields. A changed email is re-checked for
// uniqueness against all other users.
func (s *UserService) Update(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != user.Email {
		taken, err := s.repo.EmailTaken(ctx, *email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, userdomain.ErrDuplicateEmail
		}
	}

	user.ApplyPatch(name, email)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Get returns the user or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all users in unspecified order.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the user record. Items, bookings and comments referencing
// the user are left in place.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
