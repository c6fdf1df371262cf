// Package memory provides map-backed repositories used by service tests.
// Id assignment mirrors the durable store: monotonically increasing,
// assigned at insert time.
package memory

import (
	"context"
	"sync"

	userdomain "github.com/ghuser/lendshare/services/user/domain"
	"github.com/ghuser/lendshare/services/user/domain/models"
)

// UserRepository is an in-memory repositories.UserRepository.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	nextID int64
}

// NewUserRepository returns an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]models.User), nextID: 1}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		users = append(users, &u)
	}
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return userdomain.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *UserRepository) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
