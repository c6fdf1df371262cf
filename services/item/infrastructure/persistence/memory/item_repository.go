// Package memory provides map-backed item and comment repositories used by
// service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	"github.com/ghuser/lendshare/services/item/domain/models"
)

// ItemRepository is an in-memory repositories.ItemRepository.
type ItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]models.Item
	nextID int64
}

// NewItemRepository returns an empty in-memory item store.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[int64]models.Item), nextID: 1}
}

func (r *ItemRepository) Create(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return &item, nil
}

func (r *ItemRepository) FindByOwnerID(_ context.Context, ownerID int64) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item models.Item) bool {
		return item.OwnerID == ownerID
	}), nil
}

func (r *ItemRepository) Search(_ context.Context, text string) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(text)
	return r.collect(func(item models.Item) bool {
		return item.Available &&
			(strings.Contains(strings.ToLower(item.Name), needle) ||
				strings.Contains(strings.ToLower(item.Description), needle))
	}), nil
}

func (r *ItemRepository) FindByRequestID(_ context.Context, requestID int64) ([]*models.Item, error) {
	return r.FindByRequestIDIn(context.Background(), []int64{requestID})
}

func (r *ItemRepository) FindByRequestIDIn(_ context.Context, requestIDs []int64) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	return r.collect(func(item models.Item) bool {
		return item.RequestID != nil && wanted[*item.RequestID]
	}), nil
}

func (r *ItemRepository) Update(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return itemdomain.ErrItemNotFound
	}
	r.items[item.ID] = *item
	return nil
}

// collect returns matching items ordered by id ascending.
func (r *ItemRepository) collect(match func(models.Item) bool) []*models.Item {
	out := make([]*models.Item, 0)
	for _, item := range r.items {
		if match(item) {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
