package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ghuser/lendshare/services/item/domain/models"
)

// CommentRepository is an in-memory repositories.CommentRepository.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[int64]models.Comment
	nextID   int64
}

// NewCommentRepository returns an empty in-memory comment store.
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int64]models.Comment), nextID: 1}
}

func (r *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) FindByItemID(_ context.Context, itemID int64) ([]*models.Comment, error) {
	return r.FindByItemIDIn(context.Background(), []int64{itemID})
}

func (r *CommentRepository) FindByItemIDIn(_ context.Context, itemIDs []int64) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	out := make([]*models.Comment, 0)
	for _, c := range r.comments {
		if wanted[c.ItemID] {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out, nil
}
