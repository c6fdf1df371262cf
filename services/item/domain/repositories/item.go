package repositories

import (
	"context"

	"github.com/ghuser/lendshare/services/item/domain/models"
)

// ItemRepository is the persistence interface for catalog items.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Create persists a new item and assigns a store-generated id.
	Create(ctx context.Context, item *models.Item) error

	// GetByID returns the item or domain.ErrItemNotFound.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// FindByOwnerID returns all items owned by ownerID.
	FindByOwnerID(ctx context.Context, ownerID int64) ([]*models.Item, error)

	// Search returns available items whose name or description contains text,
	// case-insensitive. Callers must short-circuit blank text before calling.
	Search(ctx context.Context, text string) ([]*models.Item, error)

	// FindByRequestID returns items created in response to the given request.
	FindByRequestID(ctx context.Context, requestID int64) ([]*models.Item, error)

	// FindByRequestIDIn bulk-resolves items for a set of request ids.
	FindByRequestIDIn(ctx context.Context, requestIDs []int64) ([]*models.Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *models.Item) error
}

// CommentRepository is the persistence interface for item comments.
type CommentRepository interface {
	// Create persists a new comment and assigns a store-generated id.
	Create(ctx context.Context, comment *models.Comment) error

	// FindByItemID returns all comments on the item, oldest first.
	FindByItemID(ctx context.Context, itemID int64) ([]*models.Comment, error)

	// FindByItemIDIn bulk-resolves comments for a set of item ids.
	FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*models.Comment, error)
}
