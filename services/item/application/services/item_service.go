package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/lendshare/pkg/cache"
	"github.com/ghuser/lendshare/pkg/logger"
	bookingmodels "github.com/ghuser/lendshare/services/booking/domain/models"
	bookingrepos "github.com/ghuser/lendshare/services/booking/domain/repositories"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	"github.com/ghuser/lendshare/services/item/domain/models"
	"github.com/ghuser/lendshare/services/item/domain/repositories"
	domainservices "github.com/ghuser/lendshare/services/item/domain/services"
	requestmodels "github.com/ghuser/lendshare/services/request/domain/models"
	userrepos "github.com/ghuser/lendshare/services/user/domain/repositories"
)

// CommentView is a comment with its author name resolved at read time.
type CommentView struct {
	Comment    *models.Comment
	AuthorName string
}

// BookingRef is the short booking view embedded in owner-facing item reads.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// ItemView is an item enriched with comments and, for the owner, the last
// and next approved bookings. Assembled at read time, never persisted.
type ItemView struct {
	Item        *models.Item
	Comments    []CommentView
	LastBooking *BookingRef
	NextBooking *BookingRef
}

// ItemService orchestrates the item catalog.
type ItemService struct {
	repo     repositories.ItemRepository
	comments repositories.CommentRepository
	users    userrepos.UserRepository
	requests RequestChecker
	bookings bookingrepos.BookingRepository
	cache    *cache.ItemCache
	log      logger.Logger
}

// RequestChecker is the slice of the request board the catalog needs: the
// ability to verify that a request exists before linking an item to it.
// Satisfied by the request board's RequestRepository.
type RequestChecker interface {
	GetByID(ctx context.Context, id int64) (*requestmodels.ItemRequest, error)
}

// NewItemService returns an ItemService wired with the given collaborators.
// cache may be nil; reads then always hit the repository.
func NewItemService(
	repo repositories.ItemRepository,
	comments repositories.CommentRepository,
	users userrepos.UserRepository,
	requests RequestChecker,
	bookings bookingrepos.BookingRepository,
	itemCache *cache.ItemCache,
	log logger.Logger,
) *ItemService {
	return &ItemService{
		repo:     repo,
		comments: comments,
		users:    users,
		requests: requests,
		bookings: bookings,
		cache:    itemCache,
		log:      log,
	}
}

// Create lists a new item for the owner. When requestID is set, the item is
// linked to an existing request; a dangling request id fails the creation.
func (s *ItemService) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*models.Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if requestID != nil {
		if _, err := s.requests.GetByID(ctx, *requestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := domainservices.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %s", itemdomain.ErrInvalidItem, err.Error())
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// Update applies a partial update. Only the owner may update an item; anyone
// else gets ErrAccessDenied. The cache entry is dropped on success so stale
// availability is never served.
func (s *ItemService) Update(ctx context.Context, itemID, callerID int64, name, description *string, available *bool) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, itemdomain.ErrAccessDenied
	}

	item.ApplyPatch(name, description, available)
	if err := domainservices.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %s", itemdomain.ErrInvalidItem, err.Error())
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.invalidate(ctx, itemID)
	return item, nil
}

// Get returns an item with its comments. When the caller owns the item the
// view also carries the last and next approved bookings.
func (s *ItemService) Get(ctx context.Context, itemID, callerID int64) (*ItemView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("resolve comments: %w", err)
	}
	commentViews, err := s.withAuthors(ctx, comments)
	if err != nil {
		return nil, err
	}

	view := &ItemView{Item: item, Comments: commentViews}
	if item.OwnerID == callerID {
		now := time.Now().UTC()
		last, err := s.bookings.FindLastApproved(ctx, itemID, now)
		if err != nil {
			return nil, fmt.Errorf("resolve last booking: %w", err)
		}
		next, err := s.bookings.FindNextApproved(ctx, itemID, now)
		if err != nil {
			return nil, fmt.Errorf("resolve next booking: %w", err)
		}
		view.LastBooking = toBookingRef(last)
		view.NextBooking = toBookingRef(next)
	}
	return view, nil
}

// GetUserItems returns all of the owner's items enriched with comments and
// last/next approved bookings. Comments and bookings are bulk-resolved with
// one query each instead of one pair per item.
func (s *ItemService) GetUserItems(ctx context.Context, ownerID int64) ([]ItemView, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(items) == 0 {
		return []ItemView{}, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	comments, err := s.comments.FindByItemIDIn(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve comments: %w", err)
	}
	commentViews, err := s.withAuthors(ctx, comments)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]CommentView)
	for _, cv := range commentViews {
		commentsByItem[cv.Comment.ItemID] = append(commentsByItem[cv.Comment.ItemID], cv)
	}

	now := time.Now().UTC()
	bookings, err := s.bookings.FindByItemIDIn(ctx, ids, bookingmodels.FilterAll, now)
	if err != nil {
		return nil, fmt.Errorf("resolve bookings: %w", err)
	}
	last, next := splitApproved(bookings, now)

	views := make([]ItemView, len(items))
	for i, item := range items {
		cvs := commentsByItem[item.ID]
		if cvs == nil {
			cvs = []CommentView{}
		}
		views[i] = ItemView{
			Item:        item,
			Comments:    cvs,
			LastBooking: toBookingRef(last[item.ID]),
			NextBooking: toBookingRef(next[item.ID]),
		}
	}
	return views, nil
}

// Search returns available items matching text in name or description.
// Blank text short-circuits to an empty result without touching the store.
func (s *ItemService) Search(ctx context.Context, text string) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	items, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// AddComment records post-rental feedback. Only a user who completed an
// approved booking of the item may comment; anyone else gets
// ErrCommentNotAllowed.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*CommentView, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := s.bookings.HasFinishedApproved(ctx, authorID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("check booking history: %w", err)
	}
	if !ok {
		return nil, itemdomain.ErrCommentNotAllowed
	}

	comment := &models.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	return &CommentView{Comment: comment, AuthorName: author.Name}, nil
}

// GetItemsByRequest returns items listed in response to the given request.
func (s *ItemService) GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	items, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// getItem is a read-through lookup: cache first, repository on miss, with a
// best-effort backfill. Cache failures degrade to the repository.
func (s *ItemService) getItem(ctx context.Context, itemID int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, itemID)
		if err == nil {
			return fromCachedItem(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", itemID, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, toCachedItem(item)); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", itemID, "error", err)
		}
	}
	return item, nil
}

func (s *ItemService) invalidate(ctx context.Context, itemID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, itemID); err != nil {
		s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", itemID, "error", err)
	}
}

// withAuthors resolves author names for a batch of comments, memoizing user
// lookups so each distinct author is fetched once.
func (s *ItemService) withAuthors(ctx context.Context, comments []*models.Comment) ([]CommentView, error) {
	names := make(map[int64]string)
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		name, ok := names[c.AuthorID]
		if !ok {
			author, err := s.users.GetByID(ctx, c.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("resolve comment author %d: %w", c.AuthorID, err)
			}
			name = author.Name
			names[c.AuthorID] = name
		}
		views[i] = CommentView{Comment: c, AuthorName: name}
	}
	return views, nil
}

// splitApproved buckets approved bookings per item into the most recent one
// ending at or before now and the nearest one ending after now.
func splitApproved(bookings []*bookingmodels.Booking, now time.Time) (last, next map[int64]*bookingmodels.Booking) {
	last = make(map[int64]*bookingmodels.Booking)
	next = make(map[int64]*bookingmodels.Booking)
	for _, b := range bookings {
		if b.Status != bookingmodels.StatusApproved {
			continue
		}
		if !b.End.After(now) {
			if cur := last[b.ItemID]; cur == nil || b.End.After(cur.End) {
				last[b.ItemID] = b
			}
		} else {
			if cur := next[b.ItemID]; cur == nil || b.Start.Before(cur.Start) {
				next[b.ItemID] = b
			}
		}
	}
	return last, next
}

func toBookingRef(b *bookingmodels.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, BookerID: b.BookerID}
}

func toCachedItem(item *models.Item) *cache.CachedItem {
	c := &cache.CachedItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
	}
	if item.RequestID != nil {
		c.RequestID = *item.RequestID
	}
	return c
}

func fromCachedItem(c *cache.CachedItem) *models.Item {
	item := &models.Item{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Available:   c.Available,
		OwnerID:     c.OwnerID,
	}
	if c.RequestID != 0 {
		id := c.RequestID
		item.RequestID = &id
	}
	return item
}
