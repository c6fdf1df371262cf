package services

import (
	"context"
	"fmt"
	"time"

	itemmodels "github.com/ghuser/lendshare/services/item/domain/models"
	itemrepos "github.com/ghuser/lendshare/services/item/domain/repositories"
	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	"github.com/ghuser/lendshare/services/request/domain/models"
	"github.com/ghuser/lendshare/services/request/domain/repositories"
	userrepos "github.com/ghuser/lendshare/services/user/domain/repositories"
)

// RequestView is an item request enriched with the catalog items created
// against it. Assembled at read time, never persisted.
type RequestView struct {
	Request *models.ItemRequest
	Items   []*itemmodels.Item
}

// RequestService orchestrates the item request board.
type RequestService struct {
	repo  repositories.RequestRepository
	users userrepos.UserRepository
	items itemrepos.ItemRepository
}

// NewRequestService returns a RequestService wired with the given repositories.
func NewRequestService(
	repo repositories.RequestRepository,
	users userrepos.UserRepository,
	items itemrepos.ItemRepository,
) *RequestService {
	return &RequestService{repo: repo, users: users, items: items}
}

// Create persists a new request with a server-assigned creation timestamp.
func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &models.ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return req, nil
}

// GetUserRequests returns the user's requests, newest first, each enriched
// with the items created against it.
func (s *RequestService) GetUserRequests(ctx context.Context, requesterID int64) ([]RequestView, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return s.enrich(ctx, requests)
}

// GetAll returns a page of requests not created by callerID, newest first.
// The page index is from/size, matching the upstream pagination contract.
func (s *RequestService) GetAll(ctx context.Context, callerID int64, from, size int) ([]RequestView, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	if from < 0 || size <= 0 {
		return nil, requestdomain.ErrInvalidPagination
	}

	page := repositories.Page{
		Limit:  size,
		Offset: (from / size) * size,
	}
	requests, err := s.repo.FindByOtherRequesters(ctx, callerID, page)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return s.enrich(ctx, requests)
}

// GetByID returns a single request enriched with its associated items.
func (s *RequestService) GetByID(ctx context.Context, id, callerID int64) (*RequestView, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByRequestID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve items: %w", err)
	}
	return &RequestView{Request: req, Items: items}, nil
}

// enrich bulk-resolves associated items for a batch of requests with a single
// lookup instead of one query per request.
func (s *RequestService) enrich(ctx context.Context, requests []*models.ItemRequest) ([]RequestView, error) {
	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	byRequest := make(map[int64][]*itemmodels.Item)
	if len(ids) > 0 {
		items, err := s.items.FindByRequestIDIn(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve items: %w", err)
		}
		for _, item := range items {
			if item.RequestID != nil {
				byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
			}
		}
	}

	views := make([]RequestView, len(requests))
	for i, req := range requests {
		items := byRequest[req.ID]
		if items == nil {
			items = []*itemmodels.Item{}
		}
		views[i] = RequestView{Request: req, Items: items}
	}
	return views, nil
}
