// Package memory provides a map-backed request repository used by service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	"github.com/ghuser/lendshare/services/request/domain/models"
	"github.com/ghuser/lendshare/services/request/domain/repositories"
)

// RequestRepository is an in-memory repositories.RequestRepository.
type RequestRepository struct {
	mu       sync.RWMutex
	requests map[int64]models.ItemRequest
	nextID   int64
}

// NewRequestRepository returns an empty in-memory request store.
func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[int64]models.ItemRequest), nextID: 1}
}

func (r *RequestRepository) Create(_ context.Context, req *models.ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.nextID
	r.nextID++
	r.requests[req.ID] = *req
	return nil
}

func (r *RequestRepository) GetByID(_ context.Context, id int64) (*models.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, requestdomain.ErrRequestNotFound
	}
	return &req, nil
}

func (r *RequestRepository) FindByRequesterID(_ context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(req models.ItemRequest) bool {
		return req.RequesterID == requesterID
	}), nil
}

func (r *RequestRepository) FindByOtherRequesters(_ context.Context, userID int64, page repositories.Page) ([]*models.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.collect(func(req models.ItemRequest) bool {
		return req.RequesterID != userID
	})

	if page.Offset >= len(all) {
		return []*models.ItemRequest{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset:end], nil
}

// collect returns matching requests ordered newest first.
func (r *RequestRepository) collect(match func(models.ItemRequest) bool) []*models.ItemRequest {
	out := make([]*models.ItemRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			req := req
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Created.After(out[j].Created)
	})
	return out
}
