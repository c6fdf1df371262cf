package repositories

import (
	"context"

	"github.com/ghuser/lendshare/services/request/domain/models"
)

// Page contains pagination parameters for list queries.
type Page struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// RequestRepository is the persistence interface for item requests.
type RequestRepository interface {
	// Create persists a new request and assigns a store-generated id.
	Create(ctx context.Context, req *models.ItemRequest) error

	// GetByID returns the request or domain.ErrRequestNotFound.
	GetByID(ctx context.Context, id int64) (*models.ItemRequest, error)

	// FindByRequesterID returns all requests by the user, newest first.
	FindByRequesterID(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)

	// FindByOtherRequesters returns a page of requests NOT created by userID,
	// newest first.
	FindByOtherRequesters(ctx context.Context, userID int64, page Page) ([]*models.ItemRequest, error)
}
