package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/ghuser/lendshare/pkg/database"
	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	"github.com/ghuser/lendshare/services/request/domain/models"
	"github.com/ghuser/lendshare/services/request/domain/repositories"
)

var dialect = goqu.Dialect("postgres")

// RequestRepository implements repositories.RequestRepository against PostgreSQL.
type RequestRepository struct {
	db *database.Database
}

// NewRequestRepository returns a RequestRepository backed by the given pool.
func NewRequestRepository(db *database.Database) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestRow struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequesterID int64     `db:"requester_id"`
	Created     time.Time `db:"created"`
}

// Create persists a new request and sets the store-assigned id.
func (r *RequestRepository) Create(ctx context.Context, req *models.ItemRequest) error {
	err := r.db.Sqlx().QueryRowxContext(ctx,
		`INSERT INTO requests (description, requester_id, created) VALUES ($1, $2, $3) RETURNING id`,
		req.Description, req.RequesterID, req.Created,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID returns the request or ErrRequestNotFound.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var row requestRow
	err := r.db.Sqlx().GetContext(ctx, &row,
		`SELECT id, description, requester_id, created FROM requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, requestdomain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("query request: %w", err)
	}
	return rowToRequest(row), nil
}

// FindByRequesterID returns all requests by the user, newest first.
func (r *RequestRepository) FindByRequesterID(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	var rows []requestRow
	err := r.db.Sqlx().SelectContext(ctx, &rows,
		`SELECT id, description, requester_id, created FROM requests
		 WHERE requester_id = $1 ORDER BY created DESC`, requesterID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	return rowsToRequests(rows), nil
}

// FindByOtherRequesters returns a page of requests not created by userID,
// newest first. Pagination is dynamic, so the query is built with goqu.
func (r *RequestRepository) FindByOtherRequesters(ctx context.Context, userID int64, page repositories.Page) ([]*models.ItemRequest, error) {
	query, args, err := dialect.
		From("requests").
		Select("id", "description", "requester_id", "created").
		Where(goqu.C("requester_id").Neq(userID)).
		Order(goqu.C("created").Desc()).
		Limit(uint(page.Limit)).
		Offset(uint(page.Offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []requestRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	return rowsToRequests(rows), nil
}

func rowToRequest(row requestRow) *models.ItemRequest {
	return &models.ItemRequest{
		ID:          row.ID,
		Description: row.Description,
		RequesterID: row.RequesterID,
		Created:     row.Created,
	}
}

func rowsToRequests(rows []requestRow) []*models.ItemRequest {
	requests := make([]*models.ItemRequest, len(rows))
	for i, row := range rows {
		requests[i] = rowToRequest(row)
	}
	return requests
}
