package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/ghuser/lendshare/pkg/database"
	"github.com/ghuser/lendshare/pkg/events"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	domainevents "github.com/ghuser/lendshare/services/item/domain/events"
	"github.com/ghuser/lendshare/services/item/domain/models"
)

var dialect = goqu.Dialect("postgres")

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given pool and
// event bus. The bus is used to publish ItemCreatedEvents after a successful
// save; a nil bus disables publishing.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

type itemRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"available"`
	OwnerID     int64  `db:"owner_id"`
	RequestID   *int64 `db:"request_id"`
}

// Create persists a new item and publishes an ItemCreatedEvent within the
// same transaction, so the event exists iff the insert committed.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO items (name, description, available, owner_id, request_id)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.Name, item.Description, item.Available, item.OwnerID, item.RequestID,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID returns the item or ErrItemNotFound.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var row itemRow
	err := r.db.Sqlx().GetContext(ctx, &row,
		`SELECT id, name, description, available, owner_id, request_id FROM items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// FindByOwnerID returns all items owned by ownerID, oldest listing first.
func (r *ItemRepository) FindByOwnerID(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	var rows []itemRow
	err := r.db.Sqlx().SelectContext(ctx, &rows,
		`SELECT id, name, description, available, owner_id, request_id FROM items
		 WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Search returns available items whose name or description contains text,
// case-insensitive. The pattern is dynamic, so the query is built with goqu.
func (r *ItemRepository) Search(ctx context.Context, text string) ([]*models.Item, error) {
	pattern := "%" + text + "%"
	query, args, err := dialect.
		From("items").
		Select("id", "name", "description", "available", "owner_id", "request_id").
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []itemRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// FindByRequestID returns items created in response to the given request.
func (r *ItemRepository) FindByRequestID(ctx context.Context, requestID int64) ([]*models.Item, error) {
	var rows []itemRow
	err := r.db.Sqlx().SelectContext(ctx, &rows,
		`SELECT id, name, description, available, owner_id, request_id FROM items
		 WHERE request_id = $1 ORDER BY id`, requestID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// FindByRequestIDIn bulk-resolves items for a set of request ids.
func (r *ItemRepository) FindByRequestIDIn(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return []*models.Item{}, nil
	}

	query, args, err := dialect.
		From("items").
		Select("id", "name", "description", "available", "owner_id", "request_id").
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []itemRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Update persists changes to an existing item.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	_, err := r.db.Sqlx().ExecContext(ctx,
		`UPDATE items SET name = $1, description = $2, available = $3 WHERE id = $4`,
		item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (r *ItemRepository) publishCreated(tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      item.ID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OccurredAt:  time.Now().UTC(),
	}
	if item.RequestID != nil {
		event.RequestID = *item.RequestID
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicItemCreated, msg)
}

func rowToItem(row itemRow) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
		OwnerID:     row.OwnerID,
		RequestID:   row.RequestID,
	}
}

func rowsToItems(rows []itemRow) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}
