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
	bookingdomain "github.com/ghuser/lendshare/services/booking/domain"
	domainevents "github.com/ghuser/lendshare/services/booking/domain/events"
	"github.com/ghuser/lendshare/services/booking/domain/models"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
)

var dialect = goqu.Dialect("postgres")

const bookingColumns = `id, start_date, end_date, item_id, booker_id, status`

// BookingRepository implements repositories.BookingRepository against
// PostgreSQL. Lifecycle events are published in the same transaction as the
// writes that produce them.
type BookingRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewBookingRepository returns a BookingRepository backed by the given pool
// and event bus. A nil bus disables publishing.
func NewBookingRepository(db *database.Database, bus *events.EventBus) *BookingRepository {
	return &BookingRepository{db: db, bus: bus}
}

type bookingRow struct {
	ID       int64     `db:"id"`
	Start    time.Time `db:"start_date"`
	End      time.Time `db:"end_date"`
	ItemID   int64     `db:"item_id"`
	BookerID int64     `db:"booker_id"`
	Status   string    `db:"status"`
}

// Create persists a new booking. The item row is locked with
// SELECT ... FOR UPDATE and availability re-checked inside the transaction,
// so two concurrent bookings of a just-flipped item cannot both commit.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var available bool
		err := tx.QueryRowContext(ctx,
			`SELECT available FROM items WHERE id = $1 FOR UPDATE`, booking.ItemID,
		).Scan(&available)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return itemdomain.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		if !available {
			return bookingdomain.ErrItemUnavailable
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			booking.Start, booking.End, booking.ItemID, booking.BookerID, string(booking.Status),
		).Scan(&booking.ID)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, booking); err != nil {
				return fmt.Errorf("publish booking created: %w", err)
			}
		}
		return nil
	})
}

// GetByID returns the booking or ErrBookingNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var row bookingRow
	err := r.db.Sqlx().GetContext(ctx, &row,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingdomain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return rowToBooking(row), nil
}

// UpdateStatus persists a status transition and publishes the decision event
// in the same transaction.
func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *models.Booking) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE bookings SET status = $1 WHERE id = $2`,
			string(booking.Status), booking.ID)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return bookingdomain.ErrBookingNotFound
		}

		if r.bus != nil && booking.Status != models.StatusWaiting {
			if err := r.publishDecided(tx, booking); err != nil {
				return fmt.Errorf("publish booking decided: %w", err)
			}
		}
		return nil
	})
}

// FindByBookerID returns the booker's bookings matching filter, start descending.
func (r *BookingRepository) FindByBookerID(ctx context.Context, bookerID int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error) {
	return r.findFiltered(ctx, goqu.C("booker_id").Eq(bookerID), filter, now)
}

// FindByItemIDIn returns bookings of any of the items matching filter, start descending.
func (r *BookingRepository) FindByItemIDIn(ctx context.Context, itemIDs []int64, filter models.StateFilter, now time.Time) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return []*models.Booking{}, nil
	}
	return r.findFiltered(ctx, goqu.C("item_id").In(itemIDs), filter, now)
}

// FindLastApproved returns the most recent APPROVED booking of the item with
// end <= now, or nil when none exists.
func (r *BookingRepository) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return r.findOne(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE item_id = $1 AND status = $2 AND end_date <= $3
		 ORDER BY end_date DESC LIMIT 1`,
		itemID, string(models.StatusApproved), now)
}

// FindNextApproved returns the nearest APPROVED booking of the item with
// end > now, or nil when none exists.
func (r *BookingRepository) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return r.findOne(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE item_id = $1 AND status = $2 AND end_date > $3
		 ORDER BY start_date ASC LIMIT 1`,
		itemID, string(models.StatusApproved), now)
}

// HasFinishedApproved reports whether bookerID holds an APPROVED booking of
// itemID whose end lies strictly before now.
func (r *BookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists bool
	err := r.db.Sqlx().GetContext(ctx, &exists,
		`SELECT EXISTS (
		   SELECT 1 FROM bookings
		   WHERE booker_id = $1 AND item_id = $2 AND status = $3 AND end_date < $4
		 )`,
		bookerID, itemID, string(models.StatusApproved), now)
	if err != nil {
		return false, fmt.Errorf("check booking history: %w", err)
	}
	return exists, nil
}

// findFiltered builds the scoped list query with goqu: the state filter is
// dynamic, so the WHERE clause varies per call.
func (r *BookingRepository) findFiltered(ctx context.Context, scope goqu.Expression, filter models.StateFilter, now time.Time) ([]*models.Booking, error) {
	ds := dialect.
		From("bookings").
		Select("id", "start_date", "end_date", "item_id", "booker_id", "status").
		Where(scope).
		Order(goqu.C("start_date").Desc())

	switch filter {
	case models.FilterCurrent:
		ds = ds.Where(goqu.C("start_date").Lte(now), goqu.C("end_date").Gte(now))
	case models.FilterPast:
		ds = ds.Where(goqu.C("end_date").Lt(now))
	case models.FilterFuture:
		ds = ds.Where(goqu.C("start_date").Gt(now))
	case models.FilterWaiting:
		ds = ds.Where(goqu.C("status").Eq(string(models.StatusWaiting)))
	case models.FilterRejected:
		ds = ds.Where(goqu.C("status").Eq(string(models.StatusRejected)))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []bookingRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	bookings := make([]*models.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = rowToBooking(row)
	}
	return bookings, nil
}

func (r *BookingRepository) findOne(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	var row bookingRow
	err := r.db.Sqlx().GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return rowToBooking(row), nil
}

func (r *BookingRepository) publishCreated(tx *sql.Tx, booking *models.Booking) error {
	event := domainevents.BookingCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		BookerID:   booking.BookerID,
		Start:      booking.Start,
		End:        booking.End,
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicBookingCreated, event.EventID, event)
}

func (r *BookingRepository) publishDecided(tx *sql.Tx, booking *models.Booking) error {
	event := domainevents.BookingDecidedEvent{
		EventID:    uuid.New(),
		Version:    1,
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		BookerID:   booking.BookerID,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicBookingDecided, event.EventID, event)
}

func (r *BookingRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func rowToBooking(row bookingRow) *models.Booking {
	return &models.Booking{
		ID:       row.ID,
		Start:    row.Start,
		End:      row.End,
		ItemID:   row.ItemID,
		BookerID: row.BookerID,
		Status:   models.Status(row.Status),
	}
}
