package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/ghuser/lendshare/pkg/database"
	"github.com/ghuser/lendshare/services/item/domain/models"
)

// CommentRepository implements repositories.CommentRepository against PostgreSQL.
type CommentRepository struct {
	db *database.Database
}

// NewCommentRepository returns a CommentRepository backed by the given pool.
func NewCommentRepository(db *database.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentRow struct {
	ID       int64     `db:"id"`
	Text     string    `db:"text"`
	ItemID   int64     `db:"item_id"`
	AuthorID int64     `db:"author_id"`
	Created  time.Time `db:"created"`
}

// Create persists a new comment and sets the store-assigned id.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.Sqlx().QueryRowxContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created) VALUES ($1, $2, $3, $4) RETURNING id`,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// FindByItemID returns all comments on the item, oldest first.
func (r *CommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	var rows []commentRow
	err := r.db.Sqlx().SelectContext(ctx, &rows,
		`SELECT id, text, item_id, author_id, created FROM comments
		 WHERE item_id = $1 ORDER BY created`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	return rowsToComments(rows), nil
}

// FindByItemIDIn bulk-resolves comments for a set of item ids, oldest first.
func (r *CommentRepository) FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*models.Comment, error) {
	if len(itemIDs) == 0 {
		return []*models.Comment{}, nil
	}

	query, args, err := dialect.
		From("comments").
		Select("id", "text", "item_id", "author_id", "created").
		Where(goqu.C("item_id").In(itemIDs)).
		Order(goqu.C("created").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []commentRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	return rowsToComments(rows), nil
}

func rowsToComments(rows []commentRow) []*models.Comment {
	comments := make([]*models.Comment, len(rows))
	for i, row := range rows {
		comments[i] = &models.Comment{
			ID:       row.ID,
			Text:     row.Text,
			ItemID:   row.ItemID,
			AuthorID: row.AuthorID,
			Created:  row.Created,
		}
	}
	return comments
}
