package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/lendshare/pkg/database"
	userdomain "github.com/ghuser/lendshare/services/user/domain"
	"github.com/ghuser/lendshare/services/user/domain/models"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given pool.
func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

// Create persists a new user and sets the store-assigned id on user.
// The unique index on email backs up the service-level check; a constraint
// violation still maps to ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.Sqlx().QueryRowxContext(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		user.Name, user.Email,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return userdomain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user or ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := r.db.Sqlx().GetContext(ctx, &row,
		`SELECT id, name, email FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

// FindAll returns all users in unspecified order.
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	var rows []userRow
	if err := r.db.Sqlx().SelectContext(ctx, &rows,
		`SELECT id, name, email FROM users`); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	users := make([]*models.User, len(rows))
	for i, row := range rows {
		users[i] = rowToUser(row)
	}
	return users, nil
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.db.Sqlx().ExecContext(ctx,
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		user.Name, user.Email, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return userdomain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes the user record. No cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Sqlx().ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// EmailTaken reports whether any user other than excludeID holds the email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.Sqlx().GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}

func rowToUser(row userRow) *models.User {
	return &models.User{ID: row.ID, Name: row.Name, Email: row.Email}
}
