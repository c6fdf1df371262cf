package sharer

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userIDKey contextKey = "sharer_user_id"

// ErrUserIDNotFound is returned when no caller id exists in the request context.
// Only reachable when a handler forgets to mount the Require middleware.
var ErrUserIDNotFound = errors.New("sharer user id not found in context")

// UserIDFromCtx extracts the caller-supplied user id from the request context.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok || id == 0 {
		return 0, ErrUserIDNotFound
	}
	return id, nil
}

// WithUserID returns a new context with the given caller id attached.
// Used by the Require middleware after parsing the identity header.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
