package auth

import (
	"context"

	"github.com/RobertLib/todo-api/apperror"
)

// contextKey is a private type for context keys, so no other package can
// collide with them.
type contextKey string

const userIDKey contextKey = "userID"

// NewContextWithUserID returns a child context carrying the authenticated
// user's id.
func NewContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user id set by the JWT
// middleware. The second return value is false when no id is present.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// RequireAuth treats an absent, zero or negative user id as an
// authentication failure. Services call it first on every operation, so the
// check does not depend on the middleware being mounted.
func RequireAuth(userID int) error {
	if userID <= 0 {
		return apperror.NewAuthError("Authentication required", nil)
	}
	return nil
}
