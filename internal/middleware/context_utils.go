package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ContextUserID   contextKey = "user_id"
	ContextUsername contextKey = "username"
)

// UserIDFromContext returns the authenticated user's id, set by the auth
// gate. The second return is false on exempt routes.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextUserID).(string)
	if !ok || v == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func UsernameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ContextUsername).(string)
	return v
}
