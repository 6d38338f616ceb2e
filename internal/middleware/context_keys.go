package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = contextKey("userID")
	isAdminKey = contextKey("isAdmin")
)

// IdempotencyKeyHeader carries the client's request id for posting deduplication.
const IdempotencyKeyHeader = "Idempotency-Key"

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx is GetUserIDFromContext for plain contexts.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// IsAdmin reports whether the authenticated user holds the admin role.
func IsAdmin(c *gin.Context) bool {
	admin, _ := c.Request.Context().Value(isAdminKey).(bool)
	return admin
}

// WithUser stores the actor id and admin flag in ctx.
func WithUser(ctx context.Context, userID string, admin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isAdminKey, admin)
}
