package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// defaultUserID attributes mutations made without a caller identity.
const defaultUserID = "system"

// IdentityMiddleware resolves the acting user from the X-User-ID header set
// by the upstream gateway. Authentication happens outside the engine; this
// only propagates the identity for audit attribution.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = defaultUserID
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		logger := GetLoggerFromCtx(ctx).With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(ContextWithLogger(ctx, logger))

		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from a standard context.
func GetUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		return userID
	}
	return defaultUserID
}
