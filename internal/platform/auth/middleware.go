package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const accountIDKey contextKey = "account_id"

// Middleware validates the Bearer access token on each request and places the
// authenticated account id on the request context. Missing, malformed,
// expired, or wrong-type tokens fail with 401.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			accountID, err := tokens.Verify(parts[1], TokenTypeAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), accountIDKey, accountID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// AccountID returns the authenticated account id from the request context.
// The second return is false when the request did not pass Middleware.
func AccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return id, ok
}

// WithAccountID returns a context carrying the given account id. Test helper
// and internal plumbing; handlers normally rely on Middleware.
func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}
