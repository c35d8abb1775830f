package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"focusdo/internal/cache"
	apperrors "focusdo/internal/errors"
	"focusdo/internal/model"
)

const (
	userContextKey  = "current_user"
	userCachePrefix = "user:email:"
	userCacheTTL    = 5 * time.Minute
)

// UserLookup is the slice of the user repository the middleware needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// CurrentUser resolves the verified bearer token (placed in context by the
// JWT middleware) to a stored User and stashes it for handlers. Recently
// seen users are served from the cache to keep the per-request lookup off
// MySQL. Every failure collapses to the same opaque 401.
func CurrentUser(users UserLookup, cacheClient *cache.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return unauthorized()
			}

			ctx := c.Request().Context()
			var user model.User
			if !cacheClient.GetJSON(ctx, userCachePrefix+subject, &user) {
				found, err := users.FindByEmail(ctx, subject)
				if err != nil {
					return unauthorized()
				}
				user = *found
				cacheClient.SetJSON(ctx, userCachePrefix+subject, user, userCacheTTL)
			}

			c.Set(userContextKey, &user)
			return next(c)
		}
	}
}

// MustUser returns the authenticated user stored by CurrentUser. It is only
// valid inside handlers registered behind that middleware.
func MustUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func unauthorized() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
