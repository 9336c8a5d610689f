package middleware

import (
	"errors"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoadSession resolves the viewer from the session store on every request.
// Requests without a valid session continue anonymously.
func LoadSession(store session.Store, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := store.Load(c)
			switch {
			case err == nil:
				c.Set(session.ContextKey, sess)
			case !errors.Is(err, session.ErrNoSession):
				log.Warn("session lookup failed", zap.Error(err))
			}
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous page requests to /login, flashing message when set
func RequireLogin(message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromContext(c) == nil {
				if message != "" {
					session.AddFlash(c, session.FlashError, message)
				}
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// RequireLoginJSON rejects anonymous API requests with 403
func RequireLoginJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromContext(c) == nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Not logged in"})
			}
			return next(c)
		}
	}
}

// RequireAdmin sends non-admin viewers back to the feed
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.FromContext(c).IsAdmin() {
				session.AddFlash(c, session.FlashError, "Access denied. Admin only.")
				return c.Redirect(http.StatusFound, "/feed")
			}
			return next(c)
		}
	}
}
