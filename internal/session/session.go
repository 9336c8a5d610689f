package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the session token
const CookieName = "session"

// ContextKey is where the loaded session is stored on the echo context
const ContextKey = "session"

// ErrNoSession is returned by Load when the request carries no usable session
var ErrNoSession = errors.New("session: no session")

// Session is the viewer identity carried across requests
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// IsAdmin reports whether the viewer is the administrative account
func (s *Session) IsAdmin() bool {
	return s != nil && s.Username == models.AdminUsername
}

// CanModify reports whether the viewer may delete or edit content owned by ownerID
func (s *Session) CanModify(ownerID uint) bool {
	if s == nil {
		return false
	}
	return s.UserID == ownerID || s.IsAdmin()
}

// Store persists sessions between requests
type Store interface {
	Save(c echo.Context, s Session) error
	Load(c echo.Context) (*Session, error)
	Clear(c echo.Context) error
}

// FromContext returns the session loaded by middleware, or nil
func FromContext(c echo.Context) *Session {
	s, _ := c.Get(ContextKey).(*Session)
	return s
}

func writeCookie(c echo.Context, value string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func expireCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
