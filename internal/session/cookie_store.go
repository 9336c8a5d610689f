package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// Claims is the signed payload of a cookie session
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CookieStore keeps the whole session in an HS256-signed cookie
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieStore creates a CookieStore signing with secret
func NewCookieStore(secret string, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (s *CookieStore) Save(c echo.Context, sess Session) error {
	token, err := s.sign(sess, time.Now())
	if err != nil {
		return err
	}
	writeCookie(c, token, s.ttl, s.secure)
	return nil
}

func (s *CookieStore) Load(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return s.parse(cookie.Value)
}

func (s *CookieStore) Clear(c echo.Context) error {
	expireCookie(c, s.secure)
	return nil
}

func (s *CookieStore) sign(sess Session, now time.Time) (string, error) {
	claims := &Claims{
		UserID:   sess.UserID,
		Username: sess.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (s *CookieStore) parse(tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	return &Session{UserID: claims.UserID, Username: claims.Username}, nil
}
