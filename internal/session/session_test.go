package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			found = ck
		}
	}
	return found
}

func TestSession_CanModify(t *testing.T) {
	tests := []struct {
		name    string
		sess    *Session
		ownerID uint
		want    bool
	}{
		{"owner", &Session{UserID: 2, Username: "bob"}, 2, true},
		{"other user", &Session{UserID: 3, Username: "carol"}, 2, false},
		{"admin", &Session{UserID: 1, Username: "admin"}, 2, true},
		{"admin is case sensitive", &Session{UserID: 4, Username: "Admin"}, 2, false},
		{"anonymous", nil, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.CanModify(tt.ownerID))
		})
	}
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)

	c, rec := newContext()
	require.NoError(t, store.Save(c, Session{UserID: 7, Username: "alice"}))
	ck := cookieNamed(rec, CookieName)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)

	c2, _ := newContext(ck)
	sess, err := store.Load(c2)
	require.NoError(t, err)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
}

func TestCookieStore_RejectsForgedAndExpired(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)

	forged, err := NewCookieStore("other", time.Hour, false).sign(Session{UserID: 1, Username: "admin"}, time.Now())
	require.NoError(t, err)
	c, _ := newContext(&http.Cookie{Name: CookieName, Value: forged})
	_, err = store.Load(c)
	assert.ErrorIs(t, err, ErrNoSession)

	expired, err := store.sign(Session{UserID: 1, Username: "alice"}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	c, _ = newContext(&http.Cookie{Name: CookieName, Value: expired})
	_, err = store.Load(c)
	assert.ErrorIs(t, err, ErrNoSession)

	c, _ = newContext()
	_, err = store.Load(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCookieStore_Clear(t *testing.T) {
	store := NewCookieStore("secret", time.Hour, false)
	c, rec := newContext()
	require.NoError(t, store.Clear(c))
	ck := cookieNamed(rec, CookieName)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, time.Hour, false)

	c, rec := newContext()
	require.NoError(t, store.Save(c, Session{UserID: 3, Username: "bob"}))
	ck := cookieNamed(rec, CookieName)
	require.NotNil(t, ck)
	assert.True(t, mr.Exists(redisKeyPrefix+ck.Value))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+ck.Value))

	c2, _ := newContext(ck)
	sess, err := store.Load(c2)
	require.NoError(t, err)
	assert.Equal(t, uint(3), sess.UserID)

	c3, _ := newContext(ck)
	require.NoError(t, store.Clear(c3))
	assert.False(t, mr.Exists(redisKeyPrefix+ck.Value))

	c4, _ := newContext(ck)
	_, err = store.Load(c4)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, time.Minute, false)

	c, rec := newContext()
	require.NoError(t, store.Save(c, Session{UserID: 3, Username: "bob"}))
	ck := cookieNamed(rec, CookieName)

	mr.FastForward(2 * time.Minute)

	c2, _ := newContext(ck)
	_, err := store.Load(c2)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_RejectsNonUUIDCookie(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, time.Minute, false)

	c, _ := newContext(&http.Cookie{Name: CookieName, Value: "*"})
	_, err := store.Load(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestFlash_CarriedAcrossRedirect(t *testing.T) {
	c, rec := newContext()
	AddFlash(c, FlashSuccess, "Post deleted!")
	AddFlash(c, FlashError, "Comment is empty")
	ck := cookieNamed(rec, "flash")
	require.NotNil(t, ck)

	next, nextRec := newContext(ck)
	flashes := PopFlashes(next)
	assert.Equal(t, []Flash{
		{Category: FlashSuccess, Message: "Post deleted!"},
		{Category: FlashError, Message: "Comment is empty"},
	}, flashes)

	cleared := cookieNamed(nextRec, "flash")
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	assert.Empty(t, PopFlashes(next))
}

func TestFlash_GarbageCookieIgnored(t *testing.T) {
	c, _ := newContext(&http.Cookie{Name: "flash", Value: "%%%"})
	assert.Empty(t, PopFlashes(c))
}
