package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rec := b.get("/signup")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = b.postForm("/signup", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"Sign-up successful! Please log in."}, b.flashes())

	var user models.User
	require.NoError(t, app.db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestSignup_Rejections(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	require.Equal(t, http.StatusFound, b.postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw"}}).Code)
	b.flashes()

	rec := b.postForm("/signup", url.Values{"username": {"alice"}, "password": {"other"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists!")

	rec = b.postForm("/signup", url.Values{"username": {"the_bad_guy"}, "password": {"pw"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"Offensive/slur in username. Please choose another."}, b.flashes())

	// embedded in a longer token is not a match
	rec = b.postForm("/signup", url.Values{"username": {"badminton"}, "password": {"pw"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	b.flashes()

	rec = b.postForm("/signup", url.Values{"username": {"carol"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password are required.")

	for _, name := range []string{"x?y", "a/b", "c#d", "50%"} {
		rec = b.postForm("/signup", url.Values{"username": {name}, "password": {"pw"}})
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "Usernames may only contain letters, digits", name)
	}

	var count int64
	app.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	rec := b.get("/")
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = b.postForm("/login", url.Values{"username": {"ghost"}, "password": {"password"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password!")

	b.login("alice")

	rec = b.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Contains(t, rec.Body.String(), "Invalid username or password!")

	rec = b.get("/")
	assert.Equal(t, "/feed", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, http.StatusOK, b.get("/feed").Code)

	rec = b.get("/logout")
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"Logged out"}, b.flashes())

	rec = b.get("/feed")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogin_WelcomeFlashRendered(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.login("alice")

	rec := b.postForm("/login", url.Values{"username": {"alice"}, "password": {"password"}})
	require.Equal(t, http.StatusFound, rec.Code)
	page := b.get("/feed")
	assert.Contains(t, page.Body.String(), "Welcome back!")
	assert.Empty(t, b.flashes())
}

func TestLogin_RateLimited(t *testing.T) {
	app := newTestAppWithLimit(t, 1)
	b := app.browser(t)

	codes := map[int]int{}
	for i := 0; i < 3; i++ {
		rec := b.postForm("/login", url.Values{"username": {"x"}, "password": {"y"}})
		codes[rec.Code]++
	}
	assert.GreaterOrEqual(t, codes[http.StatusTooManyRequests], 1)
	assert.Equal(t, http.StatusOK, b.get("/login").Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	rec := app.browser(t).get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
