package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/router"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/casual-cat/instamini-project/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testApp struct {
	e       *echo.Echo
	db      *gorm.DB
	fs      afero.Fs
	metrics *metrics.Metrics
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithLimit(t, 0)
}

func newTestAppWithLimit(t *testing.T, authRateLimit float64) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	fs := afero.NewMemMapFs()
	store, err := media.NewStore(fs, "uploads", zap.NewNop())
	require.NoError(t, err)
	m := metrics.New()

	e, err := router.New(router.Dependencies{
		DB:            db,
		Sessions:      session.NewCookieStore("test-secret", time.Hour, false),
		Words:         filter.NewWordSet("bad", "slur"),
		Media:         store,
		Metrics:       m,
		Log:           zap.NewNop(),
		AuthRateLimit: authRateLimit,
	})
	require.NoError(t, err)
	return &testApp{e: e, db: db, fs: fs, metrics: m}
}

// browser keeps cookies between requests like a user agent would
type browser struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) browser(t *testing.T) *browser {
	return &browser{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, ck := range b.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	rec := httptest.NewRecorder()
	b.app.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, "")
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, strings.NewReader(form.Encode()), echo.MIMEApplicationForm)
}

// postMultipart sends fields plus one file under fileField when filename is set
func (b *browser) postMultipart(path string, fields map[string]string, fileField, filename string, data []byte) *httptest.ResponseRecorder {
	b.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(b.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(b.t, err)
		_, err = part.Write(data)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, w.Close())
	return b.do(http.MethodPost, path, &buf, w.FormDataContentType())
}

// login creates username with password "password" unless it exists, then signs in
func (b *browser) login(username string) {
	b.t.Helper()
	var count int64
	b.app.db.Table("users").Where("username = ?", username).Count(&count)
	if count == 0 {
		testutil.CreateUser(b.t, b.app.db, username)
	}
	rec := b.postForm("/login", url.Values{"username": {username}, "password": {"password"}})
	require.Equal(b.t, http.StatusFound, rec.Code)
	require.Equal(b.t, "/feed", rec.Header().Get(echo.HeaderLocation))
	b.flashes()
}

// flashes returns and discards messages queued for the next page
func (b *browser) flashes() []string {
	b.t.Helper()
	ck, ok := b.cookies["flash"]
	if !ok {
		return nil
	}
	delete(b.cookies, "flash")
	data, err := base64.RawURLEncoding.DecodeString(ck.Value)
	require.NoError(b.t, err)
	var flashes []session.Flash
	require.NoError(b.t, json.Unmarshal(data, &flashes))
	msgs := make([]string, len(flashes))
	for i, f := range flashes {
		msgs[i] = f.Message
	}
	return msgs
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
