package session

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/brand/models"
	"kredita/internal/platform/config"
	"kredita/internal/platform/metrics"
	"kredita/pkg/requestcontext"
)

func newTestStore(t *testing.T, secure bool) (*Store, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	cfg := config.Session{
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: "__session",
		Secure:     secure,
	}
	return NewStore(cfg, "/register", slog.New(slog.DiscardHandler), m), m
}

// carryCookies copies the cookies set on rec onto a fresh request.
func carryCookies(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestStoreCreateAndRead(t *testing.T) {
	store, m := newTestStore(t, true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	require.NoError(t, store.Create(rec, req, "Jane Doe", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "__session", c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreated))

	identity, ok := store.Identity(carryCookies(rec, "/verified"))
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", identity)
}

func TestStoreCreateKeepsBrand(t *testing.T) {
	store, _ := newTestStore(t, false)
	set := models.Set{Brand: models.Brand{UUID: "b-1", Name: "Acme"}, APIKey: "brand-key"}

	rec := httptest.NewRecorder()
	require.NoError(t, store.Commit(rec, httptest.NewRequest(http.MethodGet, "/register", nil), Data{Brand: &set}))

	rec2 := httptest.NewRecorder()
	require.NoError(t, store.Create(rec2, carryCookies(rec, "/register"), "Jane Doe", nil))

	d := store.Read(carryCookies(rec2, "/verified"))
	assert.Equal(t, "Jane Doe", d.Identity)
	require.NotNil(t, d.Brand)
	assert.Equal(t, "Acme", d.Brand.Brand.Name)
}

func TestStoreRequire(t *testing.T) {
	store, _ := newTestStore(t, false)

	t.Run("without a session redirects to register keeping the query", func(t *testing.T) {
		g := store.Require(httptest.NewRequest(http.MethodGet, "/verified?brand=b-1", nil))
		assert.False(t, g.OK())
		assert.Equal(t, "/register?brand=b-1", g.RedirectTo)
	})

	t.Run("brand-only session is not verified", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, store.Commit(rec, httptest.NewRequest(http.MethodGet, "/", nil), Data{
			Brand: &models.Set{Brand: models.Default()},
		}))
		g := store.Require(carryCookies(rec, "/verified"))
		assert.False(t, g.OK())
		assert.Equal(t, "/register", g.RedirectTo)
	})

	t.Run("with a session yields the identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, store.Create(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Jane Doe", nil))
		g := store.Require(carryCookies(rec, "/verified"))
		assert.True(t, g.OK())
		assert.Equal(t, "Jane Doe", g.Identity)
	})
}

func TestStoreExpiredCookieIsIgnored(t *testing.T) {
	store, _ := newTestStore(t, false)

	past := time.Now().Add(-2 * time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestcontext.WithTime(req.Context(), past))
	rec := httptest.NewRecorder()
	require.NoError(t, store.Create(rec, req, "Jane Doe", nil))

	_, ok := store.Identity(carryCookies(rec, "/verified"))
	assert.False(t, ok)
}

func TestStoreDestroy(t *testing.T) {
	store, m := newTestStore(t, false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Create(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Jane Doe", nil))

	out := httptest.NewRecorder()
	store.Destroy(out, carryCookies(rec, "/verified"))

	cookies := out.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "__session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsDestroyed))
}
