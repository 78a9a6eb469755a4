package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func issue(t *testing.T, c *Cookies, u User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/", nil), u)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestNewCookiesShortSecret(t *testing.T) {
	_, err := NewCookies("s", []byte("short"), 0)
	assert.ErrorIs(t, err, ErrShortSecret)
}

func TestCookieRoundTrip(t *testing.T) {
	c, err := NewCookies("", secret, time.Hour)
	require.NoError(t, err)
	ck := issue(t, c, User{ID: "u_1", Email: "a@example.com"})
	assert.Equal(t, "builder_session", ck.Name)
	assert.True(t, ck.HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(ck)
	u, ok := c.Current(r)
	require.True(t, ok)
	assert.Equal(t, User{ID: "u_1", Email: "a@example.com"}, u)
}

func TestCookieRejectsTampering(t *testing.T) {
	c, _ := NewCookies("s", secret, time.Hour)
	ck := issue(t, c, User{ID: "u_1"})

	body, sig, _ := strings.Cut(ck.Value, ".")
	forged := *ck
	forged.Value = body + "x." + sig
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&forged)
	_, ok := c.Current(r)
	assert.False(t, ok)

	other, _ := NewCookies("s", []byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(ck)
	_, ok = other.Current(r)
	assert.False(t, ok)
}

func TestCookieExpiry(t *testing.T) {
	c, _ := NewCookies("s", secret, time.Minute)
	ck := issue(t, c, User{ID: "u_1"})

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(ck)
	_, ok := c.Current(r)
	assert.False(t, ok)
}

func TestMiddlewareAndRequire(t *testing.T) {
	c, _ := NewCookies("s", secret, time.Hour)
	h := c.Middleware(Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserID(r.Context())
		_, _ = w.Write([]byte(id))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(issue(t, c, User{ID: "u_9"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u_9", rec.Body.String())
}

func TestLogoutClears(t *testing.T) {
	c, _ := NewCookies("s", secret, time.Hour)
	rec := httptest.NewRecorder()
	c.Logout(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	ck := rec.Result().Cookies()[0]
	assert.Equal(t, "", ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}
