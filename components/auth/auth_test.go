package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/config"
	"github.com/yanizio/sitebuilder/internal/csrf"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func newRouter(t *testing.T) (http.Handler, *csrf.Tokens) {
	t.Helper()
	cookies, err := auth.NewCookies("s", secret, time.Hour)
	require.NoError(t, err)
	tokens := csrf.New(secret)

	cfg := &config.Config{}
	cfg.Auth.CallbackToken = "cb-token"

	c := &Component{}
	require.NoError(t, c.Init(component.Deps{Config: cfg, Cookies: cookies, CSRF: tokens}))
	r := chi.NewRouter()
	r.Use(cookies.Middleware)
	c.Routes(r)
	return r, tokens
}

func callback(token, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(body))
	if token != "" {
		req.Header.Set(CallbackHeader, token)
	}
	return req
}

func TestCallbackRejectsBadToken(t *testing.T) {
	h, _ := newRouter(t)
	for _, tok := range []string{"", "wrong"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, callback(tok, `{"id":"u1"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestCallbackValidatesBody(t *testing.T) {
	h, _ := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, callback("cb-token", `{"email":"a@example.com"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignInMeLogout(t *testing.T) {
	h, tokens := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, callback("cb-token", `{"id":"u1","email":"a@example.com"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var me meResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, auth.User{ID: "u1", Email: "a@example.com"}, me.User)
	assert.True(t, tokens.Verify("u1", me.CSRFToken))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, "u1", me.User.ID)

	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookies[0])
	req.Header.Set(csrf.Header, me.CSRFToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestMeRequiresSession(t *testing.T) {
	h, _ := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitRequiresCookies(t *testing.T) {
	assert.Error(t, (&Component{}).Init(component.Deps{}))
}
