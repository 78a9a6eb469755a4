// components/auth/auth.go
//
// Authentication component: identity-provider callback and session info.
//
// Context
// -------
// Users sign in with the external identity provider.  Its backend calls
// POST /auth/callback with the shared callback token and the verified
// identity; the builder answers with a signed session cookie.  The browser
// then reads GET /auth/me for its user and CSRF token.
//
//	POST /auth/callback   X-Callback-Token, {id, email}
//	GET  /auth/me         {user, csrfToken}
//	POST /auth/logout     clears the cookie
//
// Notes
// -----
//   - The callback token is compared in constant time.
//   - Oxford commas, two spaces after periods.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/httpx"
)

// CallbackHeader carries the shared callback token.
const CallbackHeader = "X-Callback-Token"

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component handles sign-in and sign-out.
type Component struct {
	cookies  *auth.Cookies
	csrf     *csrf.Tokens
	callback []byte
	log      *zap.SugaredLogger
}

type callbackRequest struct {
	ID    string `json:"id"    validate:"required,max=128"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

type meResponse struct {
	User      auth.User `json:"user"`
	CSRFToken string    `json:"csrfToken"`
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Init captures the cookie issuer and callback token.
func (c *Component) Init(d component.Deps) error {
	if d.Cookies == nil || d.CSRF == nil {
		return errors.New("auth: cookies and csrf are required")
	}
	c.cookies, c.csrf = d.Cookies, d.CSRF
	if d.Config != nil {
		c.callback = []byte(d.Config.Auth.CallbackToken)
	}
	c.log = d.Log
	if c.log == nil {
		c.log = zap.S()
	}
	return nil
}

// Routes registers the /auth endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/auth/callback", c.handleCallback)

	r.Group(func(r chi.Router) {
		r.Use(auth.Require, c.csrf.Protect)
		r.Get("/auth/me", c.handleMe)
		r.Post("/auth/logout", c.handleLogout)
	})
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleCallback(w http.ResponseWriter, r *http.Request) {
	got := []byte(r.Header.Get(CallbackHeader))
	if len(c.callback) == 0 || subtle.ConstantTimeCompare(got, c.callback) != 1 {
		c.log.Warnw("auth callback rejected", "remote", r.RemoteAddr)
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.Response{Error: "invalid callback token"})
		return
	}

	var req callbackRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u := auth.User{ID: req.ID, Email: req.Email}
	c.cookies.Login(w, r, u)
	c.log.Infow("user signed in", "user", u.ID)
	c.writeMe(w, r, u)
}

func (c *Component) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.FromContext(r.Context())
	c.writeMe(w, r, u)
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	c.cookies.Logout(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) writeMe(w http.ResponseWriter, r *http.Request, u auth.User) {
	tok, err := c.csrf.Generate(u.ID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meResponse{User: u, CSRFToken: tok})
}
