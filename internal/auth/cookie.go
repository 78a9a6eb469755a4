// internal/auth/cookie.go
//
// Signed session cookie.
//
// Context
// -------
// The identity provider authenticates the user; the builder only needs to
// remember who they are between requests.  Login writes a cookie of the
// form
//
//	base64url(json{uid, email, exp}) "." base64url(HMAC_SHA256(secret, payload))
//
// and Current verifies the signature and expiry before trusting it.  There
// is no server-side session table, so any instance holding the secret can
// serve any request.
//
// Notes
// -----
//   - The payload is signed, not encrypted.  It carries nothing beyond the
//     provider id and email.
//   - Rotating the secret logs everyone out.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// DefaultTTL applies when NewCookies receives ttl <= 0.
const DefaultTTL = 7 * 24 * time.Hour

// ErrShortSecret is returned for secrets under 32 bytes.
var ErrShortSecret = errors.New("auth: cookie secret must be at least 32 bytes")

type payload struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Exp   int64  `json:"exp"`
}

// Cookies issues and verifies the session cookie.
type Cookies struct {
	name   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCookies returns a cookie codec.
func NewCookies(name string, secret []byte, ttl time.Duration) (*Cookies, error) {
	if len(secret) < 32 {
		return nil, ErrShortSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if name == "" {
		name = "builder_session"
	}
	return &Cookies{name: name, secret: secret, ttl: ttl, now: time.Now}, nil
}

// Name returns the cookie name.
func (c *Cookies) Name() string { return c.name }

// Login sets the session cookie for u.
func (c *Cookies) Login(w http.ResponseWriter, r *http.Request, u User) {
	exp := c.now().Add(c.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    c.encode(payload{UID: u.ID, Email: u.Email, Exp: exp.Unix()}),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// Logout clears the session cookie.
func (c *Cookies) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Current returns the user in a valid cookie.  ok == false when the cookie
// is missing, tampered with, or expired.
func (c *Cookies) Current(r *http.Request) (User, bool) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return User{}, false
	}
	p, ok := c.decode(ck.Value)
	if !ok || p.UID == "" || c.now().Unix() >= p.Exp {
		return User{}, false
	}
	return User{ID: p.UID, Email: p.Email}, true
}

func (c *Cookies) encode(p payload) string {
	raw, _ := json.Marshal(p)
	body := base64.RawURLEncoding.EncodeToString(raw)
	return body + "." + base64.RawURLEncoding.EncodeToString(c.sign(body))
}

func (c *Cookies) decode(v string) (payload, bool) {
	i := strings.LastIndexByte(v, '.')
	if i <= 0 {
		return payload{}, false
	}
	body, sig := v[:i], v[i+1:]
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, c.sign(body)) {
		return payload{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return payload{}, false
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return payload{}, false
	}
	return p, true
}

func (c *Cookies) sign(body string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(body))
	return mac.Sum(nil)
}
