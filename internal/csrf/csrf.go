// internal/csrf/csrf.go
//
// Stateless CSRF tokens for the JSON API.
//
// Context
// -------
// The editor UI fetches a token from GET /auth/me and echoes it in the
// X-CSRF-Token header on every unsafe request.  The token is
//
//	base64url( nonce | unixMicro | HMAC_SHA256(secret, uid | nonce | unixMicro) )
//
//   - nonce, 16 random bytes.
//   - unixMicro, issue time, 8 bytes big-endian.
//   - HMAC, bound to the user id so a token cannot be replayed by another
//     account.
//
// Verification checks the signature and that the timestamp is within
// MaxAge.  No server-side state is kept, so the scheme works unchanged
// across instances.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"time"

	"github.com/yanizio/sitebuilder/internal/auth"
)

const (
	// Header carries the token on unsafe requests.
	Header = "X-CSRF-Token"
	// MaxAge is the token validity window.
	MaxAge = 2 * time.Hour

	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig
)

// Tokens issues and verifies tokens with one secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// New returns a token codec.  secret should be at least 32 bytes.
func New(secret []byte) *Tokens {
	return &Tokens{secret: secret, now: time.Now}
}

// Generate creates a token for uid.
func (t *Tokens) Generate(uid string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(t.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, t.sign(uid, nonce, ts)...)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify returns true if tok passes HMAC and age checks for uid.
func (t *Tokens) Verify(uid, tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}
	nonce, tsBytes, sig := raw[:16], raw[16:24], raw[24:]

	// Timestamp window check; future stamps allow one minute of skew.
	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := t.now()
	if now.Sub(issued) > MaxAge || issued.Sub(now) > time.Minute {
		return false
	}
	return hmac.Equal(sig, t.sign(uid, nonce, tsBytes))
}

func (t *Tokens) sign(uid string, nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(uid))
	mac.Write([]byte{0})
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}

// Protect rejects unsafe requests whose X-CSRF-Token header does not verify
// for the current user.  Safe methods pass through.
func (t *Tokens) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		uid, _ := auth.UserID(r.Context())
		if !t.Verify(uid, r.Header.Get(Header)) {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
