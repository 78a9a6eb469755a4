// internal/auth/context.go
//
// Request-scoped identity.
//
// Usage
// -----
//
//	// Attach the signed-in user (done by Cookies.Middleware).
//	ctx = auth.WithUser(ctx, auth.User{ID: "u_123", Email: "a@b.c"})
//
//	// Downstream code retrieves the ID.
//	id, ok := auth.UserID(ctx)   // "u_123", true
//
// Notes
// -----
//   - The user id is the identity provider's opaque string id.  The builder
//     never stores passwords or profiles.
//   - Oxford commas, two spaces after periods.
package auth

import "context"

// User is the signed-in identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// userKey is unexported to avoid context-key collisions.
type userKey struct{}

// WithUser returns a new context carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromContext returns the user stored by WithUser.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok && u.ID != ""
}

// UserID extracts the user id from ctx.  It returns ("", false) if no user
// is set.
func UserID(ctx context.Context) (string, bool) {
	u, ok := FromContext(ctx)
	return u.ID, ok
}
