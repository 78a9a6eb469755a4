// internal/acl/middleware.go
//
// Chi middleware that enforces site ownership.
package acl

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/auth"
)

// RequireSiteOwner lets the request through only when the current user owns
// the site named by the chi URL parameter param.  Anonymous callers get 401;
// everyone else who does not own the site gets 404.
func RequireSiteOwner(c Checker, param string) func(http.Handler) http.Handler {
	if param == "" {
		panic("acl.RequireSiteOwner: URL parameter name must be supplied")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := auth.UserID(r.Context())
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			siteID := chi.URLParam(r, param)
			owns, err := c.Owns(r.Context(), uid, siteID)
			if err != nil {
				zap.L().Error("acl site owner", zap.String("site", siteID), zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !owns {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
