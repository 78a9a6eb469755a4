// internal/httpx/httpx.go
//
// JSON helpers shared by the API components, and the one place where
// domain errors become HTTP status codes.
//
// Error body
// ----------
//
//	{ "error": "index out of range", "fields": { "title": "required" } }
//
// "fields" appears only for request validation failures.  5xx responses
// never echo the underlying error; it is logged instead.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/panel"
	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/provision"
	"github.com/yanizio/sitebuilder/internal/registry"
)

// MaxBody caps request bodies.  A page document is rarely above a few
// hundred kilobytes.
const MaxBody = 4 << 20

var validate = validator.New()

// ErrBadRequest wraps malformed payloads.
var ErrBadRequest = errors.New("bad request")

// Response is the error body.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Debugw("encode response", "err", err)
	}
}

// Decode reads a JSON body into dst and validates it.  Unknown fields are
// rejected.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := validate.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			return nil // dst is not a struct; nothing to validate
		}
		return err
	}
	return nil
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	var verr validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr), errors.Is(err, ErrBadRequest),
		errors.Is(err, provision.ErrInvalid), errors.Is(err, registry.ErrUnknownType),
		errors.Is(err, document.ErrDuplicateID), errors.Is(err, document.ErrMissingID),
		errors.Is(err, document.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, panel.ErrUnknownField), errors.Is(err, panel.ErrInvalidValue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, persistence.ErrNotFound), errors.Is(err, provision.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrReadOnly), errors.Is(err, editor.ErrNotLoaded),
		errors.Is(err, provision.ErrSiteLimit):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, editor.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the error body for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	resp := Response{Error: err.Error()}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		resp.Error = "validation failed"
		resp.Fields = make(map[string]string, len(verr))
		for _, fe := range verr {
			resp.Fields[lowerFirst(fe.Field())] = fe.Tag()
		}
	}
	if status >= http.StatusInternalServerError {
		zap.S().Errorw("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		resp.Error = strings.ToLower(http.StatusText(status))
	}
	WriteJSON(w, status, resp)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
