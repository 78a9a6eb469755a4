// internal/acl/store_test.go
//
// Unit-tests for acl ownership checks using sqlmock.
//
// Run: go test ./internal/acl -v

package acl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/persistence"
)

const ownsQuery = `SELECT 1 FROM sites WHERE id = ? AND owner_id = ? LIMIT 1`

func TestStoreOwns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(ownsQuery)).
		WithArgs("s1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(ownsQuery)).
		WithArgs("s1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	s := NewStore(db)
	ok, err := s.Owns(context.Background(), "u1", "s1")
	if err != nil || !ok {
		t.Fatalf("owner: got %v, %v", ok, err)
	}
	ok, err = s.Owns(context.Background(), "u2", "s1")
	if err != nil || ok {
		t.Fatalf("stranger: got %v, %v", ok, err)
	}
	if ok, _ := s.Owns(context.Background(), "", "s1"); ok {
		t.Fatalf("anonymous must not own anything")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

type lookup map[string]string

func (l lookup) OwnerOf(_ context.Context, siteID string) (string, error) {
	if siteID == "broken" {
		return "", errors.New("db down")
	}
	o, ok := l[siteID]
	if !ok {
		return "", persistence.ErrNotFound
	}
	return o, nil
}

func TestByOwner(t *testing.T) {
	c := ByOwner(lookup{"s1": "u1"})
	ctx := context.Background()

	if ok, err := c.Owns(ctx, "u1", "s1"); err != nil || !ok {
		t.Fatalf("owner: got %v, %v", ok, err)
	}
	if ok, err := c.Owns(ctx, "u2", "s1"); err != nil || ok {
		t.Fatalf("stranger: got %v, %v", ok, err)
	}
	if ok, err := c.Owns(ctx, "u1", "missing"); err != nil || ok {
		t.Fatalf("missing: got %v, %v", ok, err)
	}
	if _, err := c.Owns(ctx, "u1", "broken"); err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestRequireSiteOwner(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireSiteOwner(ByOwner(lookup{"s1": "u1"}), "siteID")).
		Get("/sites/{siteID}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

	cases := []struct {
		user string
		site string
		want int
	}{
		{"", "s1", http.StatusUnauthorized},
		{"u1", "s1", http.StatusNoContent},
		{"u2", "s1", http.StatusNotFound},
		{"u1", "nope", http.StatusNotFound},
		{"u1", "broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/sites/"+tc.site, nil)
		if tc.user != "" {
			req = req.WithContext(auth.WithUser(req.Context(), auth.User{ID: tc.user}))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("user %q site %q: got %d, want %d", tc.user, tc.site, rec.Code, tc.want)
		}
	}
}
