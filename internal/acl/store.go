// internal/acl/store.go
//
// Ownership checks.
//
// Context
// -------
// The builder's access model is one rule: a site, its pages, and its editor
// sessions belong to the user who created it.  Handlers need one answer:
//
//	Does user U own site S?   → Checker.Owns()
//
// Two checkers exist.  Store asks the sites table directly with a single
// parameterised query.  ByOwner adapts anything that can report a site's
// owner id (the Mongo gateway) and compares.
//
// Notes
// -----
//   - A missing site is "not owned", never an error, so handlers can answer
//     404 without revealing whether the id exists.
//   - Oxford commas, two spaces after periods.
package acl

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yanizio/sitebuilder/internal/persistence"
)

// Checker answers the ownership question.
type Checker interface {
	Owns(ctx context.Context, userID, siteID string) (bool, error)
}

// Store checks ownership against the sites table.
type Store struct {
	db *sql.DB
}

// NewStore wraps db.  Placeholders are "?", so db must be MySQL or SQLite.
// Postgres deployments use ByOwner over the SQL gateway.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Owns reports whether userID owns siteID.
func (s *Store) Owns(ctx context.Context, userID, siteID string) (bool, error) {
	if userID == "" || siteID == "" {
		return false, nil
	}
	const q = `SELECT 1
                 FROM sites
                WHERE id = ? AND owner_id = ?
                LIMIT 1`

	var dummy int
	err := s.db.QueryRowContext(ctx, q, siteID, userID).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OwnerLookup reports a site's owner id.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, siteID string) (string, error)
}

// ByOwner adapts l into a Checker.
func ByOwner(l OwnerLookup) Checker { return ownerChecker{l} }

type ownerChecker struct{ l OwnerLookup }

func (o ownerChecker) Owns(ctx context.Context, userID, siteID string) (bool, error) {
	if userID == "" || siteID == "" {
		return false, nil
	}
	owner, err := o.l.OwnerOf(ctx, siteID)
	if errors.Is(err, persistence.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}
