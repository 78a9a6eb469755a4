// internal/site/repository.go
//
// Query helpers for the `sites` table.
//
// Every helper takes an sqlx.ExtContext so it runs against either the pool
// or a transaction.  Queries use "?" placeholders and go through Rebind for
// Postgres.  Lookups of a missing row return sql.ErrNoRows unwrapped so
// callers can errors.Is against it.
package site

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

const columns = `id, owner_id, title, slug, domain, template_id,
               is_published, published_at, created_at, updated_at`

// ByID fetches one site.
func ByID(ctx context.Context, db sqlx.ExtContext, id string) (*Record, error) {
	q := db.Rebind(`
        SELECT ` + columns + `
        FROM   sites
        WHERE  id = ?`)
	var rec Record
	if err := sqlx.GetContext(ctx, db, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByOwner returns an owner's sites, newest first.
func ListByOwner(ctx context.Context, db sqlx.ExtContext, ownerID string) ([]Record, error) {
	q := db.Rebind(`
        SELECT ` + columns + `
        FROM   sites
        WHERE  owner_id = ?
        ORDER  BY created_at DESC`)
	rows := make([]Record, 0, 4)
	if err := sqlx.SelectContext(ctx, db, &rows, q, ownerID); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByOwner returns how many sites ownerID has.
func CountByOwner(ctx context.Context, db sqlx.ExtContext, ownerID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, db, &n, db.Rebind(`SELECT COUNT(*) FROM sites WHERE owner_id = ?`), ownerID)
	return n, err
}

// LockOwner takes row locks on ownerID's sites until the transaction ends,
// so a concurrent count-then-insert for the same owner waits.  SQLite has no
// FOR UPDATE; its single writer connection serialises instead.
func LockOwner(ctx context.Context, tx *sqlx.Tx, ownerID string) error {
	if tx.DriverName() == "sqlite" {
		return nil
	}
	var ids []string
	return sqlx.SelectContext(ctx, tx, &ids,
		tx.Rebind(`SELECT id FROM sites WHERE owner_id = ? FOR UPDATE`), ownerID)
}

// OwnerOf returns the owner id of a site.
func OwnerOf(ctx context.Context, db sqlx.ExtContext, id string) (string, error) {
	var owner string
	err := sqlx.GetContext(ctx, db, &owner, db.Rebind(`SELECT owner_id FROM sites WHERE id = ?`), id)
	return owner, err
}

// DomainTaken reports whether domain is already assigned.
func DomainTaken(ctx context.Context, db sqlx.ExtContext, domain string) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, db, &n, db.Rebind(`SELECT COUNT(*) FROM sites WHERE domain = ?`), domain)
	return n > 0, err
}

// Insert writes a new site row.
func Insert(ctx context.Context, db sqlx.ExtContext, rec *Record) error {
	q := db.Rebind(`
        INSERT INTO sites (` + columns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, q,
		rec.ID, rec.OwnerID, rec.Title, rec.Slug, rec.Domain, rec.TemplateID,
		rec.IsPublished, rec.PublishedAt, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// SetPublished flips the publish flag.  Publishing stamps published_at;
// unpublishing leaves the last stamp in place.
func SetPublished(ctx context.Context, db sqlx.ExtContext, id string, published bool, at time.Time) error {
	var (
		res sql.Result
		err error
	)
	if published {
		res, err = db.ExecContext(ctx, db.Rebind(`
            UPDATE sites
            SET    is_published = ?, published_at = ?, updated_at = ?
            WHERE  id = ?`), true, at, at, id)
	} else {
		res, err = db.ExecContext(ctx, db.Rebind(`
            UPDATE sites
            SET    is_published = ?, updated_at = ?
            WHERE  id = ?`), false, at, id)
	}
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Delete removes a site row.  Pages are removed by the caller in the same
// transaction.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM sites WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
