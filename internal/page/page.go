// internal/page/page.go
//
// Query helpers for the `pages` table.
//
// Context
// -------
// A page row holds one body document as JSON text:
//
//	{ "components": [ { "id", "type", "content", "style" } ] }
//
// The body is opaque here; internal/document owns its shape.  Slugs are
// normalised with routing.NormalizePageSlug before every query so "/about",
// "about", and "/about/" address the same row.
package page

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitebuilder/internal/routing"
)

// EmptyBody is written for new pages.
const EmptyBody = `{"components":[]}`

// Record mirrors one row in `pages`.
type Record struct {
	ID        string    `db:"id"`
	SiteID    string    `db:"site_id"`
	Slug      string    `db:"slug"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const columns = `id, site_id, slug, title, body, created_at, updated_at`

// BySiteSlug fetches one page.
func BySiteSlug(ctx context.Context, db sqlx.ExtContext, siteID, slug string) (*Record, error) {
	q := db.Rebind(`
        SELECT ` + columns + `
        FROM   pages
        WHERE  site_id = ? AND slug = ?`)
	var rec Record
	if err := sqlx.GetContext(ctx, db, &rec, q, siteID, routing.NormalizePageSlug(slug)); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListBySite returns a site's pages ordered by slug, bodies included.
func ListBySite(ctx context.Context, db sqlx.ExtContext, siteID string) ([]Record, error) {
	q := db.Rebind(`
        SELECT ` + columns + `
        FROM   pages
        WHERE  site_id = ?
        ORDER  BY slug`)
	rows := make([]Record, 0, 4)
	if err := sqlx.SelectContext(ctx, db, &rows, q, siteID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert writes a new page row.  An empty Body becomes EmptyBody.
func Insert(ctx context.Context, db sqlx.ExtContext, rec *Record) error {
	if rec.Body == "" {
		rec.Body = EmptyBody
	}
	rec.Slug = routing.NormalizePageSlug(rec.Slug)
	q := db.Rebind(`
        INSERT INTO pages (` + columns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, q,
		rec.ID, rec.SiteID, rec.Slug, rec.Title, rec.Body, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// SaveBody replaces a page body wholesale.
func SaveBody(ctx context.Context, db sqlx.ExtContext, pageID, body string, updatedAt time.Time) error {
	res, err := db.ExecContext(ctx, db.Rebind(`
        UPDATE pages
        SET    body = ?, updated_at = ?
        WHERE  id = ?`), body, updatedAt, pageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteBySite removes every page of a site.
func DeleteBySite(ctx context.Context, db sqlx.ExtContext, siteID string) error {
	_, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM pages WHERE site_id = ?`), siteID)
	return err
}
