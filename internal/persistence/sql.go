// internal/persistence/sql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/page"
	"github.com/yanizio/sitebuilder/internal/site"
)

// SQLGateway stores pages and sites in a relational database.
type SQLGateway struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQL returns a gateway over db.
func NewSQL(db *sqlx.DB) *SQLGateway {
	return &SQLGateway{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (g *SQLGateway) FetchPage(ctx context.Context, siteID, slug string) (*Page, error) {
	rec, err := page.BySiteSlug(ctx, g.db, siteID, slug)
	if err != nil {
		return nil, notFound("fetch page", err)
	}
	body, err := document.ParseBody([]byte(rec.Body))
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: decode body: %w", rec.ID, err)
	}
	return &Page{
		ID:        rec.ID,
		SiteID:    rec.SiteID,
		Slug:      rec.Slug,
		Title:     rec.Title,
		Body:      body,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (g *SQLGateway) SavePage(ctx context.Context, pageID string, body document.Body, updatedAt time.Time) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("save page %s: encode body: %w", pageID, err)
	}
	if err := page.SaveBody(ctx, g.db, pageID, string(raw), updatedAt); err != nil {
		return notFound("save page", err)
	}
	return nil
}

func (g *SQLGateway) FetchSite(ctx context.Context, siteID string) (*Site, error) {
	rec, err := site.ByID(ctx, g.db, siteID)
	if err != nil {
		return nil, notFound("fetch site", err)
	}
	return &Site{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		Title:       rec.Title,
		Domain:      rec.Domain,
		IsPublished: rec.IsPublished,
		PublishedAt: rec.PublishedAt,
	}, nil
}

func (g *SQLGateway) PublishSite(ctx context.Context, siteID string) error {
	if err := site.SetPublished(ctx, g.db, siteID, true, g.now()); err != nil {
		return notFound("publish site", err)
	}
	return nil
}

// OwnerOf returns a site's owner id.
func (g *SQLGateway) OwnerOf(ctx context.Context, siteID string) (string, error) {
	owner, err := site.OwnerOf(ctx, g.db, siteID)
	if err != nil {
		return "", notFound("owner of", err)
	}
	return owner, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
