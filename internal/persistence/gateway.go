// internal/persistence/gateway.go
//
// Persistence boundary for the editor.
//
// Context
// -------
// The editor needs four calls from storage and nothing else:
//
//	FetchPage(siteID, slug)            load one page body.
//	SavePage(pageID, body, updatedAt)  replace a page body wholesale.
//	FetchSite(siteID)                  read site metadata.
//	PublishSite(siteID)                set the publish flag and stamp.
//
// Two implementations exist.  SQLGateway reads the sites and pages tables
// (MySQL, Postgres, or SQLite).  MongoGateway reads documents written by the
// first builder, which kept one flat component list per site.  Instrument
// wraps either one with latency metrics.
//
// Errors
// ------
// A missing site or page is ErrNotFound.  Everything else is returned
// wrapped with the operation name.  Gateways never retry; the user retries
// by saving again.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/yanizio/sitebuilder/internal/document"
)

// ErrNotFound is returned for a missing site or page.
var ErrNotFound = errors.New("persistence: not found")

// Page is one stored page.
type Page struct {
	ID        string
	SiteID    string
	Slug      string
	Title     string
	Body      document.Body
	UpdatedAt time.Time
}

// Site is the metadata the editor reads.
type Site struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Domain      string     `json:"domain"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Gateway is the storage contract consumed by the editor.
type Gateway interface {
	FetchPage(ctx context.Context, siteID, slug string) (*Page, error)
	SavePage(ctx context.Context, pageID string, body document.Body, updatedAt time.Time) error
	FetchSite(ctx context.Context, siteID string) (*Site, error)
	PublishSite(ctx context.Context, siteID string) error
}
