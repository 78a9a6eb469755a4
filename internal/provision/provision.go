// internal/provision/provision.go
//
// Site provisioning.
//
// Context
// -------
// Creating a site is one transaction:
//
//  1. count the owner's sites and refuse when the limit is reached,
//  2. derive a unique domain "<slug>-<owner8>.<suffix>",
//  3. insert the site row, and
//  4. insert the starter template's pages with freshly minted component
//     ids.
//
// Deleting a site removes its pages and then the site row, also in one
// transaction.  Publishing only flips the flag; the editor's publish path
// (persistence.Gateway.PublishSite) saves first and then lands here too.
//
// Notes
// -----
//   - Site and page ids are UUIDv7 strings.
//   - A SiteLimit of zero or less disables the limit.
//   - Creates serialise within the process.  On MySQL and Postgres the
//     owner's site rows are also locked FOR UPDATE before counting, so a
//     second server instance waits.  The count is checked again after the
//     insert and the transaction rolls back if it went over.
package provision

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/metrics"
	"github.com/yanizio/sitebuilder/internal/page"
	"github.com/yanizio/sitebuilder/internal/routing"
	"github.com/yanizio/sitebuilder/internal/site"
	"github.com/yanizio/sitebuilder/internal/starter"
)

const maxDomainTries = 20

var (
	// ErrNotFound is returned for a missing site.
	ErrNotFound = errors.New("provision: site not found")
	// ErrSiteLimit is matched by *LimitError.
	ErrSiteLimit = errors.New("provision: site limit reached")
	// ErrInvalid is returned for an empty title or unknown template.
	ErrInvalid = errors.New("provision: invalid request")
)

// LimitError reports the owner's limit.
type LimitError struct{ Limit int }

func (e *LimitError) Error() string {
	return fmt.Sprintf("site limit reached (%d sites)", e.Limit)
}

func (e *LimitError) Is(target error) bool { return target == ErrSiteLimit }

// Options tunes a Service.
type Options struct {
	DomainSuffix string
	SiteLimit    int
	IDs          document.IDGenerator // component ids in seeded pages
	Log          *zap.SugaredLogger
}

// CreateRequest names a new site.
type CreateRequest struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Template string `json:"template" validate:"omitempty,max=64"`
}

// Service provisions and manages sites in the SQL store.
type Service struct {
	mu    sync.Mutex // guards the count-then-insert in Create
	db    *sqlx.DB
	opts  Options
	log   *zap.SugaredLogger
	now   func() time.Time
	newID func() string
}

// New returns a Service over db.
func New(db *sqlx.DB, opts Options) *Service {
	if opts.Log == nil {
		opts.Log = zap.S()
	}
	return &Service{db: db, opts: opts, log: opts.Log, now: time.Now, newID: newID}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// Create provisions a site for ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*site.Record, error) {
	title := strings.TrimSpace(req.Title)
	if ownerID == "" || title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	tpl, err := starter.Get(req.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	seeds, err := tpl.Seed(s.opts.IDs)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", tpl.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // no-op after Commit

	if s.opts.SiteLimit > 0 {
		if err := site.LockOwner(ctx, tx, ownerID); err != nil {
			return nil, fmt.Errorf("lock sites: %w", err)
		}
		if err := s.checkLimit(ctx, tx, ownerID, s.opts.SiteLimit-1); err != nil {
			return nil, err
		}
	}

	domain, err := s.freeDomain(ctx, tx, title, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	rec := &site.Record{
		ID:         s.newID(),
		OwnerID:    ownerID,
		Title:      title,
		Slug:       routing.MakeSlug(title),
		Domain:     domain,
		TemplateID: tpl.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := site.Insert(ctx, tx, rec); err != nil {
		return nil, fmt.Errorf("insert site: %w", err)
	}
	if s.opts.SiteLimit > 0 {
		if err := s.checkLimit(ctx, tx, ownerID, s.opts.SiteLimit); err != nil {
			return nil, err
		}
	}

	for _, sp := range seeds {
		body, err := json.Marshal(sp.Body)
		if err != nil {
			return nil, err
		}
		p := &page.Record{
			ID:        s.newID(),
			SiteID:    rec.ID,
			Slug:      sp.Slug,
			Title:     sp.Title,
			Body:      string(body),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := page.Insert(ctx, tx, p); err != nil {
			return nil, fmt.Errorf("insert page %s: %w", sp.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	metrics.SitesCreatedTotal.Inc()
	s.log.Infow("site created", "site", rec.ID, "owner", ownerID, "domain", domain,
		"template", tpl.ID, "pages", len(seeds))
	return rec, nil
}

// checkLimit fails with *LimitError when ownerID has more than allowed sites.
func (s *Service) checkLimit(ctx context.Context, tx *sqlx.Tx, ownerID string, allowed int) error {
	n, err := site.CountByOwner(ctx, tx, ownerID)
	if err != nil {
		return fmt.Errorf("count sites: %w", err)
	}
	if n > allowed {
		return &LimitError{Limit: s.opts.SiteLimit}
	}
	return nil
}

// freeDomain returns the first unassigned domain for title.
func (s *Service) freeDomain(ctx context.Context, db sqlx.ExtContext, title, ownerID string) (string, error) {
	base := title
	for i := 1; i <= maxDomainTries; i++ {
		d := routing.SiteDomain(base, ownerID, s.opts.DomainSuffix)
		taken, err := site.DomainTaken(ctx, db, d)
		if err != nil {
			return "", fmt.Errorf("check domain: %w", err)
		}
		if !taken {
			return d, nil
		}
		base = title + " " + strconv.Itoa(i+1)
	}
	return "", fmt.Errorf("no free domain for %q", title)
}

// List returns ownerID's sites, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]site.Record, error) {
	return site.ListByOwner(ctx, s.db, ownerID)
}

// Get returns one site.
func (s *Service) Get(ctx context.Context, id string) (*site.Record, error) {
	rec, err := site.ByID(ctx, s.db, id)
	return rec, notFound(err)
}

// PageSummary is one row of Pages.
type PageSummary struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Components int       `json:"components"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Pages lists a site's pages.  A body that fails to parse is reported with
// -1 components rather than failing the listing.
func (s *Service) Pages(ctx context.Context, siteID string) ([]PageSummary, error) {
	rows, err := page.ListBySite(ctx, s.db, siteID)
	if err != nil {
		return nil, err
	}
	out := make([]PageSummary, 0, len(rows))
	for _, r := range rows {
		n := -1
		if b, err := document.ParseBody([]byte(r.Body)); err == nil {
			n = len(b.Components)
		}
		out = append(out, PageSummary{ID: r.ID, Slug: r.Slug, Title: r.Title, Components: n, UpdatedAt: r.UpdatedAt})
	}
	return out, nil
}

// SetPublished publishes or unpublishes a site.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) error {
	if err := site.SetPublished(ctx, s.db, id, published, s.now().UTC()); err != nil {
		return notFound(err)
	}
	if published {
		metrics.PublishTotal.Inc()
	}
	s.log.Infow("site publish state", "site", id, "published", published)
	return nil
}

// Delete removes a site and all its pages.
func (s *Service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after Commit

	if err := page.DeleteBySite(ctx, tx, id); err != nil {
		return fmt.Errorf("delete pages: %w", err)
	}
	if err := site.Delete(ctx, tx, id); err != nil {
		return notFound(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Infow("site deleted", "site", id)
	return nil
}

// Templates lists the starter templates.
func (s *Service) Templates() ([]*starter.Template, error) { return starter.List() }

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
