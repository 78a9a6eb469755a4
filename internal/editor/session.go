// internal/editor/session.go
//
// Editor session: all state of one open page editor.
//
// Context
// -------
// A Session bundles the page document, the selection, the drag engine, the
// customization panel, the preview-mode flag, and the site metadata for one
// (site, page) pair.  HTTP handlers and the websocket feed drive it; every
// method is safe for concurrent use and serialises on one mutex, which
// gives the single-editor model the document package assumes.
//
// Persistence
// -----------
// Load and Save are the only calls that cross I/O.  Both run the gateway
// call outside the lock with a timeout, so edits keep flowing while a save
// is in flight.  Save snapshots the document at call time; edits that land
// during the save bump the revision and keep the session dirty, so the next
// save picks them up.  A failed load or save leaves the in-memory state
// exactly as it was.
//
// Change feed
// -----------
// Subscribe registers a callback that receives an Event after every state
// change: the full body on "change", the selected id on "select", and so
// on.  Callbacks run after the lock is released, in the caller's goroutine.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/metrics"
	"github.com/yanizio/sitebuilder/internal/panel"
	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/preview"
	"github.com/yanizio/sitebuilder/internal/reorder"
	"github.com/yanizio/sitebuilder/internal/routing"
	"github.com/yanizio/sitebuilder/internal/selection"
)

// DefaultSaveTimeout bounds every gateway call when Options leaves it zero.
const DefaultSaveTimeout = 15 * time.Second

var (
	// ErrReadOnly is returned by mutations while the session is in preview
	// mode.
	ErrReadOnly = errors.New("editor: session is in preview mode")
	// ErrNotLoaded is returned by Save and Publish before a page was loaded.
	ErrNotLoaded = errors.New("editor: no page loaded")
)

// Mode is edit or preview.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// Key identifies one page editor.
type Key struct {
	SiteID string
	Slug   string
}

// NewKey normalises slug.
func NewKey(siteID, slug string) Key {
	return Key{SiteID: siteID, Slug: routing.NormalizePageSlug(slug)}
}

func (k Key) String() string { return k.SiteID + k.Slug }

// Options tunes a Session.
type Options struct {
	SaveTimeout   time.Duration
	PreviewLength int
	IDs           document.IDGenerator
	Log           *zap.SugaredLogger
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	SiteID    string            `json:"siteId"`
	Slug      string            `json:"slug"`
	PageID    string            `json:"pageId"`
	PageTitle string            `json:"pageTitle"`
	Site      *persistence.Site `json:"site,omitempty"`
	Mode      Mode              `json:"mode"`
	Dirty     bool              `json:"dirty"`
	Revision  uint64            `json:"revision"`
	Selected  *string           `json:"selectedComponentId"`
	Drag      reorder.Snapshot  `json:"drag"`
	Document  document.Body     `json:"document"`
	SavedAt   *time.Time        `json:"savedAt,omitempty"`
}

// Session is one open page editor.
type Session struct {
	key  Key
	gw   persistence.Gateway
	opts Options
	log  *zap.SugaredLogger

	mu        sync.Mutex
	doc       *document.Document
	sel       selection.State
	drag      reorder.Engine
	panel     *panel.Panel
	mode      Mode
	loaded    bool
	pageID    string
	pageTitle string
	site      *persistence.Site
	rev       uint64 // bumped by every mutation
	savedRev  uint64 // rev captured by the last successful save or load
	savedAt   *time.Time

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	lastSeen atomic.Int64 // UnixNano, read by the cache evictor
}

// NewSession returns an empty, unloaded session.
func NewSession(key Key, gw persistence.Gateway, opts Options) *Session {
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = DefaultSaveTimeout
	}
	if opts.Log == nil {
		opts.Log = zap.S()
	}
	var docOpts []document.Option
	if opts.IDs != nil {
		docOpts = append(docOpts, document.WithIDGenerator(opts.IDs))
	}
	s := &Session{
		key:  key,
		gw:   gw,
		opts: opts,
		log:  opts.Log.With("site", key.SiteID, "slug", key.Slug),
		doc:  document.New(docOpts...),
		mode: ModeEdit,
		subs: map[int]func(Event){},
	}
	s.panel = panel.New(s.doc, &s.sel)
	s.touch()
	return s
}

// Key returns the session key.
func (s *Session) Key() Key { return s.key }

func (s *Session) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

// LastSeen returns the time of the most recent call.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// Dirty reports unsaved edits.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev != s.savedRev
}

/*───────────────────────────── persistence ────────────────────────────────*/

// Load fetches the page and site and swaps them in.  On any failure the
// session is left untouched.
func (s *Session) Load(ctx context.Context) error {
	s.touch()
	ctx, cancel := context.WithTimeout(ctx, s.opts.SaveTimeout)
	defer cancel()

	p, err := s.gw.FetchPage(ctx, s.key.SiteID, s.key.Slug)
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}
	site, err := s.gw.FetchSite(ctx, s.key.SiteID)
	if err != nil {
		return fmt.Errorf("load site: %w", err)
	}

	s.mu.Lock()
	if err := s.doc.ReplaceAll(p.Body.Components); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("load page %s: %w", p.ID, err)
	}
	s.drag.Cancel()
	s.loaded = true
	s.pageID, s.pageTitle, s.site = p.ID, p.Title, site
	s.rev++
	s.savedRev = s.rev
	evs := []Event{s.changeEventLocked(EventLoaded)}
	s.mu.Unlock()

	s.log.Debugw("page loaded", "page", p.ID, "components", len(p.Body.Components))
	s.emit(evs...)
	return nil
}

// Save writes the current document.  It returns ErrNotLoaded before Load.
func (s *Session) Save(ctx context.Context) error {
	s.touch()
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	body, pageID, rev := s.doc.Body(), s.pageID, s.rev
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.SaveTimeout)
	defer cancel()
	at := time.Now().UTC()
	if err := s.gw.SavePage(ctx, pageID, body, at); err != nil {
		metrics.SaveErrorsTotal.Inc()
		s.log.Warnw("page save failed", "page", pageID, "err", err)
		return fmt.Errorf("save page: %w", err)
	}
	metrics.SavesTotal.Inc()

	s.mu.Lock()
	if rev > s.savedRev {
		s.savedRev = rev
	}
	s.savedAt = &at
	ev := Event{Kind: EventSaved, Revision: rev, Dirty: s.rev != s.savedRev}
	s.mu.Unlock()

	s.emit(ev)
	return nil
}

// Publish saves, then marks the site published.
func (s *Session) Publish(ctx context.Context) error {
	if err := s.Save(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.SaveTimeout)
	defer cancel()
	if err := s.gw.PublishSite(ctx, s.key.SiteID); err != nil {
		return fmt.Errorf("publish site: %w", err)
	}
	metrics.PublishTotal.Inc()

	now := time.Now().UTC()
	s.mu.Lock()
	if s.site != nil {
		site := *s.site
		site.IsPublished, site.PublishedAt = true, &now
		s.site = &site
	}
	s.mu.Unlock()

	s.log.Infow("site published")
	s.emit(Event{Kind: EventPublished})
	return nil
}

/*───────────────────────────── snapshots ──────────────────────────────────*/

// State returns a snapshot of the session.
func (s *Session) State() Snapshot {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SiteID:    s.key.SiteID,
		Slug:      s.key.Slug,
		PageID:    s.pageID,
		PageTitle: s.pageTitle,
		Mode:      s.mode,
		Dirty:     s.rev != s.savedRev,
		Revision:  s.rev,
		Drag:      s.drag.State(),
		Document:  s.doc.Body(),
		SavedAt:   s.savedAt,
	}
	if s.site != nil {
		site := *s.site
		snap.Site = &site
	}
	if id, ok := s.sel.Current(s.doc); ok {
		snap.Selected = &id
	}
	return snap
}

// Document returns a copy of the page body.
func (s *Session) Document() document.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Body()
}

// Preview renders the read-only summaries.
func (s *Session) Preview() []preview.Summary {
	s.touch()
	return preview.Render(s.Document(), preview.Options{MaxText: s.opts.PreviewLength})
}

// PreviewHTML renders the standalone preview page.
func (s *Session) PreviewHTML() ([]byte, error) {
	s.touch()
	s.mu.Lock()
	title, published := s.pageTitle, false
	if s.site != nil {
		title, published = s.site.Title, s.site.IsPublished
	}
	body := s.doc.Body()
	s.mu.Unlock()
	return preview.HTML(title, published, body, preview.Options{MaxText: s.opts.PreviewLength})
}
