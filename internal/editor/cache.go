// internal/editor/cache.go
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/sitebuilder/internal/metrics"
	"github.com/yanizio/sitebuilder/internal/persistence"
)

// Static defaults.  Config overrides them through CacheOptions.
const (
	IdleTTL       = 30 * time.Minute
	MaxSessions   = 500
	EvictSchedule = "@every 5m"
)

// ErrClosed is returned by Get after Stop.
var ErrClosed = errors.New("editor: cache stopped")

// CacheOptions tunes a Cache.  Zero values fall back to the defaults above.
type CacheOptions struct {
	IdleTTL     time.Duration
	MaxSessions int
	Session     Options
}

// Cache lazily loads sessions, stores them in a sync.Map, and evicts them on
// idle TTL or LRU pressure.
type Cache struct {
	gw   persistence.Gateway
	opts CacheOptions
	log  *zap.SugaredLogger

	sfg singleflight.Group
	m   sync.Map // Key.String() → *Session

	cronMu sync.Mutex
	cron   *cron.Cron
	closed bool
}

// NewCache constructs a Cache.  Call Start to run the evictor.
func NewCache(gw persistence.Gateway, opts CacheOptions) *Cache {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = IdleTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = MaxSessions
	}
	if opts.Session.Log == nil {
		opts.Session.Log = zap.S()
	}
	return &Cache{gw: gw, opts: opts, log: opts.Session.Log}
}

// Get returns the session for key, loading it on demand.  Concurrent
// callers for the same key share one load.
func (c *Cache) Get(ctx context.Context, key Key) (*Session, error) {
	if s, ok := c.lookup(key); ok {
		return s, nil
	}
	if c.isClosed() {
		return nil, ErrClosed
	}

	// The shared load must not die with the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.sfg.Do(key.String(), func() (any, error) {
		// Double-check after singleflight barrier.
		if s, ok := c.lookup(key); ok {
			return s, nil
		}
		s := NewSession(key, c.gw, c.opts.Session)
		if err := s.Load(loadCtx); err != nil {
			metrics.SessionLoadErrorsTotal.Inc()
			return nil, err
		}
		c.m.Store(key.String(), s)
		metrics.SessionLoadTotal.Inc()
		metrics.ActiveSessions.Inc()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Peek returns a cached session without loading.
func (c *Cache) Peek(key Key) (*Session, bool) {
	v, ok := c.m.Load(key.String())
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (c *Cache) lookup(key Key) (*Session, bool) {
	s, ok := c.Peek(key)
	if ok {
		s.touch()
	}
	return s, ok
}

// DropSite removes every session that belongs to siteID.  Subscribers of
// the removed sessions receive EventClosed.
func (c *Cache) DropSite(siteID string) {
	c.m.Range(func(k, v any) bool {
		if s := v.(*Session); s.key.SiteID == siteID {
			if _, ok := c.m.LoadAndDelete(k); ok {
				c.evicted(s, "drop")
			}
		}
		return true
	})
}

// Each calls fn for every cached session.  fn must not call back into c.
func (c *Cache) Each(fn func(*Session)) {
	c.m.Range(func(_, v any) bool {
		fn(v.(*Session))
		return true
	})
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

func (c *Cache) isClosed() bool {
	c.cronMu.Lock()
	defer c.cronMu.Unlock()
	return c.closed
}

func (c *Cache) evicted(s *Session, reason string) {
	metrics.SessionEvictTotal.WithLabelValues(reason).Inc()
	metrics.ActiveSessions.Dec()
	if s.Dirty() {
		c.log.Warnw("session evicted with unsaved edits",
			"site", s.key.SiteID, "slug", s.key.Slug, "reason", reason)
	} else {
		c.log.Debugw("session evicted", "site", s.key.SiteID, "slug", s.key.Slug, "reason", reason)
	}
	s.close()
}
