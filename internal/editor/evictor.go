// evictor.go houses the eviction schedule for Cache.  On every tick of the
// cron schedule it scans the map and removes:
//
//   - clean sessions idle longer than IdleTTL that no feed is watching
//   - least-recently-used sessions while the map holds more than
//     MaxSessions, taking clean unwatched ones first, then watched ones,
//     and dirty ones only when nothing else is left
//
// Dirty or watched sessions are never idle-evicted.  Each eviction is
// logged, updates Prometheus counters, and sends EventClosed to the
// session's subscribers.
package editor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
)

// Start runs Evict on schedule (robfig/cron syntax, "@every 5m" when
// empty).
func (c *Cache) Start(schedule string) error {
	if schedule == "" {
		schedule = EvictSchedule
	}
	c.cronMu.Lock()
	defer c.cronMu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.cron != nil {
		return nil
	}
	cr := cron.New()
	if _, err := cr.AddFunc(schedule, func() { c.Evict(time.Now()) }); err != nil {
		return fmt.Errorf("evict schedule %q: %w", schedule, err)
	}
	cr.Start()
	c.cron = cr
	return nil
}

// Stop halts the schedule and refuses further loads.  The returned context
// is done once a running eviction pass has finished.
func (c *Cache) Stop() context.Context {
	c.cronMu.Lock()
	defer c.cronMu.Unlock()
	c.closed = true
	if c.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return c.cron.Stop()
}

// Evict runs one idle pass and one LRU pass as of now.  It returns the
// number of sessions removed.
func (c *Cache) Evict(now time.Time) int {
	var (
		count   int
		removed int
	)

	// ----------------------------------------------------------------
	// Idle eviction pass
	// ----------------------------------------------------------------
	c.m.Range(func(key, value any) bool {
		count++
		s := value.(*Session)
		idle := now.Sub(s.LastSeen())
		if idle > c.opts.IdleTTL && !s.Dirty() && s.Subscribers() == 0 {
			if _, ok := c.m.LoadAndDelete(key); ok {
				removed++
				c.evicted(s, "idle")
				c.log.Infow("session evicted after idle", "key", key, "idle", idle.Truncate(time.Second))
			}
		}
		return true
	})
	count -= removed

	// ----------------------------------------------------------------
	// LRU eviction pass
	// ----------------------------------------------------------------
	if c.opts.MaxSessions > 0 && count > c.opts.MaxSessions {
		type kv struct {
			key  string
			rank int // 0 clean, 1 watched, 2 dirty
			at   time.Time
		}
		var all []kv
		c.m.Range(func(key, value any) bool {
			s := value.(*Session)
			e := kv{key: key.(string), at: s.LastSeen()}
			switch {
			case s.Dirty():
				e.rank = 2
			case s.Subscribers() > 0:
				e.rank = 1
			}
			all = append(all, e)
			return true
		})
		sort.Slice(all, func(i, j int) bool {
			if all[i].rank != all[j].rank {
				return all[i].rank < all[j].rank
			}
			return all[i].at.Before(all[j].at)
		})
		for i := 0; i < len(all)-c.opts.MaxSessions; i++ {
			if v, ok := c.m.LoadAndDelete(all[i].key); ok {
				removed++
				c.evicted(v.(*Session), "lru")
			}
		}
	}
	return removed
}
