package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/registry"
)

func TestCacheSharesConcurrentLoads(t *testing.T) {
	g := newMemGateway()
	c := NewCache(g, CacheOptions{})

	var wg sync.WaitGroup
	got := make([]*Session, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := c.Get(context.Background(), NewKey("s1", "/"))
			assert.NoError(t, err)
			got[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, 1, c.Len())
	g.mu.Lock()
	assert.Equal(t, 1, g.fetches)
	g.mu.Unlock()
}

func TestCacheLoadError(t *testing.T) {
	c := NewCache(newMemGateway(), CacheOptions{})
	_, err := c.Get(context.Background(), NewKey("nope", "/"))
	assert.ErrorIs(t, err, persistence.ErrNotFound)
	assert.Equal(t, 0, c.Len())
}

func TestCacheDropSite(t *testing.T) {
	c := NewCache(newMemGateway(), CacheOptions{})
	k := NewKey("s1", "/")
	s1, err := c.Get(context.Background(), k)
	require.NoError(t, err)
	var kinds []string
	s1.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	c.DropSite("s1")
	_, ok := c.Peek(k)
	assert.False(t, ok)
	assert.Equal(t, []string{EventClosed}, kinds)

	s2, err := c.Get(context.Background(), k)
	require.NoError(t, err)
	assert.NotSame(t, s1, s2)

	c.DropSite("other")
	assert.Equal(t, 1, c.Len())
}

func TestEvictIdleSkipsDirty(t *testing.T) {
	g := newMemGateway()
	g.pages["s1/about"] = &persistence.Page{ID: "p2", SiteID: "s1", Slug: "/about", Title: "About"}
	c := NewCache(g, CacheOptions{IdleTTL: time.Minute})

	clean, err := c.Get(context.Background(), NewKey("s1", "/"))
	require.NoError(t, err)
	dirty, err := c.Get(context.Background(), NewKey("s1", "/about"))
	require.NoError(t, err)
	_, err = dirty.Add(registry.TypeText)
	require.NoError(t, err)

	n := c.Evict(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 1, n)
	_, ok := c.Peek(clean.Key())
	assert.False(t, ok)
	_, ok = c.Peek(dirty.Key())
	assert.True(t, ok)

	var seen []*Session
	c.Each(func(s *Session) { seen = append(seen, s) })
	assert.Equal(t, []*Session{dirty}, seen)
}

func TestEvictLRU(t *testing.T) {
	g := newMemGateway()
	for _, slug := range []string{"/a", "/b", "/c"} {
		g.pages["s1"+slug] = &persistence.Page{ID: "p" + slug, SiteID: "s1", Slug: slug}
	}
	c := NewCache(g, CacheOptions{MaxSessions: 2})

	ctx := context.Background()
	for _, slug := range []string{"/a", "/b", "/c"} {
		_, err := c.Get(ctx, NewKey("s1", slug))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	// Touch /a so /b becomes the oldest.
	_, err := c.Get(ctx, NewKey("s1", "/a"))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Evict(time.Now()))
	_, ok := c.Peek(NewKey("s1", "/b"))
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestEvictIdleSkipsWatched(t *testing.T) {
	c := NewCache(newMemGateway(), CacheOptions{IdleTTL: time.Minute})
	s, err := c.Get(context.Background(), NewKey("s1", "/"))
	require.NoError(t, err)
	unsubscribe := s.Subscribe(func(Event) {})

	assert.Equal(t, 0, c.Evict(time.Now().Add(2*time.Minute)))
	_, ok := c.Peek(s.Key())
	assert.True(t, ok)

	unsubscribe()
	assert.Equal(t, 1, c.Evict(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, c.Len())
}

func TestEvictLRUPrefersClean(t *testing.T) {
	g := newMemGateway()
	for _, slug := range []string{"/a", "/b", "/c"} {
		g.pages["s1"+slug] = &persistence.Page{ID: "p" + slug, SiteID: "s1", Slug: slug}
	}
	c := NewCache(g, CacheOptions{MaxSessions: 1})

	ctx := context.Background()
	var got []*Session
	for _, slug := range []string{"/a", "/b", "/c"} {
		s, err := c.Get(ctx, NewKey("s1", slug))
		require.NoError(t, err)
		got = append(got, s)
		time.Sleep(2 * time.Millisecond)
	}
	// /a is the oldest but holds edits; /b is watched.
	_, err := got[0].Add(registry.TypeText)
	require.NoError(t, err)
	got[1].Subscribe(func(Event) {})

	assert.Equal(t, 2, c.Evict(time.Now()))
	_, ok := c.Peek(NewKey("s1", "/a"))
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCacheStartStop(t *testing.T) {
	c := NewCache(newMemGateway(), CacheOptions{})
	require.Error(t, c.Start("not a schedule"))
	require.NoError(t, c.Start("@every 1h"))
	require.NoError(t, c.Start("@every 1h"))

	<-c.Stop().Done()
	_, err := c.Get(context.Background(), NewKey("s1", "/"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Start(""), ErrClosed)
}
