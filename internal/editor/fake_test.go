package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/persistence"
)

var errBoom = errors.New("boom")

// memGateway is an in-memory persistence.Gateway.
type memGateway struct {
	mu        sync.Mutex
	pages     map[string]*persistence.Page // siteID+slug
	sites     map[string]*persistence.Site
	saves     []document.Body
	fetches   int
	failFetch error
	failSave  error
	saveGate  chan struct{} // when set, SavePage blocks until it is closed
	saveStart chan struct{}
}

func newMemGateway() *memGateway {
	g := &memGateway{
		pages: map[string]*persistence.Page{},
		sites: map[string]*persistence.Site{},
	}
	g.sites["s1"] = &persistence.Site{ID: "s1", OwnerID: "u1", Title: "Cafe", Domain: "cafe-u1.example.com"}
	g.pages["s1/"] = &persistence.Page{ID: "p1", SiteID: "s1", Slug: "/", Title: "Home"}
	return g
}

func (g *memGateway) FetchPage(ctx context.Context, siteID, slug string) (*persistence.Page, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	if g.failFetch != nil {
		return nil, g.failFetch
	}
	p, ok := g.pages[siteID+slug]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	cp := *p
	cp.Body = clone(p.Body)
	return &cp, nil
}

func (g *memGateway) SavePage(ctx context.Context, pageID string, body document.Body, at time.Time) error {
	g.mu.Lock()
	gate, start, fail := g.saveGate, g.saveStart, g.failSave
	g.mu.Unlock()
	if start != nil {
		start <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail != nil {
		return fail
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.pages {
		if p.ID == pageID {
			p.Body = clone(body)
			p.UpdatedAt = at
			g.saves = append(g.saves, clone(body))
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (g *memGateway) FetchSite(ctx context.Context, siteID string) (*persistence.Site, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sites[siteID]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (g *memGateway) PublishSite(ctx context.Context, siteID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sites[siteID]
	if !ok {
		return persistence.ErrNotFound
	}
	now := time.Now().UTC()
	s.IsPublished, s.PublishedAt = true, &now
	return nil
}

func (g *memGateway) lastSave() document.Body {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.saves) == 0 {
		return document.Body{}
	}
	return g.saves[len(g.saves)-1]
}

func clone(b document.Body) document.Body {
	out := document.Body{Components: make([]document.Component, len(b.Components))}
	for i, c := range b.Components {
		out.Components[i] = c.Clone()
	}
	return out
}
