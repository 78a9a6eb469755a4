// internal/persistence/instrument.go
package persistence

import (
	"context"
	"time"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/metrics"
)

// Instrument wraps g so every call is timed into metrics.GatewayLatency.
func Instrument(g Gateway) Gateway { return instrumented{g} }

type instrumented struct{ next Gateway }

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayLatency.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func (i instrumented) FetchPage(ctx context.Context, siteID, slug string) (p *Page, err error) {
	defer func(t time.Time) { observe("fetch_page", t, err) }(time.Now())
	return i.next.FetchPage(ctx, siteID, slug)
}

func (i instrumented) SavePage(ctx context.Context, pageID string, body document.Body, at time.Time) (err error) {
	defer func(t time.Time) { observe("save_page", t, err) }(time.Now())
	return i.next.SavePage(ctx, pageID, body, at)
}

func (i instrumented) FetchSite(ctx context.Context, siteID string) (s *Site, err error) {
	defer func(t time.Time) { observe("fetch_site", t, err) }(time.Now())
	return i.next.FetchSite(ctx, siteID)
}

func (i instrumented) PublishSite(ctx context.Context, siteID string) (err error) {
	defer func(t time.Time) { observe("publish_site", t, err) }(time.Now())
	return i.next.PublishSite(ctx, siteID)
}
