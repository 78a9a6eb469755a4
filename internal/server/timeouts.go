// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// Production hardening recommends:
//
//   • ReadTimeout        – abort slow-loris bodies
//   • ReadHeaderTimeout  – abort slow-loris headers
//   • WriteTimeout       – cap total response time
//   • IdleTimeout        – close keep-alives on idle clients
//
// This helper centralises those defaults so cmd/web doesn’t repeat boilerplate.
// Websocket handlers clear the deadlines on the hijacked connection
// themselves.

package server

import (
	"net/http"
	"time"
)

// Timeouts overrides the defaults.  Zero fields keep them.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler, t Timeouts) *http.Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
	if t.Read > 0 {
		s.ReadTimeout = t.Read
	}
	if t.Write > 0 {
		s.WriteTimeout = t.Write
	}
	if t.Idle > 0 {
		s.IdleTimeout = t.Idle
	}
	return s
}
