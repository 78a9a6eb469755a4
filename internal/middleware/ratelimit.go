// internal/middleware/ratelimit.go
//
// Per-client token-bucket rate limiting.
//
// Context
// -------
// Each client gets its own golang.org/x/time/rate limiter.  The client key
// is the signed-in user id when there is one, otherwise the client IP that
// requestinfo.Enrich resolved (or RemoteAddr when Enrich did not run).
// Limiters live in a bounded LRU, so a flood of distinct clients recycles
// the coldest buckets instead of growing memory.
//
// Rejected requests get 429 with Retry-After and bump
// builder_rate_limited_total.
package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/cache"
	"github.com/yanizio/sitebuilder/internal/metrics"
	"github.com/yanizio/sitebuilder/internal/requestinfo"
)

// RateLimitOptions tunes RateLimit.
type RateLimitOptions struct {
	RPS     float64 // sustained requests per second per client
	Burst   int     // bucket size
	Clients int     // limiters kept in memory
}

// RateLimit returns middleware enforcing opts.  RPS <= 0 disables limiting.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	if opts.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.Burst < 1 {
		opts.Burst = int(math.Ceil(opts.RPS))
	}
	if opts.Clients < 1 {
		opts.Clients = 10000
	}
	buckets := cache.New[string, *rate.Limiter](opts.Clients)
	retry := strconv.Itoa(int(math.Ceil(1 / opts.RPS)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := buckets.GetOrAdd(clientKey(r), func() *rate.Limiter {
				return rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst)
			})
			if !lim.Allow() {
				metrics.RateLimitedTotal.Inc()
				w.Header().Set("Retry-After", retry)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if uid, ok := auth.UserID(r.Context()); ok {
		return "u:" + uid
	}
	if info := requestinfo.FromContext(r.Context()); info != nil && info.Geo.IP != nil {
		return "ip:" + info.Geo.IP.String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return "ip:" + host
	}
	return "ip:" + r.RemoteAddr
}
