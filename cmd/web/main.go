// cmd/web/main.go
//
// Page builder – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (conf/global.yaml, .env, and BUILDER_ env).
//
//  2. Start the rotating JSON logger (tees to console when running in a TTY).
//
//  3. Resolve vault: references for the database password, cookie secret,
//     and callback token.
//
//  4. Open the storage backend.  "sql" opens and migrates the database and
//     enables site provisioning; "mongo" serves existing documents only.
//
//  5. Build the editor session cache and start its evictor.
//
//  6. Build the root router:
//
//     • security headers, optional HTTPS redirect, and request info
//     • session cookie, access log, and per-client rate limit
//     • Prometheus /metrics and /healthz
//     • every registered component
//
//  7. Serve until SIGINT or SIGTERM, then drain in-flight requests, stop
//     the evictor, and close the stores.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/sitebuilder/internal/acl"
	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/config"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/database"
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/logger"
	"github.com/yanizio/sitebuilder/internal/middleware"
	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/provision"
	"github.com/yanizio/sitebuilder/internal/requestinfo"
	"github.com/yanizio/sitebuilder/internal/server"
	"github.com/yanizio/sitebuilder/internal/vault"

	_ "github.com/yanizio/sitebuilder/components/account"
	_ "github.com/yanizio/sitebuilder/components/auth"
	_ "github.com/yanizio/sitebuilder/components/builder"
	_ "github.com/yanizio/sitebuilder/components/library" // palette
	_ "github.com/yanizio/sitebuilder/components/sites"
)

const shutdownGrace = 20 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("builder: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config and logger ───────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logOut, err := logger.New(logger.Options{Root: cfg.Paths.Root, Level: cfg.Log.Level, Tee: runningInTTY()})
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 2.  Secrets ─────────────────────────────────────────────────────
	//
	sec, err := resolveSecrets(ctx, cfg, logOut)
	if err != nil {
		return err
	}

	//
	// ── 3.  Storage ─────────────────────────────────────────────────────
	//
	ids := document.UUIDGenerator{}
	var (
		gw     persistence.Gateway
		owners acl.Checker
		sites  *provision.Service
	)
	switch cfg.Storage.Backend {
	case "mongo":
		mg, err := persistence.DialMongo(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDB)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mg.Close(cctx)
		}()
		gw, owners = mg, acl.ByOwner(mg)
		logOut.Infow("storage online", "backend", "mongo", "db", cfg.Storage.MongoDB)

	default:
		db, err := openSQL(ctx, cfg, sec.dbPassword)
		if err != nil {
			return err
		}
		defer db.Close()
		sg := persistence.NewSQL(db)
		gw = sg
		if cfg.Database.Driver == database.Postgres {
			owners = acl.ByOwner(sg)
		} else {
			owners = acl.NewStore(db.DB)
		}
		sites = provision.New(db, provision.Options{
			DomainSuffix: cfg.Builder.DomainSuffix,
			SiteLimit:    cfg.Builder.SiteLimit,
			IDs:          ids,
			Log:          logOut,
		})
		logOut.Infow("storage online", "backend", "sql", "driver", cfg.Database.Driver)
	}
	gw = persistence.Instrument(gw)

	//
	// ── 4.  Editor sessions ─────────────────────────────────────────────
	//
	sessions := editor.NewCache(gw, editor.CacheOptions{
		IdleTTL:     cfg.Builder.SessionIdleTTL,
		MaxSessions: cfg.Builder.MaxSessions,
		Session: editor.Options{
			SaveTimeout:   cfg.Builder.SaveTimeout,
			PreviewLength: cfg.Builder.PreviewLength,
			IDs:           ids,
			Log:           logOut,
		},
	})
	if err := sessions.Start(cfg.Builder.EvictSchedule); err != nil {
		return fmt.Errorf("start evictor: %w", err)
	}

	//
	// ── 5.  Identity ────────────────────────────────────────────────────
	//
	cookies, err := auth.NewCookies(cfg.Auth.CookieName, []byte(sec.cookieSecret), cfg.Auth.CookieTTL)
	if err != nil {
		return err
	}
	cfg.Auth.CallbackToken = sec.callbackToken

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		logOut.Warnw("geoip disabled", "path", cfg.Geo.DBPath, "err", err)
	}
	defer requestinfo.CloseGeo()

	//
	// ── 6.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	if cfg.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(requestinfo.Enrich)
	r.Use(cookies.Middleware)
	r.Use(requestinfo.AccessLog(logOut))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.RateLimitOptions{
			RPS:     cfg.RateLimit.RPS,
			Burst:   cfg.RateLimit.Burst,
			Clients: cfg.RateLimit.Clients,
		}))
	}
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := component.MountAll(r, component.Deps{
		Config:   cfg,
		Gateway:  gw,
		Sessions: sessions,
		Sites:    sites,
		Owners:   owners,
		Cookies:  cookies,
		CSRF:     csrf.New([]byte(sec.cookieSecret)),
		Log:      logOut,
	}); err != nil {
		return err
	}

	//
	// ── 7.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r, server.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Only the log level is applied live; other keys need a restart.
		err := config.Watch(gctx, cfg.Paths.Root, func(next *config.Config) {
			if err := logger.SetLevel(next.Log.Level); err != nil {
				logOut.Warnw("log level not applied", "level", next.Log.Level, "err", err)
			}
		})
		if err != nil {
			logOut.Warnw("config watch disabled", "err", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		err := srv.Shutdown(sctx)
		<-sessions.Stop().Done()
		if n := dirtySessions(sessions); n > 0 {
			logOut.Warnw("unsaved editor sessions discarded", "count", n)
		}
		return err
	})
	return g.Wait()
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

type secrets struct {
	dbPassword    string
	cookieSecret  string
	callbackToken string
}

// resolveSecrets expands vault: references.  A Vault client is only built
// when at least one value is a reference.
func resolveSecrets(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (secrets, error) {
	in := secrets{
		dbPassword:    cfg.Database.Password,
		cookieSecret:  cfg.Auth.CookieSecret,
		callbackToken: cfg.Auth.CallbackToken,
	}
	var g vault.Getter
	if vault.IsRef(in.dbPassword) || vault.IsRef(in.cookieSecret) || vault.IsRef(in.callbackToken) {
		c, err := vault.New(ctx, log)
		if err != nil {
			return secrets{}, fmt.Errorf("vault: %w", err)
		}
		g = c
	}

	var out secrets
	for _, f := range []struct {
		name string
		src  string
		dst  *string
	}{
		{"database.password", in.dbPassword, &out.dbPassword},
		{"auth.cookie_secret", in.cookieSecret, &out.cookieSecret},
		{"auth.callback_token", in.callbackToken, &out.callbackToken},
	} {
		v, err := vault.Resolve(ctx, g, f.src)
		if err != nil {
			return secrets{}, fmt.Errorf("resolve %s: %w", f.name, err)
		}
		*f.dst = v
	}
	return out, nil
}

// openSQL substitutes the password into the DSN, opens the pool, and
// applies migrations.
func openSQL(ctx context.Context, cfg *config.Config, password string) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN
	if strings.Count(dsn, "%s") == 1 {
		dsn = fmt.Sprintf(dsn, password)
	}
	db, err := database.Open(ctx, database.Options{
		Driver:  cfg.Database.Driver,
		DSN:     dsn,
		MaxOpen: cfg.Database.MaxOpen,
		MaxIdle: cfg.Database.MaxIdle,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Database.Driver, err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// dirtySessions counts cached sessions with unsaved edits.
func dirtySessions(c *editor.Cache) int {
	n := 0
	c.Each(func(s *editor.Session) {
		if s.Dirty() {
			n++
		}
	})
	return n
}
