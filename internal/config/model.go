// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                           dotenv values,
//   - `conf/global.yaml`                        primary static file,
//   - `BUILDER_`-prefixed environment overrides  highest precedence.
//
// Secrets may be written as `vault:<path>#<key>`.  The loader leaves them as
// is; cmd/web resolves them through internal/vault before use.
//
// Validation happens immediately after unmarshal and defaulting; the app
// fails fast if required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
//   - Oxford commas, two spaces after periods.
package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

//
// Database section
//

// Database describes the relational store.  When DSN contains one %s verb
// the resolved Password is substituted into it, keeping credentials out of
// YAML and git history.
type Database struct {
	Driver   string `koanf:"driver"   validate:"oneof=mysql postgres sqlite"`
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
	MaxOpen  int    `koanf:"max_open" validate:"gte=0"`
	MaxIdle  int    `koanf:"max_idle" validate:"gte=0"`
}

//
// Storage section
//

// Storage selects where page bodies live.  "sql" uses the Database section;
// "mongo" reads documents written by the first builder.
type Storage struct {
	Backend  string `koanf:"backend"   validate:"oneof=sql mongo"`
	MongoURI string `koanf:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDB  string `koanf:"mongo_db"`
}

//
// Builder section
//

// Builder tunes editor sessions and site provisioning.
type Builder struct {
	SaveTimeout    time.Duration `koanf:"save_timeout"     validate:"gt=0"`
	SessionIdleTTL time.Duration `koanf:"session_idle_ttl" validate:"gt=0"`
	MaxSessions    int           `koanf:"max_sessions"     validate:"gte=0"`
	EvictSchedule  string        `koanf:"evict_schedule"   validate:"required,cron"`
	PreviewLength  int           `koanf:"preview_length"`
	DomainSuffix   string        `koanf:"domain_suffix"    validate:"required,fqdn"`
	SiteLimit      int           `koanf:"site_limit"       validate:"gte=0"`
}

//
// Auth section
//

// Auth configures the signed session cookie.
type Auth struct {
	CookieName   string        `koanf:"cookie_name"`
	CookieSecret string        `koanf:"cookie_secret" validate:"required"`
	CookieTTL    time.Duration `koanf:"cookie_ttl"`
	// CallbackToken guards the identity-provider callback.
	CallbackToken string `koanf:"callback_token" validate:"required"`
}

//
// Rate limit section
//

// RateLimit caps request rate per user (or per IP when anonymous).
type RateLimit struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"   validate:"gte=0"`
	Burst   int     `koanf:"burst" validate:"gte=0"`
	Clients int     `koanf:"clients"`
}

//
// Geo and Log sections
//

// Geo points at an optional GeoLite2 City database.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

// Log sets the minimum level.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // BUILDER_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Database  Database  `koanf:"database"`
	Storage   Storage   `koanf:"storage"`
	Builder   Builder   `koanf:"builder"`
	Auth      Auth      `koanf:"auth"`
	RateLimit RateLimit `koanf:"ratelimit"`
	Geo       Geo       `koanf:"geo"`
	Log       Log       `koanf:"log"`
	Paths     Paths     `koanf:"-"`
}

// applyDefaults fills zero values that YAML may omit.
func (c *Config) applyDefaults() {
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 120 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "sql"
	}
	if c.Storage.MongoDB == "" {
		c.Storage.MongoDB = "sitebuilder"
	}
	if c.Builder.SaveTimeout == 0 {
		c.Builder.SaveTimeout = 15 * time.Second
	}
	if c.Builder.SessionIdleTTL == 0 {
		c.Builder.SessionIdleTTL = 30 * time.Minute
	}
	if c.Builder.MaxSessions == 0 {
		c.Builder.MaxSessions = 500
	}
	if c.Builder.EvictSchedule == "" {
		c.Builder.EvictSchedule = "@every 5m"
	}
	if c.Builder.PreviewLength == 0 {
		c.Builder.PreviewLength = 50
	}
	if c.Builder.SiteLimit == 0 {
		c.Builder.SiteLimit = 3
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "builder_session"
	}
	if c.Auth.CookieTTL == 0 {
		c.Auth.CookieTTL = 7 * 24 * time.Hour
	}
	if c.RateLimit.Clients == 0 {
		c.RateLimit.Clients = 10000
	}
}
