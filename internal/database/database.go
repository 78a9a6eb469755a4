// Package database centralises sqlx connection helpers and the schema.
//
// Three drivers are supported:
//
//	mysql     go-sql-driver/mysql (also MariaDB).  DSNs need parseTime=true.
//	postgres  lib/pq.
//	sqlite    modernc.org/sqlite, pure Go.  Used for local runs and tests.
//
// Open pings the database before returning so callers can fail fast during
// bootstrap.  Callers should Close() the returned *sqlx.DB when no longer
// needed.  Repositories write "?" placeholders and call Rebind, so the same
// SQL runs on every driver.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by name.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Supported driver names.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Options tunes the pool.  Zero values fall back to 15 open, 5 idle, and a
// 30-minute connection lifetime.
type Options struct {
	Driver          string
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

func (o *Options) defaults() {
	if o.Driver == "" {
		o.Driver = MySQL
	}
	if o.MaxOpen == 0 {
		o.MaxOpen = 15
	}
	if o.MaxIdle == 0 {
		o.MaxIdle = 5
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
}

// Open returns a pinged *sqlx.DB for opts.
func Open(ctx context.Context, opts Options) (*sqlx.DB, error) {
	opts.defaults()
	switch opts.Driver {
	case MySQL, Postgres, SQLite:
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", opts.Driver)
	}

	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpen)
	db.SetMaxIdleConns(opts.MaxIdle)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.Driver == SQLite {
		// one writer; an in-memory database also lives on a single conn
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
