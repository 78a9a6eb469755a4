// internal/database/migrate.go
//
// Idempotent schema bootstrap.
//
// Context
// -------
// The schema is two tables:
//
//	sites  (id PK, owner_id, title, slug, domain UNIQUE, template_id,
//	        is_published, published_at, created_at, updated_at)
//	pages  (id PK, site_id, slug, title, body, created_at, updated_at,
//	        UNIQUE(site_id, slug))
//
// Each driver has its own DDL file under schema/ because column types
// differ.  Every statement is CREATE ... IF NOT EXISTS, so Migrate is safe
// to run on every boot.
package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies the schema for db's driver.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	name := "schema/" + db.DriverName() + ".sql"
	ddl, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("database: no schema for driver %q", db.DriverName())
	}

	n := 0
	for _, stmt := range strings.Split(string(ddl), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database: migrate %s: %w", name, err)
		}
		n++
	}
	zap.S().Infow("schema applied", "driver", db.DriverName(), "statements", n)
	return nil
}
