// Package db provides PostgreSQL helpers for the template store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with retrying connection setup, a
// readiness check, transactions and [github.com/pressly/goose/v3] migrations read
// from any fs.FS:
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, templates.Migrations(), cfg.Database.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Errors are wrapped using [errors.Join] so the sentinel and the driver error both match.
package db
