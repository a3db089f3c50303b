package migrate

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"slotgate/internal/pkg/errs"
)

// Migrator applies goose SQL migrations at startup. goose wants *sql.DB,
// so it borrows connections from the pgx pool via the stdlib adapter.
type Migrator struct {
	db   *sql.DB
	path string
}

func NewMigrator(pool *pgxpool.Pool, migrationsPath string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errs.Wrap(err, "failed to set goose dialect")
	}
	return &Migrator{
		db:   stdlib.OpenDBFromPool(pool),
		path: migrationsPath,
	}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, m.path); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return errs.Wrap(err, "failed to read migration version")
	}
	slog.Info("database migrations applied", "version", version)
	return nil
}

func (m *Migrator) Close() error {
	// closes the adapter only; the pool itself belongs to the app lifecycle
	return m.db.Close()
}
