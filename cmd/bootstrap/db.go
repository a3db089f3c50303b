package bootstrap

import (
	"context"

	"slotgate/internal/infra/db"
	"slotgate/internal/infra/migrate"
	"slotgate/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(RunMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// RunMigrations brings the schema up before the server accepts traffic.
func RunMigrations(pool *pgxpool.Pool, cfg config.Config) error {
	migrator, err := migrate.NewMigrator(pool, cfg.DB.MigrationsDir)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()
	return migrator.Up(context.Background())
}
