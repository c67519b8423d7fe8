package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-core/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func Connect(ctx context.Context, cfg *config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PgxpoolConfig()
	if err != nil {
		return nil, fmt.Errorf("unable to parse db config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

func NewMigrator(cfg *config.Database) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	return migrator, nil
}

// Migrate applies every pending migration and reports the resulting
// schema version.
func Migrate(cfg *config.Database) (version uint, dirty bool, err error) {
	migrator, err := NewMigrator(cfg)
	if err != nil {
		return 0, false, err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrator.Version()
}

func ConnectAndMigrate(ctx context.Context, cfg *config.Database) (*pgxpool.Pool, error) {
	if _, _, err := Migrate(cfg); err != nil {
		return nil, err
	}
	return Connect(ctx, cfg)
}
