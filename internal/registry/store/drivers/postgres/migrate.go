package postgres

import (
	"errors"
	"strings"

	"github.com/eventdesk/registry/internal/registry/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations applies any pending migrations using the embedded migration
// files. golang-migrate opens its own short-lived connection; the store's
// pool is not involved.
func (s *Store) ApplyMigrations() error {
	migrationsFilesystem, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithSourceInstance("iofs", migrationsFilesystem, migrateURL(s.dsn))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = instance.Close()
	}()

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// migrateURL rewrites a postgres:// DSN to the pgx5:// scheme golang-migrate's
// pgx/v5 database driver registers.
func migrateURL(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"):
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	case strings.HasPrefix(dsn, "postgresql://"):
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	default:
		return dsn
	}
}
