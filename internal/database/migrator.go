package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// versionTable records the applied schema version.
const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// SchemaStatus is the applied schema version against the embedded one.
type SchemaStatus struct {
	Current int32
	Latest  int32
}

func (s SchemaStatus) UpToDate() bool {
	return s.Current == s.Latest
}

// Migrate creates the customers, products, orders and order_products tables
// when they are missing. Existing tables are left untouched.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	return withMigrator(ctx, cfg, func(m *tern.Migrator) error {
		status, err := schemaStatus(ctx, m)
		if err != nil {
			return err
		}

		if status.UpToDate() {
			logger.Info().Int32("version", status.Latest).Msg("database schema up to date")
			return nil
		}

		m.OnStart = func(sequence int32, name, _, _ string) {
			logger.Info().Int32("sequence", sequence).Str("migration", name).Msg("applying migration")
		}

		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("applying database migrations: %w", err)
		}

		logger.Info().
			Int32("from", status.Current).
			Int32("to", status.Latest).
			Msg("migrated database schema")
		return nil
	})
}

// Status reports the schema version without changing anything.
func Status(ctx context.Context, cfg *config.Config) (SchemaStatus, error) {
	var status SchemaStatus
	err := withMigrator(ctx, cfg, func(m *tern.Migrator) error {
		var err error
		status, err = schemaStatus(ctx, m)
		return err
	})
	return status, err
}

// withMigrator opens a dedicated connection, loads the embedded migrations
// and hands the migrator to fn. The pool is not used so that migrations can
// run before the server starts.
func withMigrator(ctx context.Context, cfg *config.Config, fn func(*tern.Migrator) error) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	return fn(m)
}

func schemaStatus(ctx context.Context, m *tern.Migrator) (SchemaStatus, error) {
	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("retrieving current database migration version: %w", err)
	}
	return SchemaStatus{Current: current, Latest: int32(len(m.Migrations))}, nil
}
