package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

// Migration is one versioned schema change
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Migrator manages database migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// Load reads the migrations bundled into the binary, ordered by file name
func Load() ([]Migration, error) {
	return loadFromFS(embeddedMigrations, "sql")
}

func loadFromFS(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, prev, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	return migrations, nil
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// apply runs one migration and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func(tx pgx.Tx) { _ = tx.Rollback(ctx) }(tx)

	if _, err := tx.Exec(ctx, migration.SQL); err != nil {
		return fmt.Errorf("error occurred during migration %s: %w", migration.Name, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, migration.Version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
	}
	return nil
}

// Migrate applies every bundled migration that has not run yet
func (m *Migrator) Migrate(ctx context.Context) error {
	migrations, err := Load()
	if err != nil {
		return err
	}

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, migration := range migrations {
		applied, err := m.isMigrationApplied(ctx, migration.Version)
		if err != nil {
			return err
		}
		if applied {
			m.logger.Debug().Str("migration", migration.Name).Msg("Migration already applied, skipping")
			continue
		}

		if err := m.apply(ctx, migration); err != nil {
			return err
		}
		m.logger.Info().Str("migration", migration.Name).Msg("Migration applied")
	}

	return nil
}
