// Package sqlbase provides schema migrations shared by SQL artifact backends.
package sqlbase

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
)

const versionsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
`

// Migration is one numbered schema change.
type Migration struct {
	Version int
	SQL     string
}

// MigrationManager applies the artifact schema migrations a database has not seen yet.
type MigrationManager struct {
	db         *sql.DB
	logger     *slog.Logger
	migrations []Migration
}

// NewMigrationManager sorts the given version → statement map into an ordered plan.
func NewMigrationManager(logger *slog.Logger, db *sql.DB, migrations map[int]string) *MigrationManager {
	plan := make([]Migration, 0, len(migrations))
	for version, statement := range migrations {
		plan = append(plan, Migration{Version: version, SQL: statement})
	}

	slices.SortFunc(plan, func(a, b Migration) int { return a.Version - b.Version })

	return &MigrationManager{db: db, logger: logger, migrations: plan}
}

// LatestVersion returns the highest migration version in the plan.
func (m *MigrationManager) LatestVersion() int {
	if len(m.migrations) == 0 {
		return 0
	}

	return m.migrations[len(m.migrations)-1].Version
}

// Pending returns the migrations newer than current, in order.
func (m *MigrationManager) Pending(current int) []Migration {
	idx := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version > current })
	if idx < 0 {
		return nil
	}

	return m.migrations[idx:]
}

// RunMigrations brings the schema up to LatestVersion and returns the versions it applied.
func (m *MigrationManager) RunMigrations(ctx context.Context) ([]int, error) {
	if _, err := m.db.ExecContext(ctx, versionsTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int

	err := m.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return nil, fmt.Errorf("failed to query current schema version: %w", err)
	}

	pending := m.Pending(current)
	m.logger.InfoContext(ctx, "Checked artifact schema", "version", current, "pending", len(pending))

	applied := make([]int, 0, len(pending))

	for _, mig := range pending {
		if err := m.apply(ctx, mig); err != nil {
			return applied, err
		}

		applied = append(applied, mig.Version)
	}

	return applied, nil
}

func (m *MigrationManager) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", mig.Version, err)
	}

	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", mig.Version); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", mig.Version, err)
	}

	m.logger.InfoContext(ctx, "Applied artifact migration", "version", mig.Version)

	return nil
}
