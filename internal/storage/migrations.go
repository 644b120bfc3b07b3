package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS snapshots (
					id TEXT PRIMARY KEY,
					label TEXT,
					source_file TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS assets (
					id TEXT PRIMARY KEY,
					snapshot_id TEXT NOT NULL,
					hash TEXT NOT NULL,
					name TEXT NOT NULL,
					asset_type TEXT,
					current_value REAL NOT NULL,
					source_file TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
				)`,
				`CREATE INDEX idx_assets_snapshot ON assets(snapshot_id)`,
				`CREATE INDEX idx_assets_hash ON assets(hash)`,
				`CREATE UNIQUE INDEX idx_assets_snapshot_hash ON assets(snapshot_id, hash)`,

				`CREATE TABLE IF NOT EXISTS profiles (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					current_age INTEGER NOT NULL,
					fire_age INTEGER NOT NULL,
					dependents INTEGER NOT NULL DEFAULT 0,
					current_monthly_expense REAL NOT NULL,
					current_net_worth REAL NOT NULL,
					monthly_savings REAL NOT NULL,
					household_income REAL NOT NULL,
					lifestyle_type TEXT NOT NULL DEFAULT 'standard',
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Record computed FIRE metrics for history",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS metrics_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					lifestyle_inflation_adjustment REAL NOT NULL,
					safe_withdrawal_rate REAL NOT NULL,
					required_corpus REAL NOT NULL,
					projected_corpus REAL NOT NULL,
					is_on_track INTEGER NOT NULL,
					monthly_savings_needed REAL NOT NULL,
					surplus_deficit REAL NOT NULL,
					computed_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`)
			if err != nil {
				return fmt.Errorf("failed to create metrics_history: %w", err)
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			m.Version, m.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("Applied migration",
			"version", m.Version,
			"description", m.Description)
	}

	var final int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&final); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema at version %d, expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}
