package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
)

// isUniqueConstraint reports whether the driver error is a unique-index
// violation, i.e. the same asset hash landing twice in one snapshot.
func isUniqueConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// CreateSnapshot inserts a new snapshot record and returns it.
func (s *SQLiteStorage) CreateSnapshot(ctx context.Context, label, sourceFile string) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		ID:         newID(),
		Label:      label,
		SourceFile: sourceFile,
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, label, source_file, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Label, snap.SourceFile, snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	return snap, nil
}

// SaveReviewAssets persists the selected assets of a reviewed batch into the
// given snapshot. Deselected assets are skipped; the whole write is atomic.
func (s *SQLiteStorage) SaveReviewAssets(ctx context.Context, snapshotID string, assets []model.ReviewAsset) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(snapshotID, "snapshotID"); err != nil {
		return 0, err
	}
	if err := validateReviewAssets(assets); err != nil {
		return 0, err
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assets (id, snapshot_id, hash, name, asset_type, current_value, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	saved := 0
	for i := range assets {
		if !assets[i].IsSelected {
			continue
		}
		a := assets[i].Asset
		id := a.ID
		if id == "" {
			id = newID()
		}
		if _, err := stmt.ExecContext(ctx, id, snapshotID, a.GenerateHash(),
			a.Name, a.AssetType, a.CurrentValue, a.SourceFile); err != nil {
			if isUniqueConstraint(err) {
				return 0, fmt.Errorf("asset %q already in snapshot %s: %w",
					a.Name, snapshotID, common.ErrDuplicateEntry)
			}
			return 0, fmt.Errorf("failed to insert asset %q: %w", a.Name, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit assets: %w", err)
	}
	return saved, nil
}

// ListAssets returns stored assets, optionally restricted to one snapshot.
func (s *SQLiteStorage) ListAssets(ctx context.Context, snapshotID string) ([]model.Asset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, snapshot_id, hash, name, COALESCE(asset_type, ''),
			current_value, COALESCE(source_file, ''), created_at
		FROM assets`
	args := []any{}
	if snapshotID != "" {
		query += ` WHERE snapshot_id = ?`
		args = append(args, snapshotID)
	}
	query += ` ORDER BY created_at, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assets []model.Asset
	for rows.Next() {
		var a model.Asset
		var hash string
		if err := rows.Scan(&a.ID, &a.SnapshotID, &hash, &a.Name, &a.AssetType,
			&a.CurrentValue, &a.SourceFile, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// ListSnapshots returns all snapshots, newest first, with per-snapshot asset
// counts and totals.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, COALESCE(s.label, ''), COALESCE(s.source_file, ''), s.created_at,
			COUNT(a.id), COALESCE(SUM(a.current_value), 0)
		FROM snapshots s
		LEFT JOIN assets a ON a.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Label, &snap.SourceFile, &snap.CreatedAt,
			&snap.AssetCount, &snap.TotalValue); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snaps, nil
}

// GetSnapshot fetches one snapshot by id.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var snap model.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, COALESCE(s.label, ''), COALESCE(s.source_file, ''), s.created_at,
			COUNT(a.id), COALESCE(SUM(a.current_value), 0)
		FROM snapshots s
		LEFT JOIN assets a ON a.snapshot_id = s.id
		WHERE s.id = ?
		GROUP BY s.id`, id).
		Scan(&snap.ID, &snap.Label, &snap.SourceFile, &snap.CreatedAt,
			&snap.AssetCount, &snap.TotalValue)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snap, nil
}
