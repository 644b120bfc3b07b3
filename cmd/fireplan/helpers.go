package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rkotecha/fireplan/internal/dedup"
	"github.com/rkotecha/fireplan/internal/storage"
)

// openStorage opens the configured SQLite database and brings the schema up
// to date. Callers must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// resolveDBPath picks the database location from config or the default data
// directory.
func resolveDBPath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "fireplan", "fireplan.db"), nil
}

// detectionConfig assembles the engine config from viper-backed settings and
// rejects out-of-range values before they reach the engine.
func detectionConfig() (dedup.Config, error) {
	cfg := dedup.DefaultConfig()
	cfg.SimilarityThreshold = viper.GetFloat64("detection.similarity_threshold")
	cfg.ValueTolerancePercentage = viper.GetFloat64("detection.value_tolerance_percentage")
	cfg.NameWeight = viper.GetFloat64("detection.name_weight")
	cfg.ValueWeight = viper.GetFloat64("detection.value_weight")
	if err := cfg.Validate(); err != nil {
		return dedup.Config{}, err
	}
	return cfg, nil
}
