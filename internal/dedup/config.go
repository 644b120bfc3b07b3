// Package dedup implements the duplicate-asset detection engine used during
// statement upload and review. All functions are pure: they operate only on
// their arguments and are safe to call concurrently.
package dedup

import (
	"fmt"

	"github.com/rkotecha/fireplan/internal/common"
)

// Config holds the tunables for one detection run. Immutable once passed in;
// callers that want different behavior construct a new Config.
type Config struct {
	// SimilarityThreshold is the minimum combined score (0-100) required to
	// register a match. Name similarity below this value skips scoring
	// entirely so the value signal can never rescue an unrelated name.
	SimilarityThreshold float64
	// ValueTolerancePercentage is the band within which two values are
	// treated as identical.
	ValueTolerancePercentage float64
	// NameWeight and ValueWeight feed the combined score. They are applied
	// as a plain weighted sum and need not total 1.
	NameWeight  float64
	ValueWeight float64
}

// DefaultConfig returns the tuned defaults. Asset names are the primary
// duplicate signal; numeric drift across statements is common and not by
// itself indicative of distinctness, hence the heavy name weighting.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:      85,
		ValueTolerancePercentage: 5,
		NameWeight:               0.9,
		ValueWeight:              0.1,
	}
}

// Validate checks that the tunables are in range before a run. Out-of-range
// values come from user config files or API payloads, never from code, so the
// error carries the offending value.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return fmt.Errorf("%w: similarity threshold %.2f must be in [0,100]",
			common.ErrInvalidConfig, c.SimilarityThreshold)
	}
	if c.ValueTolerancePercentage < 0 {
		return fmt.Errorf("%w: value tolerance %.2f cannot be negative",
			common.ErrInvalidConfig, c.ValueTolerancePercentage)
	}
	if c.NameWeight < 0 || c.ValueWeight < 0 {
		return fmt.Errorf("%w: weights %.2f/%.2f cannot be negative",
			common.ErrInvalidConfig, c.NameWeight, c.ValueWeight)
	}
	return nil
}
