package dedup

import (
	"context"
	"log/slog"
	"sort"

	"github.com/rkotecha/fireplan/internal/model"
)

// ProgressFunc reports batch-detection progress. completed counts new assets
// whose existing-asset pass has finished.
type ProgressFunc func(completed, total int)

// BatchOptions carries the optional knobs for DetectBatch.
type BatchOptions struct {
	// TargetSnapshotID restricts the existing-asset pass to one snapshot,
	// supporting merge scenarios. Empty means compare against everything.
	TargetSnapshotID string
	// Progress, when non-nil, is invoked after each new asset's
	// existing-asset pass.
	Progress ProgressFunc
}

// DetectForAsset compares one new asset against a set of existing assets and
// returns its candidate duplicates sorted by descending score. Existing
// assets whose name similarity falls below the threshold are skipped outright;
// value similarity alone can never produce a match. Pure and deterministic.
func DetectForAsset(newAsset model.Asset, existing []model.Asset, cfg Config) []model.DuplicateMatch {
	var matches []model.DuplicateMatch

	for _, candidate := range existing {
		nameSim := NameSimilarity(newAsset.Name, candidate.Name)
		if nameSim < cfg.SimilarityThreshold {
			continue
		}

		valueSim := ValueSimilarity(newAsset.CurrentValue, candidate.CurrentValue, cfg.ValueTolerancePercentage)
		combined := nameSim*cfg.NameWeight + valueSim*cfg.ValueWeight
		if combined < cfg.SimilarityThreshold {
			continue
		}

		matches = append(matches, model.DuplicateMatch{
			AssetID:         candidate.ID,
			AssetName:       candidate.Name,
			CurrentValue:    candidate.CurrentValue,
			SourceFile:      candidate.SourceFile,
			SimilarityScore: combined,
			MatchType:       classifyMatch(nameSim, valueSim),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	return matches
}

// DetectBatch runs duplicate detection for a whole upload: every new asset is
// compared against the (optionally snapshot-scoped) existing assets, then an
// all-pairs pass over the batch itself registers intra-batch duplicates on
// both sides of each matching pair. The context is checked between per-asset
// passes so a request-scoped deadline can abandon the run cleanly; all
// intermediate state is local, so nothing is corrupted on early return.
func DetectBatch(ctx context.Context, newAssets, existing []model.Asset, cfg Config, opts BatchOptions) ([]model.ReviewAsset, error) {
	scoped := existing
	if opts.TargetSnapshotID != "" {
		scoped = make([]model.Asset, 0, len(existing))
		for _, a := range existing {
			if a.SnapshotID == opts.TargetSnapshotID {
				scoped = append(scoped, a)
			}
		}
	}

	review := make([]model.ReviewAsset, len(newAssets))
	for i, asset := range newAssets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches := DetectForAsset(asset, scoped, cfg)
		review[i] = model.ReviewAsset{
			Asset:            asset,
			DuplicateMatches: matches,
			IsDuplicate:      len(matches) > 0,
			IsSelected:       len(matches) == 0,
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(newAssets))
		}
	}

	// Intra-batch pass. A duplicate relationship is not directional, so a
	// clearing pair marks both assets and each records the other.
	for i := 0; i < len(newAssets); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i + 1; j < len(newAssets); j++ {
			nameSim := NameSimilarity(newAssets[i].Name, newAssets[j].Name)
			if nameSim < cfg.SimilarityThreshold {
				continue
			}
			valueSim := ValueSimilarity(newAssets[i].CurrentValue, newAssets[j].CurrentValue, cfg.ValueTolerancePercentage)
			combined := nameSim*cfg.NameWeight + valueSim*cfg.ValueWeight
			if combined < cfg.SimilarityThreshold {
				continue
			}

			matchType := classifyMatch(nameSim, valueSim)
			review[i].DuplicateMatches = append(review[i].DuplicateMatches, model.DuplicateMatch{
				AssetName:       newAssets[j].Name,
				CurrentValue:    newAssets[j].CurrentValue,
				SourceFile:      newAssets[j].SourceFile,
				SimilarityScore: combined,
				MatchType:       matchType,
			})
			review[j].DuplicateMatches = append(review[j].DuplicateMatches, model.DuplicateMatch{
				AssetName:       newAssets[i].Name,
				CurrentValue:    newAssets[i].CurrentValue,
				SourceFile:      newAssets[i].SourceFile,
				SimilarityScore: combined,
				MatchType:       matchType,
			})
			review[i].IsDuplicate = true
			review[j].IsDuplicate = true
			review[i].IsSelected = false
			review[j].IsSelected = false
		}
	}

	duplicates := 0
	for i := range review {
		if review[i].IsDuplicate {
			duplicates++
		}
	}
	slog.Debug("batch detection complete",
		"new_assets", len(newAssets),
		"existing_assets", len(scoped),
		"flagged", duplicates)

	return review, nil
}
