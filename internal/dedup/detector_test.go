package dedup

import (
	"context"
	"testing"

	"github.com/rkotecha/fireplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(name string, value float64) model.Asset {
	return model.Asset{Name: name, CurrentValue: value}
}

func TestDetectForAsset(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		newAsset    model.Asset
		existing    []model.Asset
		wantMatches int
		wantType    model.MatchType
	}{
		{
			name:     "reordered abbreviated name with equal value",
			newAsset: asset("HDFC Bank Ltd", 100000),
			existing: []model.Asset{
				{ID: "a1", Name: "Bank HDFC Limited", CurrentValue: 100000},
			},
			wantMatches: 1,
			wantType:    model.MatchExact,
		},
		{
			name:     "matching name with drifted value",
			newAsset: asset("HDFC Bank Ltd", 100000),
			existing: []model.Asset{
				{ID: "a1", Name: "Bank HDFC Limited", CurrentValue: 130000},
			},
			wantMatches: 1,
			wantType:    model.MatchName,
		},
		{
			name:     "shared stopword only",
			newAsset: asset("Nippon India Growth Fund", 50000),
			existing: []model.Asset{
				{ID: "a1", Name: "Polycab India Ltd", CurrentValue: 50000},
			},
			wantMatches: 0,
		},
		{
			name:     "value similarity never rescues an unrelated name",
			newAsset: asset("Axis Bank", 75000),
			existing: []model.Asset{
				{ID: "a1", Name: "Tata Motors", CurrentValue: 75000},
			},
			wantMatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := DetectForAsset(tt.newAsset, tt.existing, cfg)
			require.Len(t, matches, tt.wantMatches)
			if tt.wantMatches > 0 {
				assert.Equal(t, tt.wantType, matches[0].MatchType)
				assert.GreaterOrEqual(t, matches[0].SimilarityScore, cfg.SimilarityThreshold)
			}
		})
	}
}

func TestDetectForAsset_SortedByScore(t *testing.T) {
	cfg := DefaultConfig()
	newAsset := asset("HDFC Bank Ltd", 100000)
	existing := []model.Asset{
		{ID: "drifted", Name: "HDFC Bank Ltd", CurrentValue: 120000},
		{ID: "identical", Name: "HDFC Bank Ltd", CurrentValue: 100000},
	}

	matches := DetectForAsset(newAsset, existing, cfg)
	require.Len(t, matches, 2)
	assert.Equal(t, "identical", matches[0].AssetID)
	assert.Equal(t, "drifted", matches[1].AssetID)
	assert.GreaterOrEqual(t, matches[0].SimilarityScore, matches[1].SimilarityScore)
}

func TestDetectBatch_ExistingPass(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	newAssets := []model.Asset{
		asset("HDFC Bank Ltd", 100000),
		asset("Infosys Ltd", 250000),
	}
	existing := []model.Asset{
		{ID: "e1", SnapshotID: "s1", Name: "Bank HDFC Limited", CurrentValue: 100000},
	}

	review, err := DetectBatch(ctx, newAssets, existing, cfg, BatchOptions{})
	require.NoError(t, err)
	require.Len(t, review, 2)

	assert.True(t, review[0].IsDuplicate)
	assert.False(t, review[0].IsSelected)
	require.Len(t, review[0].DuplicateMatches, 1)
	assert.Equal(t, "e1", review[0].DuplicateMatches[0].AssetID)

	// Clean asset keeps the engine's affirmative default.
	assert.False(t, review[1].IsDuplicate)
	assert.True(t, review[1].IsSelected)
	assert.Empty(t, review[1].DuplicateMatches)
}

func TestDetectBatch_BidirectionalIntraBatch(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	newAssets := []model.Asset{
		asset("HDFC Bank Ltd", 100000),
		asset("Infosys Ltd", 250000),
		asset("Bank HDFC Limited", 100000),
	}

	review, err := DetectBatch(ctx, newAssets, nil, cfg, BatchOptions{})
	require.NoError(t, err)
	require.Len(t, review, 3)

	// Both sides of the pair are flagged and reference each other.
	assert.True(t, review[0].IsDuplicate)
	assert.True(t, review[2].IsDuplicate)
	assert.False(t, review[0].IsSelected)
	assert.False(t, review[2].IsSelected)
	require.Len(t, review[0].DuplicateMatches, 1)
	require.Len(t, review[2].DuplicateMatches, 1)
	assert.Equal(t, "Bank HDFC Limited", review[0].DuplicateMatches[0].AssetName)
	assert.Equal(t, "HDFC Bank Ltd", review[2].DuplicateMatches[0].AssetName)
	assert.InDelta(t,
		review[0].DuplicateMatches[0].SimilarityScore,
		review[2].DuplicateMatches[0].SimilarityScore, 1e-9)

	assert.False(t, review[1].IsDuplicate)
	assert.True(t, review[1].IsSelected)
}

func TestDetectBatch_SnapshotScope(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	newAssets := []model.Asset{asset("HDFC Bank Ltd", 100000)}
	existing := []model.Asset{
		{ID: "old", SnapshotID: "s1", Name: "HDFC Bank Ltd", CurrentValue: 100000},
		{ID: "target", SnapshotID: "s2", Name: "HDFC Bank Ltd", CurrentValue: 100000},
	}

	review, err := DetectBatch(ctx, newAssets, existing, cfg, BatchOptions{TargetSnapshotID: "s2"})
	require.NoError(t, err)
	require.Len(t, review, 1)
	require.Len(t, review[0].DuplicateMatches, 1)
	assert.Equal(t, "target", review[0].DuplicateMatches[0].AssetID)
}

func TestDetectBatch_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DetectBatch(ctx, []model.Asset{asset("HDFC Bank Ltd", 1)}, nil, DefaultConfig(), BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectBatch_ProgressCallback(t *testing.T) {
	ctx := context.Background()
	var calls []int

	newAssets := []model.Asset{
		asset("HDFC Bank Ltd", 100000),
		asset("Infosys Ltd", 250000),
	}
	_, err := DetectBatch(ctx, newAssets, nil, DefaultConfig(), BatchOptions{
		Progress: func(completed, total int) {
			assert.Equal(t, 2, total)
			calls = append(calls, completed)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestScore_WeightedCombination(t *testing.T) {
	cfg := Config{SimilarityThreshold: 85, ValueTolerancePercentage: 5, NameWeight: 0.9, ValueWeight: 0.1}
	// Identical names, wildly different values: 100*0.9 + 0*0.1.
	got := Score("HDFC Bank Ltd", "HDFC Bank Ltd", 100, 100000, cfg)
	assert.InDelta(t, 90.0, got, 1e-9)
}

func TestClassifyMatch(t *testing.T) {
	assert.Equal(t, model.MatchExact, classifyMatch(100, 100))
	assert.Equal(t, model.MatchNameAndValue, classifyMatch(95, 92))
	assert.Equal(t, model.MatchNameAndValue, classifyMatch(90, 90))
	assert.Equal(t, model.MatchName, classifyMatch(100, 40))
	assert.Equal(t, model.MatchName, classifyMatch(89, 100))
}
