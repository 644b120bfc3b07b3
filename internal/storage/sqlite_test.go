package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	s := newTestStorage(t)

	var version int
	require.NoError(t, s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveReviewAssets_RejectsDuplicateHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	snap, err := s.CreateSnapshot(ctx, "", "upload.csv")
	require.NoError(t, err)

	asset := model.ReviewAsset{
		Asset:      model.Asset{Name: "HDFC Bank Ltd", CurrentValue: 100000, SourceFile: "upload.csv"},
		IsSelected: true,
	}
	_, err = s.SaveReviewAssets(ctx, snap.ID, []model.ReviewAsset{asset})
	require.NoError(t, err)

	// Same name, value and source hash identically; the second write into
	// the same snapshot must fail as a duplicate, not silently double up.
	_, err = s.SaveReviewAssets(ctx, snap.ID, []model.ReviewAsset{asset})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// A different snapshot is unaffected.
	other, err := s.CreateSnapshot(ctx, "", "upload.csv")
	require.NoError(t, err)
	saved, err := s.SaveReviewAssets(ctx, other.ID, []model.ReviewAsset{asset})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
}

func TestSnapshotLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	snap, err := s.CreateSnapshot(ctx, "march statement", "hdfc_mar.csv")
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "march statement", got.Label)
	assert.Equal(t, "hdfc_mar.csv", got.SourceFile)
	assert.Zero(t, got.AssetCount)

	_, err = s.GetSnapshot(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveReviewAssets_SkipsDeselected(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	snap, err := s.CreateSnapshot(ctx, "", "upload.csv")
	require.NoError(t, err)

	review := []model.ReviewAsset{
		{
			Asset:      model.Asset{Name: "HDFC Bank Ltd", CurrentValue: 100000, SourceFile: "upload.csv"},
			IsSelected: true,
		},
		{
			Asset:       model.Asset{Name: "Bank HDFC Limited", CurrentValue: 100000, SourceFile: "upload.csv"},
			IsDuplicate: true,
			IsSelected:  false,
		},
		{
			Asset:      model.Asset{Name: "Infosys Ltd", CurrentValue: 250000, SourceFile: "upload.csv"},
			IsSelected: true,
		},
	}

	saved, err := s.SaveReviewAssets(ctx, snap.ID, review)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	assets, err := s.ListAssets(ctx, snap.ID)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	for _, a := range assets {
		assert.Equal(t, snap.ID, a.SnapshotID)
		assert.NotEmpty(t, a.ID)
	}

	// Snapshot rollup reflects the saved assets.
	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AssetCount)
	assert.InDelta(t, 350000.0, got.TotalValue, 1e-9)
}

func TestSaveReviewAssets_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	snap, err := s.CreateSnapshot(ctx, "", "")
	require.NoError(t, err)

	_, err = s.SaveReviewAssets(ctx, snap.ID, nil)
	assert.ErrorIs(t, err, ErrEmptySlice)

	_, err = s.SaveReviewAssets(ctx, snap.ID, []model.ReviewAsset{
		{Asset: model.Asset{Name: "   ", CurrentValue: 10}, IsSelected: true},
	})
	assert.ErrorIs(t, err, ErrInvalidAsset)

	_, err = s.SaveReviewAssets(ctx, snap.ID, []model.ReviewAsset{
		{Asset: model.Asset{Name: "Axis Bank", CurrentValue: -5}, IsSelected: true},
	})
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestListAssets_SnapshotScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	first, err := s.CreateSnapshot(ctx, "jan", "jan.csv")
	require.NoError(t, err)
	second, err := s.CreateSnapshot(ctx, "feb", "feb.csv")
	require.NoError(t, err)

	_, err = s.SaveReviewAssets(ctx, first.ID, []model.ReviewAsset{
		{Asset: model.Asset{Name: "HDFC Bank Ltd", CurrentValue: 100000}, IsSelected: true},
	})
	require.NoError(t, err)
	_, err = s.SaveReviewAssets(ctx, second.ID, []model.ReviewAsset{
		{Asset: model.Asset{Name: "Infosys Ltd", CurrentValue: 200000}, IsSelected: true},
	})
	require.NoError(t, err)

	all, err := s.ListAssets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := s.ListAssets(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Infosys Ltd", scoped[0].Name)
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.GetProfile(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	p := model.Profile{
		CurrentAge:            30,
		FireAge:               45,
		Dependents:            1,
		CurrentMonthlyExpense: 50000,
		CurrentNetWorth:       1200000,
		MonthlySavings:        40000,
		HouseholdIncome:       150000,
		LifestyleType:         model.LifestyleStandard,
	}
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.CurrentAge, got.CurrentAge)
	assert.Equal(t, p.FireAge, got.FireAge)
	assert.Equal(t, p.LifestyleType, got.LifestyleType)
	assert.InDelta(t, p.CurrentNetWorth, got.CurrentNetWorth, 1e-9)

	// Upsert overwrites the single row.
	p.FireAge = 50
	require.NoError(t, s.SaveProfile(ctx, p))
	got, err = s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, got.FireAge)
}

func TestMetricsHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.LatestMetrics(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	first := model.Metrics{
		ComputedAt:                   time.Now().Add(-time.Hour),
		LifestyleInflationAdjustment: 6,
		SafeWithdrawalRate:           4,
		RequiredCorpus:               38000000,
		ProjectedCorpusAtFire:        23000000,
		IsOnTrack:                    false,
		MonthlySavingsNeeded:         81000,
		SurplusDeficit:               -15000000,
	}
	require.NoError(t, s.RecordMetrics(ctx, first))

	second := first
	second.ComputedAt = time.Now()
	second.IsOnTrack = true
	second.SurplusDeficit = 500000
	require.NoError(t, s.RecordMetrics(ctx, second))

	latest, err := s.LatestMetrics(ctx)
	require.NoError(t, err)
	assert.True(t, latest.IsOnTrack)
	assert.InDelta(t, 500000.0, latest.SurplusDeficit, 1e-9)
}
