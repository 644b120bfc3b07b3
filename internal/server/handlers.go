package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkotecha/fireplan/internal/dedup"
	"github.com/rkotecha/fireplan/internal/fire"
	"github.com/rkotecha/fireplan/internal/model"
)

// Handler serves the engine endpoints.
type Handler struct{}

// NewHandler creates the engine handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the engine routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/detect", h.HandleDetect)
	r.Post("/fire/metrics", h.HandleFireMetrics)
}

// DetectRequest is the batch-detection payload. Omitted config fields fall
// back to the documented defaults.
type DetectRequest struct {
	NewAssets      []assetPayload `json:"new_assets"`
	ExistingAssets []assetPayload `json:"existing_assets"`
	SnapshotID     string         `json:"snapshot_id,omitempty"`
	Config         *configPayload `json:"config,omitempty"`
}

type assetPayload struct {
	ID           string  `json:"id,omitempty"`
	SnapshotID   string  `json:"snapshot_id,omitempty"`
	Name         string  `json:"asset_name"`
	SourceFile   string  `json:"source_file,omitempty"`
	CurrentValue float64 `json:"current_value"`
}

type configPayload struct {
	SimilarityThreshold      *float64 `json:"similarity_threshold,omitempty"`
	ValueTolerancePercentage *float64 `json:"value_tolerance_percentage,omitempty"`
	NameWeight               *float64 `json:"name_weight,omitempty"`
	ValueWeight              *float64 `json:"value_weight,omitempty"`
}

type reviewAssetPayload struct {
	Name             string         `json:"asset_name"`
	SourceFile       string         `json:"source_file,omitempty"`
	CurrentValue     float64        `json:"current_value"`
	IsDuplicate      bool           `json:"is_duplicate"`
	IsSelected       bool           `json:"is_selected"`
	DuplicateMatches []matchPayload `json:"duplicate_matches"`
}

type matchPayload struct {
	AssetID         string          `json:"asset_id,omitempty"`
	AssetName       string          `json:"asset_name"`
	SourceFile      string          `json:"source_file,omitempty"`
	CurrentValue    float64         `json:"current_value"`
	SimilarityScore float64         `json:"similarity_score"`
	MatchType       model.MatchType `json:"match_type"`
}

// HandleDetect runs batch duplicate detection over the posted assets.
func (h *Handler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if len(req.NewAssets) == 0 {
		http.Error(w, "new_assets must not be empty", http.StatusBadRequest)
		return
	}
	for _, a := range req.NewAssets {
		if a.Name == "" {
			http.Error(w, "every asset needs an asset_name", http.StatusBadRequest)
			return
		}
		if a.CurrentValue < 0 {
			http.Error(w, "current_value cannot be negative", http.StatusBadRequest)
			return
		}
	}

	cfg := dedup.DefaultConfig()
	if req.Config != nil {
		if req.Config.SimilarityThreshold != nil {
			cfg.SimilarityThreshold = *req.Config.SimilarityThreshold
		}
		if req.Config.ValueTolerancePercentage != nil {
			cfg.ValueTolerancePercentage = *req.Config.ValueTolerancePercentage
		}
		if req.Config.NameWeight != nil {
			cfg.NameWeight = *req.Config.NameWeight
		}
		if req.Config.ValueWeight != nil {
			cfg.ValueWeight = *req.Config.ValueWeight
		}
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := dedup.DetectBatch(r.Context(),
		toAssets(req.NewAssets), toAssets(req.ExistingAssets), cfg,
		dedup.BatchOptions{TargetSnapshotID: req.SnapshotID})
	if err != nil {
		// Only context cancellation can surface here.
		http.Error(w, "detection aborted", http.StatusRequestTimeout)
		return
	}

	out := make([]reviewAssetPayload, len(review))
	for i, ra := range review {
		out[i] = reviewAssetPayload{
			Name:             ra.Name,
			SourceFile:       ra.SourceFile,
			CurrentValue:     ra.CurrentValue,
			IsDuplicate:      ra.IsDuplicate,
			IsSelected:       ra.IsSelected,
			DuplicateMatches: make([]matchPayload, len(ra.DuplicateMatches)),
		}
		for j, m := range ra.DuplicateMatches {
			out[i].DuplicateMatches[j] = matchPayload{
				AssetID:         m.AssetID,
				AssetName:       m.AssetName,
				SourceFile:      m.SourceFile,
				CurrentValue:    m.CurrentValue,
				SimilarityScore: m.SimilarityScore,
				MatchType:       m.MatchType,
			}
		}
	}

	writeJSON(w, map[string]any{"review_assets": out})
}

// FireRequest is the projection payload.
type FireRequest struct {
	CurrentAge            int     `json:"current_age"`
	FireAge               int     `json:"fire_age"`
	Dependents            int     `json:"dependents"`
	CurrentMonthlyExpense float64 `json:"current_monthly_expense"`
	CurrentNetWorth       float64 `json:"current_net_worth"`
	MonthlySavings        float64 `json:"monthly_savings"`
	HouseholdIncome       float64 `json:"household_income"`
	LifestyleType         string  `json:"lifestyle_type"`
	// YearsToFire, when positive, overrides the age-derived horizon with a
	// possibly fractional one.
	YearsToFire float64 `json:"years_to_fire,omitempty"`
}

// HandleFireMetrics computes FIRE metrics for the posted profile.
func (h *Handler) HandleFireMetrics(w http.ResponseWriter, r *http.Request) {
	var req FireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	profile := model.Profile{
		CurrentAge:            req.CurrentAge,
		FireAge:               req.FireAge,
		Dependents:            req.Dependents,
		CurrentMonthlyExpense: req.CurrentMonthlyExpense,
		CurrentNetWorth:       req.CurrentNetWorth,
		MonthlySavings:        req.MonthlySavings,
		HouseholdIncome:       req.HouseholdIncome,
		LifestyleType:         model.LifestyleType(req.LifestyleType),
	}
	if profile.LifestyleType == "" {
		profile.LifestyleType = model.LifestyleStandard
	}

	if err := fire.Validate(profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var metrics model.Metrics
	if req.YearsToFire > 0 {
		metrics = fire.CalculateWithHorizon(profile, req.YearsToFire)
	} else {
		metrics = fire.Calculate(profile)
	}

	writeJSON(w, metricsPayload{
		LifestyleInflationAdjustment: metrics.LifestyleInflationAdjustment,
		SafeWithdrawalRate:           metrics.SafeWithdrawalRate,
		CorpusMultiplier:             metrics.CorpusMultiplier,
		PostFireMonthlyExpense:       metrics.PostFireMonthlyExpense,
		RequiredCorpus:               metrics.RequiredCorpus,
		ProjectedCorpusAtFire:        metrics.ProjectedCorpusAtFire,
		IsOnTrack:                    metrics.IsOnTrack,
		MonthlySavingsNeeded:         metrics.MonthlySavingsNeeded,
		SavingsIncrease:              metrics.SavingsIncrease,
		SurplusDeficit:               metrics.SurplusDeficit,
		YearsToFire:                  metrics.YearsToFire,
	})
}

type metricsPayload struct {
	LifestyleInflationAdjustment float64 `json:"lifestyle_inflation_adjustment"`
	SafeWithdrawalRate           float64 `json:"safe_withdrawal_rate"`
	CorpusMultiplier             float64 `json:"corpus_multiplier"`
	PostFireMonthlyExpense       float64 `json:"post_fire_monthly_expense"`
	RequiredCorpus               float64 `json:"required_corpus"`
	ProjectedCorpusAtFire        float64 `json:"projected_corpus_at_fire"`
	IsOnTrack                    bool    `json:"is_on_track"`
	MonthlySavingsNeeded         float64 `json:"monthly_savings_needed"`
	SavingsIncrease              float64 `json:"savings_increase"`
	SurplusDeficit               float64 `json:"surplus_deficit"`
	YearsToFire                  float64 `json:"years_to_fire"`
}

func toAssets(payloads []assetPayload) []model.Asset {
	assets := make([]model.Asset, len(payloads))
	for i, p := range payloads {
		assets[i] = model.Asset{
			ID:           p.ID,
			SnapshotID:   p.SnapshotID,
			Name:         p.Name,
			SourceFile:   p.SourceFile,
			CurrentValue: p.CurrentValue,
		}
	}
	return assets
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
