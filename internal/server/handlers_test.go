package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", handleHealth)
	h := NewHandler()
	r.Route("/api/v1", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleDetect(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/api/v1/detect", map[string]any{
		"new_assets": []map[string]any{
			{"asset_name": "HDFC Bank Ltd", "current_value": 100000},
			{"asset_name": "Infosys Ltd", "current_value": 250000},
		},
		"existing_assets": []map[string]any{
			{"id": "e1", "asset_name": "Bank HDFC Limited", "current_value": 100000},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ReviewAssets []struct {
			Name             string `json:"asset_name"`
			IsDuplicate      bool   `json:"is_duplicate"`
			IsSelected       bool   `json:"is_selected"`
			DuplicateMatches []struct {
				AssetID   string  `json:"asset_id"`
				Score     float64 `json:"similarity_score"`
				MatchType string  `json:"match_type"`
			} `json:"duplicate_matches"`
		} `json:"review_assets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ReviewAssets, 2)

	first := resp.ReviewAssets[0]
	assert.True(t, first.IsDuplicate)
	assert.False(t, first.IsSelected)
	require.Len(t, first.DuplicateMatches, 1)
	assert.Equal(t, "e1", first.DuplicateMatches[0].AssetID)
	assert.Equal(t, "exact", first.DuplicateMatches[0].MatchType)

	second := resp.ReviewAssets[1]
	assert.False(t, second.IsDuplicate)
	assert.True(t, second.IsSelected)
}

func TestHandleDetect_Validation(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/api/v1/detect", map[string]any{"new_assets": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/detect", map[string]any{
		"new_assets": []map[string]any{{"asset_name": "", "current_value": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/detect", map[string]any{
		"new_assets": []map[string]any{{"asset_name": "X", "current_value": -10}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Config overrides are range-checked before the engine runs.
	rec = postJSON(t, router, "/api/v1/detect", map[string]any{
		"new_assets": []map[string]any{{"asset_name": "X", "current_value": 10}},
		"config":     map[string]any{"similarity_threshold": 150},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFireMetrics(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/api/v1/fire/metrics", map[string]any{
		"current_age":             30,
		"fire_age":                45,
		"current_monthly_expense": 50000,
		"current_net_worth":       0,
		"monthly_savings":         50000,
		"household_income":        100000,
		"lifestyle_type":          "standard",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var m metricsPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 6.0, m.LifestyleInflationAdjustment)
	assert.Equal(t, 4.0, m.SafeWithdrawalRate)
	assert.Equal(t, 15.0, m.YearsToFire)
	assert.InDelta(t, 53000.0, m.PostFireMonthlyExpense, 1e-9)
	assert.False(t, m.IsOnTrack)
	assert.Greater(t, m.MonthlySavingsNeeded, 50000.0)
}

func TestHandleFireMetrics_Validation(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/api/v1/fire/metrics", map[string]any{
		"current_age": 45,
		"fire_age":    45,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/v1/fire/metrics", map[string]any{
		"current_age":       30,
		"fire_age":          45,
		"current_net_worth": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
