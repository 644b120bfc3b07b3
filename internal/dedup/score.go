package dedup

import "github.com/rkotecha/fireplan/internal/model"

// Score combines name and value similarity into one weighted score. The
// weights come straight from cfg; they are not renormalized.
func Score(name1, name2 string, v1, v2 float64, cfg Config) float64 {
	nameSim := NameSimilarity(name1, name2)
	valueSim := ValueSimilarity(v1, v2, cfg.ValueTolerancePercentage)
	return nameSim*cfg.NameWeight + valueSim*cfg.ValueWeight
}

// classifyMatch buckets a threshold-clearing match by its sub-scores. The
// taxonomy is surfaced to the reviewer only; it feeds no further scoring.
func classifyMatch(nameSim, valueSim float64) model.MatchType {
	switch {
	case nameSim == 100 && valueSim == 100:
		return model.MatchExact
	case nameSim >= 90 && valueSim >= 90:
		return model.MatchNameAndValue
	default:
		return model.MatchName
	}
}
