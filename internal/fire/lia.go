package fire

import "github.com/rkotecha/fireplan/internal/model"

const (
	liaBase = 8
	liaMin  = 5
	liaMax  = 20
)

// LifestyleInflationAdjustment estimates, as a percentage, how much a user's
// spending will grow between now and retirement beyond ordinary inflation.
// The result is always clamped to [5,20].
func LifestyleInflationAdjustment(p model.Profile) float64 {
	lia := liaBase +
		ageFactor(p.CurrentAge) +
		dependentsFactor(p.Dependents) +
		savingsRateFactor(savingsRate(p.MonthlySavings, p.HouseholdIncome)) +
		lifestyleMultiplier(p.LifestyleType)

	return clamp(lia, liaMin, liaMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
