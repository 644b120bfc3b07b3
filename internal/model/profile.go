package model

import "time"

// LifestyleType describes the retirement lifestyle tier a user is planning for.
type LifestyleType string

const (
	// LifestyleLean plans for a pared-down retirement budget.
	LifestyleLean LifestyleType = "lean"
	// LifestyleStandard plans to maintain the current standard of living.
	LifestyleStandard LifestyleType = "standard"
	// LifestyleFat plans for a more comfortable retirement than today.
	LifestyleFat LifestyleType = "fat"
)

// Valid reports whether the lifestyle tier is one of the known values.
func (l LifestyleType) Valid() bool {
	switch l {
	case LifestyleLean, LifestyleStandard, LifestyleFat:
		return true
	}
	return false
}

// Profile holds the demographic and financial inputs for a FIRE projection.
// All monetary fields share a single currency unit.
type Profile struct {
	UpdatedAt             time.Time
	LifestyleType         LifestyleType
	CurrentAge            int
	FireAge               int // Target retirement age, must exceed CurrentAge
	Dependents            int
	CurrentMonthlyExpense float64
	CurrentNetWorth       float64
	MonthlySavings        float64 // Income minus expenses; may be negative
	HouseholdIncome       float64
}

// Metrics is the fully derived output of a FIRE projection run. Immutable
// once computed; persistence is the caller's concern.
type Metrics struct {
	ComputedAt                   time.Time
	LifestyleInflationAdjustment float64 // Percent, clamped to [5,20]
	SafeWithdrawalRate           float64 // One of the fixed tiers
	CorpusMultiplier             float64 // 100 / SWR
	PostFireMonthlyExpense       float64
	RequiredCorpus               float64
	ProjectedCorpusAtFire        float64
	MonthlySavingsNeeded         float64
	SavingsIncrease              float64 // Never negative
	SurplusDeficit               float64 // Signed: projected minus required
	YearsToFire                  float64
	IsOnTrack                    bool
}
