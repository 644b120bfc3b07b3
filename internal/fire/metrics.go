package fire

import (
	"fmt"
	"time"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
)

// Validate checks the documented preconditions for a projection. The engine
// itself assumes well-formed input; commands and handlers call this first.
func Validate(p model.Profile) error {
	if p.CurrentAge <= 0 {
		return fmt.Errorf("%w: current age must be positive", common.ErrInvalidInput)
	}
	if p.FireAge <= p.CurrentAge {
		return fmt.Errorf("%w: target retirement age %d must exceed current age %d",
			common.ErrInvalidInput, p.FireAge, p.CurrentAge)
	}
	if p.CurrentNetWorth < 0 {
		return fmt.Errorf("%w: net worth cannot be negative", common.ErrInvalidInput)
	}
	if p.CurrentMonthlyExpense < 0 {
		return fmt.Errorf("%w: monthly expense cannot be negative", common.ErrInvalidInput)
	}
	if p.Dependents < 0 {
		return fmt.Errorf("%w: dependents cannot be negative", common.ErrInvalidInput)
	}
	if p.LifestyleType != "" && !p.LifestyleType.Valid() {
		return fmt.Errorf("%w: unknown lifestyle type %q", common.ErrInvalidInput, p.LifestyleType)
	}
	return nil
}

// Calculate runs the full projection with the horizon derived from the age
// difference.
func Calculate(p model.Profile) model.Metrics {
	return CalculateWithHorizon(p, float64(p.FireAge-p.CurrentAge))
}

// CalculateWithHorizon runs the full projection over an explicit, possibly
// fractional, number of years. Callers that know the exact target date can
// pass a fractional horizon and get identical semantics to the age-derived
// path.
func CalculateWithHorizon(p model.Profile, yearsToFire float64) model.Metrics {
	lia := LifestyleInflationAdjustment(p)
	swr := SafeWithdrawalRate(p.FireAge)
	multiplier := CorpusMultiplier(swr)

	postFireMonthly := p.CurrentMonthlyExpense * (1 + lia/100)
	inflatedAnnual := inflateExpense(postFireMonthly*12, yearsToFire)
	requiredCorpus := inflatedAnnual * multiplier

	projected := futureValueLumpSum(p.CurrentNetWorth, yearsToFire) +
		futureValueMonthlySavings(p.MonthlySavings, yearsToFire)

	surplusDeficit := projected - requiredCorpus
	onTrack := projected >= requiredCorpus

	// On-track runs need nothing beyond the current contribution; off-track
	// runs with no horizon left cannot be solved for a monthly amount.
	needed := p.MonthlySavings
	if !onTrack && yearsToFire > 0 {
		needed = requiredMonthlySavings(
			requiredCorpus-futureValueLumpSum(p.CurrentNetWorth, yearsToFire),
			yearsToFire)
	}

	increase := needed - p.MonthlySavings
	if increase < 0 {
		increase = 0
	}

	return model.Metrics{
		ComputedAt:                   time.Now(),
		LifestyleInflationAdjustment: lia,
		SafeWithdrawalRate:           swr,
		CorpusMultiplier:             multiplier,
		PostFireMonthlyExpense:       postFireMonthly,
		RequiredCorpus:               requiredCorpus,
		ProjectedCorpusAtFire:        projected,
		IsOnTrack:                    onTrack,
		MonthlySavingsNeeded:         needed,
		SavingsIncrease:              increase,
		SurplusDeficit:               surplusDeficit,
		YearsToFire:                  yearsToFire,
	}
}
