// Package fire implements the deterministic FIRE (Financial Independence,
// Retire Early) projection engine. Every function is pure arithmetic over its
// inputs; validation happens at the caller boundary, not in here.
package fire

import "github.com/rkotecha/fireplan/internal/model"

// ageFactor reflects that younger people should expect more lifestyle change
// before retirement.
func ageFactor(age int) float64 {
	switch {
	case age <= 30:
		return 3
	case age <= 40:
		return 2
	case age <= 50:
		return 0
	default:
		return -2
	}
}

// dependentsFactor grows with household size.
func dependentsFactor(dependents int) float64 {
	switch {
	case dependents <= 0:
		return 0
	case dependents == 1:
		return 2
	case dependents == 2:
		return 3
	default:
		return 5
	}
}

// savingsRateFactor is inversely related to the savings rate: someone already
// living well below their means needs less lifestyle-inflation buffer.
// savingsRate is a percentage of household income.
func savingsRateFactor(savingsRate float64) float64 {
	switch {
	case savingsRate >= 50:
		return -5
	case savingsRate >= 30:
		return -2
	case savingsRate >= 20:
		return 0
	case savingsRate >= 10:
		return 2
	default:
		return 5
	}
}

// lifestyleMultiplier is the fixed adjustment per planned retirement tier.
func lifestyleMultiplier(tier model.LifestyleType) float64 {
	switch tier {
	case model.LifestyleLean:
		return -5
	case model.LifestyleFat:
		return 10
	default:
		return 0
	}
}

// savingsRate converts monthly savings into a percentage of household income.
// Zero or negative income yields a 0% rate rather than a division by zero.
func savingsRate(monthlySavings, householdIncome float64) float64 {
	if householdIncome <= 0 {
		return 0
	}
	return monthlySavings / householdIncome * 100
}
