package fire

import (
	"testing"

	"github.com/rkotecha/fireplan/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAgeFactor(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{25, 3}, {30, 3}, {31, 2}, {40, 2}, {41, 0}, {50, 0}, {51, -2}, {65, -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ageFactor(tt.age), "age %d", tt.age)
	}
}

func TestDependentsFactor(t *testing.T) {
	tests := []struct {
		dependents int
		want       float64
	}{
		{0, 0}, {1, 2}, {2, 3}, {3, 5}, {7, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dependentsFactor(tt.dependents), "dependents %d", tt.dependents)
	}
}

func TestSavingsRateFactor(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{60, -5}, {50, -5}, {35, -2}, {30, -2}, {25, 0}, {20, 0}, {15, 2}, {10, 2}, {5, 5}, {0, 5}, {-20, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, savingsRateFactor(tt.rate), "rate %.0f", tt.rate)
	}
}

func TestSavingsRate_ZeroIncome(t *testing.T) {
	assert.Zero(t, savingsRate(50000, 0))
	assert.Zero(t, savingsRate(50000, -1))
	assert.InDelta(t, 50.0, savingsRate(50000, 100000), 1e-9)
	assert.InDelta(t, -10.0, savingsRate(-10000, 100000), 1e-9)
}

func TestLifestyleInflationAdjustment_Bounds(t *testing.T) {
	ages := []int{22, 30, 35, 45, 55, 65}
	dependents := []int{0, 1, 2, 3, 6, 10}
	savings := []float64{-20000, 0, 5000, 20000, 60000}
	tiers := []model.LifestyleType{model.LifestyleLean, model.LifestyleStandard, model.LifestyleFat}

	for _, age := range ages {
		for _, dep := range dependents {
			for _, sav := range savings {
				for _, tier := range tiers {
					p := model.Profile{
						CurrentAge:      age,
						Dependents:      dep,
						MonthlySavings:  sav,
						HouseholdIncome: 100000,
						LifestyleType:   tier,
					}
					lia := LifestyleInflationAdjustment(p)
					assert.GreaterOrEqual(t, lia, 5.0, "profile %+v", p)
					assert.LessOrEqual(t, lia, 20.0, "profile %+v", p)
				}
			}
		}
	}
}

func TestLifestyleInflationAdjustment_Clamping(t *testing.T) {
	// Young, big family, no savings, fat lifestyle: 8+3+5+5+10 = 31 -> 20.
	high := model.Profile{
		CurrentAge: 25, Dependents: 4, MonthlySavings: 0,
		HouseholdIncome: 100000, LifestyleType: model.LifestyleFat,
	}
	assert.Equal(t, 20.0, LifestyleInflationAdjustment(high))

	// Older, no dependents, heavy saver, lean: 8-2+0-5-5 = -4 -> 5.
	low := model.Profile{
		CurrentAge: 55, Dependents: 0, MonthlySavings: 60000,
		HouseholdIncome: 100000, LifestyleType: model.LifestyleLean,
	}
	assert.Equal(t, 5.0, LifestyleInflationAdjustment(low))
}
