package fire

import "math"

// Fixed model assumptions. Hand-tuned for the Indian market; revisit if the
// macro picture shifts materially.
const (
	annualInflationRate = 0.06
	annualGrowthRate    = 0.12
)

// monthlyGrowthRate is the monthly equivalent of the annual pre-retirement
// growth assumption.
func monthlyGrowthRate() float64 {
	return math.Pow(1+annualGrowthRate, 1.0/12) - 1
}

// inflateExpense projects an annual expense forward by yearsToFire years of
// fixed inflation. The exponent is real-valued so callers may pass either an
// integer age difference or a fractional horizon from exact dates.
func inflateExpense(annualExpense, yearsToFire float64) float64 {
	return annualExpense * math.Pow(1+annualInflationRate, yearsToFire)
}

// futureValueLumpSum grows today's net worth at the assumed annual return.
func futureValueLumpSum(presentValue, yearsToFire float64) float64 {
	return presentValue * math.Pow(1+annualGrowthRate, yearsToFire)
}

// futureValueMonthlySavings is the annuity future value of a constant monthly
// contribution compounded at the monthly-equivalent rate. A non-positive
// month count contributes nothing; the formula divides by the monthly rate,
// so the guard also keeps a zero horizon well-defined.
func futureValueMonthlySavings(monthlySavings, yearsToFire float64) float64 {
	months := yearsToFire * 12
	if months <= 0 {
		return 0
	}
	r := monthlyGrowthRate()
	return monthlySavings * (math.Pow(1+r, months) - 1) / r
}

// requiredMonthlySavings solves the annuity formula backwards: the constant
// monthly contribution that closes the gap between the required corpus and
// the future value of current assets. Callers must ensure yearsToFire > 0.
func requiredMonthlySavings(gap, yearsToFire float64) float64 {
	if gap <= 0 {
		return 0
	}
	months := yearsToFire * 12
	r := monthlyGrowthRate()
	return gap * r / (math.Pow(1+r, months) - 1)
}
