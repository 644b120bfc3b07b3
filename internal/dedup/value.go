package dedup

import "math"

// valueDecayFactor controls how steeply similarity falls once the percentage
// difference leaves the tolerance band. At 2, similarity hits 0 when the
// difference exceeds tolerance + 50 percentage points. Hand-tuned constant.
const valueDecayFactor = 2.0

// ValueSimilarity scores two monetary values in [0,100]. Values within
// tolerancePct of each other are indistinguishable; beyond that the score
// decays linearly. A single zero value never matches a non-zero one, and two
// zeros are treated as identical.
func ValueSimilarity(v1, v2, tolerancePct float64) float64 {
	if v1 == 0 || v2 == 0 {
		if v1 == 0 && v2 == 0 {
			return 100
		}
		return 0
	}

	larger := math.Max(v1, v2)
	pctDiff := math.Abs(v1-v2) / larger * 100

	if pctDiff <= tolerancePct {
		return 100
	}
	return math.Max(0, 100-(pctDiff-tolerancePct)*valueDecayFactor)
}
