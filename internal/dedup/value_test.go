package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		v1        float64
		v2        float64
		tolerance float64
		want      float64
	}{
		{name: "both zero", v1: 0, v2: 0, tolerance: 5, want: 100},
		{name: "one zero", v1: 0, v2: 5, tolerance: 5, want: 0},
		{name: "one zero reversed", v1: 5, v2: 0, tolerance: 50, want: 0},
		{name: "identical values", v1: 100000, v2: 100000, tolerance: 5, want: 100},
		{name: "inside tolerance band", v1: 100, v2: 104, tolerance: 5, want: 100},
		{name: "at tolerance boundary", v1: 100, v2: 105, tolerance: 5, want: 100},
		// pctDiff 9.09..., decay 2 * (9.09 - 5) = 8.18 off 100.
		{name: "linear decay past tolerance", v1: 100, v2: 110, tolerance: 5, want: 100 - (100.0/11.0-5)*2},
		// pctDiff 50, similarity 100 - 45*2 = 10.
		{name: "half apart", v1: 100, v2: 200, tolerance: 5, want: 10},
		{name: "clamped at zero", v1: 100, v2: 400, tolerance: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ValueSimilarity(tt.v1, tt.v2, tt.tolerance), 1e-9)
		})
	}
}

func TestValueSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]float64{{100, 110}, {0, 5}, {250000, 245000}, {1, 1000}}
	for _, p := range pairs {
		assert.InDelta(t,
			ValueSimilarity(p[0], p[1], 5),
			ValueSimilarity(p[1], p[0], 5), 1e-9,
			"symmetry for %v", p)
	}
}
