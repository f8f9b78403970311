package milp

import "testing"

func TestMaxFunBranchPoint(t *testing.T) {
	tests := []struct {
		name        string
		c           []float64
		integrality []bool
		want        int
	}{
		{
			name:        "no integrality constraints",
			c:           []float64{1, 2, 3, 4, 5},
			integrality: []bool{false, false, false, false, false},
			want:        0,
		},
		{
			name:        "single integrality constraint",
			c:           []float64{1, 2, 3, 4, 5},
			integrality: []bool{false, false, true, false, false},
			want:        2,
		},
		{
			name:        "multiple, differing magnitudes",
			c:           []float64{1, 2, 3, 4, 5},
			integrality: []bool{true, true, true, true, false},
			want:        3,
		},
		{
			name:        "negative coefficients use absolute value",
			c:           []float64{-1, -10, 3},
			integrality: []bool{true, true, true},
			want:        1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := maxFunBranchPoint(tc.c, tc.integrality)
			if got != tc.want {
				t.Errorf("maxFunBranchPoint() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMostInfeasibleBranchPoint(t *testing.T) {
	tests := []struct {
		name        string
		x           []float64
		integrality []bool
		want        int
	}{
		{
			name:        "one variable closest to 0.5",
			x:           []float64{1.1, 2.5, 3.9},
			integrality: []bool{true, true, true},
			want:        1,
		},
		{
			name:        "ignores non-integer variables",
			x:           []float64{2.5, 3.1},
			integrality: []bool{false, true},
			want:        1,
		},
		{
			name:        "already integral values tie at distance 0.5, last tie wins",
			x:           []float64{2.0, 3.0},
			integrality: []bool{true, true},
			want:        1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mostInfeasibleBranchPoint(tc.x, tc.integrality)
			if got != tc.want {
				t.Errorf("mostInfeasibleBranchPoint() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFeasibleForIP(t *testing.T) {
	tests := []struct {
		name        string
		integrality []bool
		x           []float64
		want        bool
	}{
		{
			name:        "no integrality constraints always passes",
			integrality: []bool{false, false, false, false},
			x:           []float64{1, 2, 3, 4.5},
			want:        true,
		},
		{
			name:        "fractional value on a constrained variable fails",
			integrality: []bool{false, false, false, true},
			x:           []float64{1, 2, 3, 4.5},
			want:        false,
		},
		{
			name:        "all integral values on all constrained variables passes",
			integrality: []bool{true, true, true, true},
			x:           []float64{1, 2, 3, 4},
			want:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := feasibleForIP(tc.integrality, tc.x)
			if got != tc.want {
				t.Errorf("feasibleForIP() = %v, want %v", got, tc.want)
			}
		})
	}
}
