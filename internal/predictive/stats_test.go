// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name          string
		x, y          []float64
		wantSlope     float64
		wantIntercept float64
		wantR2        float64
	}{
		{
			name:          "perfect line",
			x:             []float64{0, 1, 2, 3, 4},
			y:             []float64{50, 53, 56, 59, 62},
			wantSlope:     3,
			wantIntercept: 50,
			wantR2:        1,
		},
		{
			name:          "perfect negative line",
			x:             []float64{0, 1, 2, 3},
			y:             []float64{10, 8, 6, 4},
			wantSlope:     -2,
			wantIntercept: 10,
			wantR2:        1,
		},
		{
			name:          "constant series reports r2 zero not one",
			x:             []float64{0, 1, 2, 3, 4},
			y:             []float64{7, 7, 7, 7, 7},
			wantSlope:     0,
			wantIntercept: 7,
			wantR2:        0,
		},
		{
			name: "single point degenerates to zero fit",
			x:    []float64{0},
			y:    []float64{42},
		},
		{
			name: "empty input degenerates to zero fit",
			x:    []float64{},
			y:    []float64{},
		},
		{
			name: "mismatched lengths degenerate to zero fit",
			x:    []float64{0, 1, 2},
			y:    []float64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := LinearRegression(tt.x, tt.y)
			if !almostEqual(fit.Slope, tt.wantSlope) {
				t.Errorf("Slope = %v, want %v", fit.Slope, tt.wantSlope)
			}
			if !almostEqual(fit.Intercept, tt.wantIntercept) {
				t.Errorf("Intercept = %v, want %v", fit.Intercept, tt.wantIntercept)
			}
			if !almostEqual(fit.R2, tt.wantR2) {
				t.Errorf("R2 = %v, want %v", fit.R2, tt.wantR2)
			}
		})
	}
}

// The OLS closed form must minimize the sum of squared residuals: any
// perturbation of the fitted parameters increases the residual sum.
func TestLinearRegressionMinimizesResiduals(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := []float64{52, 49, 61, 58, 63, 70, 66, 74, 71, 80}

	fit := LinearRegression(x, y)

	ssq := func(slope, intercept float64) float64 {
		var sum float64
		for i := range x {
			r := y[i] - (slope*x[i] + intercept)
			sum += r * r
		}
		return sum
	}

	base := ssq(fit.Slope, fit.Intercept)
	for _, delta := range []float64{-0.5, -0.01, 0.01, 0.5} {
		if ssq(fit.Slope+delta, fit.Intercept) < base {
			t.Errorf("perturbing slope by %v reduced residual sum", delta)
		}
		if ssq(fit.Slope, fit.Intercept+delta) < base {
			t.Errorf("perturbing intercept by %v reduced residual sum", delta)
		}
	}
}

func TestFitProject(t *testing.T) {
	fit := Fit{Slope: 2, Intercept: 1}
	if got := fit.Project(10); got != 21 {
		t.Errorf("Project(10) = %v, want 21", got)
	}
}

func TestWeightedMovingAverage(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		weights []float64
		want    float64
	}{
		{
			name:    "uniform weights reduce to mean",
			data:    []float64{2, 4, 6},
			weights: []float64{1, 1, 1},
			want:    4,
		},
		{
			name:    "recent-heavy weights",
			data:    []float64{1, 2, 3},
			weights: []float64{1, 2, 3},
			want:    14.0 / 6.0,
		},
		{
			name:    "zero weight sum returns zero regardless of data",
			data:    []float64{100, 200, 300},
			weights: []float64{0, 0, 0},
			want:    0,
		},
		{
			name:    "length mismatch returns zero",
			data:    []float64{1, 2, 3},
			weights: []float64{1, 2},
			want:    0,
		},
		{
			name:    "empty inputs",
			data:    []float64{},
			weights: []float64{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedMovingAverage(tt.data, tt.weights); !almostEqual(got, tt.want) {
				t.Errorf("WeightedMovingAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectSeasonality(t *testing.T) {
	weekly := make([]float64, 28)
	for i := range weekly {
		// Busy weekdays, quiet weekend: exact period of 7.
		if i%7 == 5 || i%7 == 6 {
			weekly[i] = 4
		} else {
			weekly[i] = 10
		}
	}

	tests := []struct {
		name string
		data []float64
		want int
	}{
		{
			name: "weekly pattern detected at lag seven",
			data: weekly,
			want: 7,
		},
		{
			name: "too short returns zero",
			data: []float64{1, 2, 3, 4, 5, 6},
			want: 0,
		},
		{
			name: "zero variance returns zero",
			data: []float64{5, 5, 5, 5, 5, 5, 5, 5},
			want: 0,
		},
		{
			name: "alternating pattern detected at lag one or two",
			data: []float64{1, 9, 1, 9, 1, 9, 1, 9, 1, 9},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeasonality(tt.data); got != tt.want {
				t.Errorf("DetectSeasonality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectSeasonalityLagCap(t *testing.T) {
	// n/2 < 7 caps the scan: with 10 points only lags 1..5 are scanned,
	// so a period-7 signal cannot be reported.
	data := []float64{10, 10, 10, 10, 10, 4, 4, 10, 10, 10}
	if got := DetectSeasonality(data); got > 5 {
		t.Errorf("DetectSeasonality() = %v, want lag <= 5 for 10-point series", got)
	}
}
