// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import "math"

// Fit holds the result of an ordinary least squares regression.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// Project evaluates the fitted line at x.
func (f Fit) Project(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
//
// Degenerate inputs return the zero Fit rather than an error: mismatched
// lengths or fewer than two points yield {0, 0, 0}. A constant series
// (SStot = 0) reports R2 = 0, not 1 — a flat line explains nothing even
// when it passes through every point.
func LinearRegression(x, y []float64) Fit {
	n := len(x)
	if n != len(y) || n < 2 {
		return Fit{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return Fit{}
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	yMean := sumY / fn
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := y[i] - (slope*x[i] + intercept)
		ssRes += res * res
		tot := y[i] - yMean
		ssTot += tot * tot
	}

	r2 := 0.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}

	return Fit{Slope: slope, Intercept: intercept, R2: r2}
}

// DayIndices returns the implicit regressor 0..n-1 for a daily series.
func DayIndices(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// WeightedMovingAverage combines data with the supplied weights.
// Returns 0 when the lengths mismatch or the weight sum is zero.
func WeightedMovingAverage(data, weights []float64) float64 {
	if len(data) != len(weights) {
		return 0
	}

	var sum, weightSum float64
	for i, v := range data {
		sum += v * weights[i]
		weightSum += weights[i]
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// DetectSeasonality scans lags 1..min(7, n/2) for the dominant period of
// a series using normalized autocovariance against the global mean and
// variance. Returns the lag with the largest absolute correlation, or 0
// when the series is shorter than 7 points or has zero variance.
//
// This is a heuristic signal for advisory factor strings, not a rigorous
// periodogram; forecasts are never numerically adjusted by it.
func DetectSeasonality(data []float64) int {
	n := len(data)
	if n < 7 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if variance == 0 {
		return 0
	}

	maxLag := n / 2
	if maxLag > 7 {
		maxLag = 7
	}

	var maxCorrelation float64
	seasonality := 0
	for lag := 1; lag <= maxLag; lag++ {
		var correlation float64
		count := 0
		for i := lag; i < n; i++ {
			correlation += (data[i] - mean) * (data[i-lag] - mean)
			count++
		}
		if count == 0 {
			continue
		}
		correlation /= float64(count) * variance
		if math.Abs(correlation) > math.Abs(maxCorrelation) {
			maxCorrelation = correlation
			seasonality = lag
		}
	}

	return seasonality
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
