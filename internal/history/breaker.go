// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package history

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/metrics"
	"github.com/pulsolabs/pulso/internal/models"
)

// BreakerProvider wraps a Provider with a circuit breaker so a failing
// data source degrades to a fast ErrUpstreamUnavailable instead of
// piling up timed-out queries behind the dashboard.
//
// ErrNoData passes through without counting as a failure: an empty
// workspace is a valid answer, not a sign the store is unhealthy.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[models.HistoricalSeries]
	name  string
}

// NewBreakerProvider wraps inner. The breaker opens after a 60% failure
// rate over at least 10 requests and probes again after 30 seconds.
func NewBreakerProvider(name string, inner Provider) *BreakerProvider {
	cb := gobreaker.NewCircuitBreaker[models.HistoricalSeries](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := breakerStateString(from), breakerStateString(to)
			logging.Warn().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("history breaker state change")
			metrics.BreakerStateChanges.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoData)
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, name: name}
}

// Series implements Provider.
func (b *BreakerProvider) Series(ctx context.Context, userID string, days int) (models.HistoricalSeries, error) {
	series, err := b.cb.Execute(func() (models.HistoricalSeries, error) {
		return b.inner.Series(ctx, userID, days)
	})
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, ErrNoData
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.BreakerRejections.WithLabelValues(b.name).Inc()
			return nil, ErrUpstreamUnavailable
		}
		logging.Err(err).Str("user_id", userID).Msg("history query failed")
		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}
	return series, nil
}

func breakerStateString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
