// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package history supplies historical metric series to the forecasting
// engine. The engine depends only on the Provider interface; the DuckDB
// store is the production implementation, and tests substitute fixtures.
package history

import (
	"context"
	"errors"

	"github.com/pulsolabs/pulso/internal/models"
)

var (
	// ErrNoData means the user has no historical samples yet. This is an
	// empty state, not a failure — the API layer renders it differently
	// from an upstream error.
	ErrNoData = errors.New("history: no data for user")

	// ErrUpstreamUnavailable means the data source itself failed.
	// Distinguishable from ErrNoData so the dashboard can offer a retry.
	ErrUpstreamUnavailable = errors.New("history: upstream unavailable")
)

// Provider supplies an ordered series of daily metric samples for a user.
// Implementations must return the trailing `days` samples ascending by
// date with no duplicates, ErrNoData when the user has none.
type Provider interface {
	Series(ctx context.Context, userID string, days int) (models.HistoricalSeries, error)
}
