// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package models defines the domain types shared across Pulso.
//
// Two families of types live here:
//
//   - Historical input: HistoricalDataPoint and HistoricalSeries, the
//     per-day operational metrics the forecasting engine consumes.
//   - Derived output: PredictiveAnalytics and its parts (forecasts,
//     alerts, recommendations, temporal trends, sentiment summary),
//     recomputed fresh on every engine run and cached by the API layer.
//
// JSON field names follow the dashboard wire format (camelCase), so these
// structs marshal directly into API responses.
package models
