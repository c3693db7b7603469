// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package predictive implements the forecasting and insight engine.
//
// The engine is a deterministic statistical pipeline over a historical
// series of daily operational metrics. It is built from small composable
// primitives (ordinary least squares regression, weighted moving average,
// an autocorrelation-based seasonality scan, a keyword sentiment
// classifier) that feed per-metric forecasters, a threshold alert
// generator, a heuristic recommendation generator, and temporal pattern
// aggregators. Engine.Generate sequences them and assembles the
// PredictiveAnalytics aggregate.
//
// # Determinism
//
// Every statistical function is a pure transform of its inputs. The only
// non-deterministic outputs are identifiers and timestamps, which are
// isolated behind the Clock and IDGenerator interfaces; tests inject
// fixed implementations and production composes the wall clock with UUIDs
// at the boundary. Given the same series and the same Clock/IDGenerator,
// two runs produce byte-identical aggregates.
//
// # Degenerate input
//
// Statistical edge cases never surface as errors: a series shorter than
// two points yields a zero fit, zero variance yields r2 = 0, an empty
// keyword match yields a neutral sentiment. Only an empty series is
// rejected, because no aggregate can be assembled from nothing.
package predictive
