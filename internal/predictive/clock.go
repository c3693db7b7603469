// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. The statistical core is pure; only
// alert and recommendation records carry timestamps, and isolating the
// clock here keeps the rest of the engine byte-for-byte reproducible.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints opaque identifiers for alerts and recommendations.
// Identifiers are unique per run, not stable across runs.
type IDGenerator interface {
	NewID(prefix string) string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall-clock Clock used in production.
func SystemClock() Clock { return systemClock{} }

type uuidGenerator struct{}

func (uuidGenerator) NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

// UUIDGenerator returns the UUID-backed IDGenerator used in production.
func UUIDGenerator() IDGenerator { return uuidGenerator{} }
