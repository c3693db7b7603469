// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package history

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/models"
)

// demoRandSeed keeps seeded demo data identical across restarts.
const demoRandSeed = 8632

// SeedDemo populates the store with synthetic engagement data ending
// yesterday, so the dashboard has something to show on a fresh install.
// It is idempotent: a user with any existing data is left untouched.
func SeedDemo(ctx context.Context, store *Store, userID string, days int) error {
	count, err := store.CountDays(ctx, userID)
	if err != nil {
		return fmt.Errorf("checking demo seed: %w", err)
	}
	if count > 0 {
		logging.Debug().Str("user_id", userID).Int("existing_days", count).
			Msg("demo seed skipped, data present")
		return nil
	}

	rng := rand.New(rand.NewSource(demoRandSeed))
	start := models.DateOf(time.Now().UTC()).AddDays(-days)

	for i := 0; i < days; i++ {
		date := start.AddDays(i)

		// Weekday volume dominates; weekends dip. A mild upward trend
		// with noise gives the regression something to find.
		weekendFactor := 1.0
		switch date.Time.Weekday() {
		case time.Saturday, time.Sunday:
			weekendFactor = 0.6
		}
		trendFactor := 1 + float64(i)*0.02 + (rng.Float64()-0.5)*0.3

		attendances := int(math.Round((50 + rng.Float64()*100) * weekendFactor * trendFactor))
		if attendances < 0 {
			attendances = 0
		}
		conversionRate := 0.15 + rng.Float64()*0.2
		conversions := int(math.Round(float64(attendances) * conversionRate))

		point := models.HistoricalDataPoint{
			Date:         date,
			Attendances:  attendances,
			Conversions:  conversions,
			ResponseTime: 60 + rng.Float64()*300,
			QualityScore: 3.5 + rng.Float64()*1.5,
			Sentiment:    0.4 + rng.Float64()*0.6,
			Intents: models.IntentBreakdown{
				Purchase:  0.3 + rng.Float64()*0.4,
				Support:   0.2 + rng.Float64()*0.3,
				Complaint: 0.05 + rng.Float64()*0.15,
				Inquiry:   0.1 + rng.Float64()*0.2,
			},
		}
		if err := store.UpsertDay(ctx, userID, point); err != nil {
			return fmt.Errorf("seeding day %s: %w", date, err)
		}
	}

	logging.Info().Str("user_id", userID).Int("days", days).Msg("demo data seeded")
	return nil
}
