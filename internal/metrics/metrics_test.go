// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordEngineAlerts(t *testing.T) {
	before := testutil.ToFloat64(EngineAlertsGenerated.WithLabelValues("conversion_drop", "high"))

	RecordEngineAlerts([]AlertSample{
		{Type: "conversion_drop", Severity: "high"},
		{Type: "conversion_drop", Severity: "high"},
		{Type: "response_time_increase", Severity: "medium"},
	})

	got := testutil.ToFloat64(EngineAlertsGenerated.WithLabelValues("conversion_drop", "high"))
	if got-before != 2 {
		t.Errorf("conversion_drop/high delta = %v, want 2", got-before)
	}
}

func TestCountersAreLabeled(t *testing.T) {
	// Incrementing with the documented label sets must not panic; a
	// cardinality mismatch would.
	APIRequestsTotal.WithLabelValues("GET", "/api/v1/analytics/predictive", "200").Inc()
	APIRateLimitHits.WithLabelValues("/api/v1/auth/login").Inc()
	CacheHits.WithLabelValues("analytics").Inc()
	CacheMisses.WithLabelValues("analytics").Inc()
	DBQueryErrors.WithLabelValues("series", "daily_metrics").Inc()
	EngineRunsTotal.WithLabelValues("ok").Inc()
	StateOverrides.WithLabelValues("alert").Inc()
	BreakerStateChanges.WithLabelValues("history", "closed", "open").Inc()
	AuthLogins.WithLabelValues("success").Inc()
}
