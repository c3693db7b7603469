// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"testing"
	"time"

	"github.com/pulsolabs/pulso/internal/models"
)

func TestHourlyTrendsShape(t *testing.T) {
	e := testEngine(DefaultConfig())
	trends := e.hourlyTrends()

	if len(trends) != 24 {
		t.Fatalf("got %d hourly trends, want 24", len(trends))
	}
	for hour, trend := range trends {
		if trend.Hour != hour {
			t.Errorf("trends[%d].Hour = %d", hour, trend.Hour)
		}
		want := e.cfg.Temporal.OffHourAttendances
		if hour >= 8 && hour <= 18 {
			want = e.cfg.Temporal.BusinessHourAttendances
		}
		if !almostEqual(trend.AverageAttendances, want) {
			t.Errorf("hour %d attendances = %v, want %v", hour, trend.AverageAttendances, want)
		}
	}
}

func TestHourlyTrendsDeterministic(t *testing.T) {
	e := testEngine(DefaultConfig())
	first := e.hourlyTrends()
	second := e.hourlyTrends()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("hourly trends differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDailyTrendsGroupsByWeekday(t *testing.T) {
	e := testEngine(DefaultConfig())

	// Two full weeks starting on a Monday: every weekday has exactly two
	// samples. Mondays carry 100 and 120 attendances, all other days 50.
	monday := models.NewDate(2026, time.June, 1)
	series := testSeries(monday, 14, func(i int) models.HistoricalDataPoint {
		p := healthyDay(i)
		switch i {
		case 0:
			p.Attendances = 100
		case 7:
			p.Attendances = 120
		default:
			p.Attendances = 50
		}
		return p
	})

	trends := e.dailyTrends(series)
	if len(trends) != 7 {
		t.Fatalf("got %d daily trends, want 7", len(trends))
	}

	const mondayIndex = 1
	if got := trends[mondayIndex].AverageAttendances; !almostEqual(got, 110) {
		t.Errorf("Monday average = %v, want 110", got)
	}
	if got := trends[2].AverageAttendances; !almostEqual(got, 50) {
		t.Errorf("Tuesday average = %v, want 50", got)
	}
	for day, trend := range trends {
		if trend.DayOfWeek != day {
			t.Errorf("trends[%d].DayOfWeek = %d", day, trend.DayOfWeek)
		}
		// Two samples per bucket: confidence 0.5 + 0.1*2.
		if !almostEqual(trend.Confidence, 0.7) {
			t.Errorf("day %d confidence = %v, want 0.7", day, trend.Confidence)
		}
	}
}

func TestDailyTrendsEmptyBuckets(t *testing.T) {
	e := testEngine(DefaultConfig())

	// Three days starting Monday: Thursday through Sunday have no samples.
	monday := models.NewDate(2026, time.June, 1)
	series := testSeries(monday, 3, healthyDay)

	trends := e.dailyTrends(series)
	if got := trends[0]; got.AverageAttendances != 0 || got.Confidence != 0 {
		t.Errorf("Sunday bucket = %+v, want zeros with zero confidence", got)
	}
	if got := trends[1].AverageAttendances; !almostEqual(got, 100) {
		t.Errorf("Monday average = %v, want 100", got)
	}
}

func TestDailyTrendsConfidenceCeiling(t *testing.T) {
	e := testEngine(DefaultConfig())

	// Ten Mondays: confidence 0.5 + 0.1*10 clamps to the 0.95 ceiling.
	monday := models.NewDate(2026, time.June, 1)
	series := make(models.HistoricalSeries, 10)
	for i := range series {
		p := healthyDay(i)
		p.Date = monday.AddDays(7 * i)
		series[i] = p
	}

	trends := e.dailyTrends(series)
	if got := trends[1].Confidence; !almostEqual(got, 0.95) {
		t.Errorf("Monday confidence = %v, want 0.95", got)
	}
}
