// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package models

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates (no time component).
const DateFormat = "2006-01-02"

// Date is a calendar day that marshals as "YYYY-MM-DD".
// Historical samples are daily aggregates; carrying a full timestamp on
// the wire would suggest intra-day precision the data does not have.
type Date struct {
	time.Time
}

// NewDate returns a Date truncated to midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String returns the wire representation.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// AddDays returns the date offset by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// IntentBreakdown maps intent categories to real-valued proportions.
// Proportions are independent estimates and are not required to sum to 1.
type IntentBreakdown struct {
	Purchase  float64 `json:"purchase"`
	Support   float64 `json:"support"`
	Complaint float64 `json:"complaint"`
	Inquiry   float64 `json:"inquiry"`
}

// HistoricalDataPoint is one calendar day of operational metrics for a
// single workspace.
//
// Invariants assumed by consumers (not enforced on ingest of derived data):
// Conversions <= Attendances, ResponseTime > 0, QualityScore in [1,5],
// Sentiment in [0,1].
type HistoricalDataPoint struct {
	Date         Date            `json:"date"`
	Attendances  int             `json:"attendances"`
	Conversions  int             `json:"conversions"`
	ResponseTime float64         `json:"responseTime"` // seconds, mean latency
	QualityScore float64         `json:"qualityScore"` // 1-5 rating
	Sentiment    float64         `json:"sentiment"`    // 0-1
	Intents      IntentBreakdown `json:"intents"`
}

// ConversionRate returns the per-day conversion ratio, 0 when the day had
// no attendances.
func (p HistoricalDataPoint) ConversionRate() float64 {
	if p.Attendances == 0 {
		return 0
	}
	return float64(p.Conversions) / float64(p.Attendances)
}

// HistoricalSeries is an ordered sequence of daily samples, ascending by
// date with no duplicate dates. Length >= 2 is needed for a meaningful
// regression fit; shorter series degrade to zero-slope forecasts.
type HistoricalSeries []HistoricalDataPoint

// Attendances extracts the attendance column.
func (s HistoricalSeries) Attendances() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = float64(p.Attendances)
	}
	return out
}

// ConversionRates extracts the derived per-day conversion ratio column.
func (s HistoricalSeries) ConversionRates() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ConversionRate()
	}
	return out
}

// ResponseTimes extracts the response-time column in seconds.
func (s HistoricalSeries) ResponseTimes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ResponseTime
	}
	return out
}

// Tail returns the trailing n samples, or the whole series when shorter.
func (s HistoricalSeries) Tail(n int) HistoricalSeries {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
