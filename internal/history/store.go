// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/pulsolabs/pulso/internal/config"
	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/metrics"
	"github.com/pulsolabs/pulso/internal/models"
)

// defaultQueryTimeout bounds store queries when the caller's context has
// no deadline of its own.
const defaultQueryTimeout = 30 * time.Second

// Store is the DuckDB-backed Provider implementation plus the ingest
// surface for daily metric samples.
type Store struct {
	conn *sql.DB
}

// Open connects to DuckDB and runs migrations.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	dsn := cfg.Path
	params := url.Values{}
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	threads := cfg.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	params.Set("threads", fmt.Sprintf("%d", threads))
	if encoded := params.Encode(); encoded != "" {
		dsn = dsn + "?" + encoded
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb at %s: %w", cfg.Path, err)
	}
	// DuckDB is embedded and single-file; a small pool avoids write
	// contention on the same handle.
	conn.SetMaxOpenConns(4)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logging.Info().Str("path", cfg.Path).Msg("history store ready")
	return s, nil
}

// OpenMemory opens an in-memory store, used by tests and demo setups.
func OpenMemory() (*Store, error) {
	return Open(&config.DatabaseConfig{Path: ":memory:"})
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS daily_metrics (
	user_id           VARCHAR NOT NULL,
	date              DATE    NOT NULL,
	attendances       INTEGER NOT NULL,
	conversions       INTEGER NOT NULL,
	response_time_sec DOUBLE  NOT NULL,
	quality_score     DOUBLE  NOT NULL,
	sentiment         DOUBLE  NOT NULL,
	intent_purchase   DOUBLE  NOT NULL DEFAULT 0,
	intent_support    DOUBLE  NOT NULL DEFAULT 0,
	intent_complaint  DOUBLE  NOT NULL DEFAULT 0,
	intent_inquiry    DOUBLE  NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, date)
)`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrating daily_metrics: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

// ensureContext attaches the default timeout when the caller provided no
// deadline.
func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// UpsertDay inserts or replaces one daily sample for a user.
func (s *Store) UpsertDay(ctx context.Context, userID string, p models.HistoricalDataPoint) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	const query = `
INSERT INTO daily_metrics (
	user_id, date, attendances, conversions, response_time_sec,
	quality_score, sentiment,
	intent_purchase, intent_support, intent_complaint, intent_inquiry
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, date) DO UPDATE SET
	attendances = excluded.attendances,
	conversions = excluded.conversions,
	response_time_sec = excluded.response_time_sec,
	quality_score = excluded.quality_score,
	sentiment = excluded.sentiment,
	intent_purchase = excluded.intent_purchase,
	intent_support = excluded.intent_support,
	intent_complaint = excluded.intent_complaint,
	intent_inquiry = excluded.intent_inquiry`

	_, err := s.conn.ExecContext(ctx, query,
		userID, p.Date.Time, p.Attendances, p.Conversions, p.ResponseTime,
		p.QualityScore, p.Sentiment,
		p.Intents.Purchase, p.Intents.Support, p.Intents.Complaint, p.Intents.Inquiry,
	)
	metrics.DBQueryDuration.WithLabelValues("upsert", "daily_metrics").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "daily_metrics").Inc()
		return fmt.Errorf("upserting daily metrics for %s on %s: %w", userID, p.Date, err)
	}
	return nil
}

// Series returns the trailing days of samples for the user, ascending by
// date. Implements Provider.
func (s *Store) Series(ctx context.Context, userID string, days int) (models.HistoricalSeries, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	const query = `
SELECT date, attendances, conversions, response_time_sec,
	quality_score, sentiment,
	intent_purchase, intent_support, intent_complaint, intent_inquiry
FROM daily_metrics
WHERE user_id = ?
ORDER BY date DESC
LIMIT ?`

	rows, err := s.conn.QueryContext(ctx, query, userID, days)
	metrics.DBQueryDuration.WithLabelValues("series", "daily_metrics").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("series", "daily_metrics").Inc()
		return nil, fmt.Errorf("querying series for %s: %w", userID, err)
	}
	defer rows.Close()

	var series models.HistoricalSeries
	for rows.Next() {
		var p models.HistoricalDataPoint
		var date time.Time
		if err := rows.Scan(
			&date, &p.Attendances, &p.Conversions, &p.ResponseTime,
			&p.QualityScore, &p.Sentiment,
			&p.Intents.Purchase, &p.Intents.Support, &p.Intents.Complaint, &p.Intents.Inquiry,
		); err != nil {
			return nil, fmt.Errorf("scanning daily metrics row: %w", err)
		}
		p.Date = models.DateOf(date)
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily metrics: %w", err)
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}

	// The query reads newest-first for the LIMIT; flip to ascending.
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series, nil
}

// CountDays reports how many samples a user has, used by readiness and
// the demo seeder's idempotency check.
func (s *Store) CountDays(ctx context.Context, userID string) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM daily_metrics WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting days for %s: %w", userID, err)
	}
	return count, nil
}

// Ping verifies the database handle, used by the readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	return s.conn.PingContext(ctx)
}
