// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package insightstate persists user actions on engine output. Alerts
// and recommendations are recomputed from history on every engine run,
// so dismissing an alert or applying a recommendation cannot be stored
// on the aggregate itself; this package keeps those overrides in
// BadgerDB and overlays them onto fresh engine output.
package insightstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/pulsolabs/pulso/internal/config"
	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/metrics"
	"github.com/pulsolabs/pulso/internal/models"
)

// Key layout: <prefix><userID>:<insightID>.
const (
	alertKeyPrefix = "alert:"
	recKeyPrefix   = "rec:"
)

// ErrNotFound means no override exists for the given insight.
var ErrNotFound = errors.New("insightstate: override not found")

// override is the stored value for one insight.
type override struct {
	// Value is isActive for alerts, applied for recommendations.
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the BadgerDB-backed override store.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens the store. An empty directory selects Badger's in-memory
// mode, which loses overrides on restart but needs no volume.
func Open(cfg *config.StateConfig) (*Store, error) {
	var opts badger.Options
	if cfg.Dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
		opts.ValueLogFileSize = 16 << 20
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening insight state at %q: %w", cfg.Dir, err)
	}

	logging.Info().Str("dir", cfg.Dir).Bool("in_memory", cfg.Dir == "").
		Msg("insight state store ready")
	return &Store{db: db, ttl: cfg.OverrideTTL}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func alertKey(userID, alertID string) []byte {
	return []byte(alertKeyPrefix + userID + ":" + alertID)
}

func recKey(userID, recID string) []byte {
	return []byte(recKeyPrefix + userID + ":" + recID)
}

func (s *Store) setOverride(key []byte, value bool) error {
	data, err := json.Marshal(override{Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshaling override: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// SetAlertActive records whether an alert is shown on the dashboard.
// Deactivation is the common case; reactivating before expiry works too.
func (s *Store) SetAlertActive(ctx context.Context, userID, alertID string, active bool) error {
	if err := s.setOverride(alertKey(userID, alertID), active); err != nil {
		return err
	}
	metrics.StateOverrides.WithLabelValues("alert").Inc()
	return nil
}

// MarkRecommendationApplied records that the user acted on a
// recommendation.
func (s *Store) MarkRecommendationApplied(ctx context.Context, userID, recID string) error {
	if err := s.setOverride(recKey(userID, recID), true); err != nil {
		return err
	}
	metrics.StateOverrides.WithLabelValues("recommendation").Inc()
	return nil
}

// AlertActive reads one alert override. ErrNotFound when none exists.
func (s *Store) AlertActive(ctx context.Context, userID, alertID string) (bool, error) {
	return s.getOverride(alertKey(userID, alertID))
}

// RecommendationApplied reads one recommendation override.
func (s *Store) RecommendationApplied(ctx context.Context, userID, recID string) (bool, error) {
	return s.getOverride(recKey(userID, recID))
}

func (s *Store) getOverride(key []byte) (bool, error) {
	var ov override
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("reading override: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ov)
		})
	})
	if err != nil {
		return false, err
	}
	return ov.Value, nil
}

// overrides collects all stored overrides under a prefix for one user.
func (s *Store) overrides(prefix string, userID string) (map[string]bool, error) {
	scan := []byte(prefix + userID + ":")
	out := make(map[string]bool)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = scan
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(scan):])
			var ov override
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &ov)
			}); err != nil {
				return fmt.Errorf("reading override %q: %w", item.Key(), err)
			}
			out[id] = ov.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Overlay applies the user's stored overrides to freshly generated
// analytics. The engine output is deterministic for a given series, so
// insight IDs are stable across runs within the cache window.
func (s *Store) Overlay(ctx context.Context, userID string, analytics *models.PredictiveAnalytics) error {
	alertOverrides, err := s.overrides(alertKeyPrefix, userID)
	if err != nil {
		return err
	}
	recOverrides, err := s.overrides(recKeyPrefix, userID)
	if err != nil {
		return err
	}

	for i := range analytics.PredictiveAlerts {
		if active, ok := alertOverrides[analytics.PredictiveAlerts[i].ID]; ok {
			analytics.PredictiveAlerts[i].IsActive = active
		}
	}
	for i := range analytics.MLRecommendations {
		if applied, ok := recOverrides[analytics.MLRecommendations[i].ID]; ok {
			analytics.MLRecommendations[i].Applied = applied
		}
	}
	return nil
}

// RunGC runs Badger's value log garbage collector until ctx is done.
// Badger requires the caller to drive GC; it never runs on its own.
func (s *Store) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Rerun while GC makes progress; ErrNoRewrite ends the cycle.
			for {
				if err := s.db.RunValueLogGC(0.5); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						logging.Err(err).Msg("insight state gc failed")
					}
					break
				}
			}
		}
	}
}
