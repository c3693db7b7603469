// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package cache provides the thread-safe TTL cache that holds generated
// analytics aggregates for the staleness window. A fetch inside the
// window returns the cached aggregate; the first fetch after expiry
// recomputes.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/pulsolabs/pulso/internal/metrics"
)

// cleanupInterval is how often expired entries are swept. Expired
// entries are also dropped lazily on Get, so the sweep only bounds
// memory held by keys nobody asks for again.
const cleanupInterval = 5 * time.Minute

// entry is one cached value with its expiry.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	name    string
	done    chan struct{}
	stop    sync.Once
}

// New creates a cache with the given default TTL and starts the
// background sweep. The name labels this cache in Prometheus metrics.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		name:    name,
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		size := len(c.entries)
		c.mu.Unlock()
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
		return zero, false
	}

	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	size := len(c.entries)
	c.mu.Unlock()
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
}

// Delete removes one entry, used to force a recompute after ingest.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()
	if existed {
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
}

// Clear drops all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// Len reports the current entry count, including not-yet-swept expired
// entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweep.
func (c *Cache[V]) Close() {
	c.stop.Do(func() { close(c.done) })
}

func (c *Cache[V]) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache[V]) cleanup() {
	now := time.Now()
	c.mu.Lock()
	evicted := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	if evicted > 0 {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
}

// GenerateKey derives a stable cache key from a method name and its
// parameters. Params marshal via JSON and hash, so any comparable or
// composite parameter set works.
func GenerateKey(method string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
