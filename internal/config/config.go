// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package config loads and validates the Pulso configuration.
//
// Configuration is layered via Koanf v2, highest priority last:
// built-in defaults, then a YAML config file, then PULSO_* environment
// variables (PULSO_SERVER_PORT=8080 overrides server.port).
package config

import (
	"time"

	"github.com/pulsolabs/pulso/internal/predictive"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	State    StateConfig    `koanf:"state"`
	Auth     AuthConfig     `koanf:"auth"`
	Cache    CacheConfig    `koanf:"cache"`
	Engine   EngineConfig   `koanf:"engine"`
	Logging  LoggingConfig  `koanf:"logging"`
	Demo     DemoConfig     `koanf:"demo"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed origins for the dashboard frontend.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is requests per minute per client IP on data endpoints.
	RateLimit int `koanf:"rate_limit"`

	// RateLimitAuth is the stricter limit for credential endpoints.
	RateLimitAuth int `koanf:"rate_limit_auth"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	// Path is the database file; ":memory:" runs fully in-process.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// StateConfig configures the BadgerDB insight-state store.
type StateConfig struct {
	// Dir is the Badger directory; empty selects in-memory mode.
	Dir string `koanf:"dir"`

	// OverrideTTL bounds how long alert/recommendation overrides are
	// retained. Overrides only need to outlive the aggregate cache
	// window they refer to.
	OverrideTTL time.Duration `koanf:"override_ttl"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// AuthConfig configures JWT authentication.
type AuthConfig struct {
	// JWTSecret signs tokens; 32+ characters required.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// AdminUsername and AdminPassword are the bootstrap credentials for
	// the login endpoint. The password is bcrypt-compared, never logged.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
}

// CacheConfig configures the aggregate staleness window.
type CacheConfig struct {
	// TTL is how long a generated PredictiveAnalytics aggregate stays
	// fresh before the next fetch recomputes it.
	TTL time.Duration `koanf:"ttl"`
}

// EngineConfig carries the operator-tunable subset of the forecasting
// engine thresholds. Anything not exposed here keeps the calibrated
// default from predictive.DefaultConfig.
type EngineConfig struct {
	// HistoryDays is the default analysis window.
	HistoryDays int `koanf:"history_days"`

	ConversionWarn     float64 `koanf:"conversion_warn"`
	ConversionCritical float64 `koanf:"conversion_critical"`
	ResponseWarn       float64 `koanf:"response_warn"`
	ResponseCritical   float64 `koanf:"response_critical"`
	QualityWarn        float64 `koanf:"quality_warn"`
	QualityCritical    float64 `koanf:"quality_critical"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DemoConfig controls synthetic data seeding for evaluation setups.
type DemoConfig struct {
	Seed   bool   `koanf:"seed"`
	UserID string `koanf:"user_id"`
	Days   int    `koanf:"days"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8632,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:5173"},
			RateLimit:       300,
			RateLimitAuth:   10,
		},
		Database: DatabaseConfig{
			Path:      "/data/pulso.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		State: StateConfig{
			Dir:         "/data/pulso-state",
			OverrideTTL: time.Hour,
			GCInterval:  10 * time.Minute,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Cache: CacheConfig{
			// Reference staleness window: the dashboard treats a fetched
			// aggregate as valid for 10 minutes.
			TTL: 10 * time.Minute,
		},
		Engine: EngineConfig{
			HistoryDays:        30,
			ConversionWarn:     0.15,
			ConversionCritical: 0.10,
			ResponseWarn:       300,
			ResponseCritical:   600,
			QualityWarn:        3.5,
			QualityCritical:    3.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Demo: DemoConfig{
			Seed:   false,
			UserID: "demo",
			Days:   30,
		},
	}
}

// PredictiveConfig materializes the engine configuration, overlaying the
// operator-tunable alert thresholds on the calibrated defaults.
func (c EngineConfig) PredictiveConfig() predictive.Config {
	cfg := predictive.DefaultConfig()
	cfg.Alerts.ConversionWarn = c.ConversionWarn
	cfg.Alerts.ConversionCritical = c.ConversionCritical
	cfg.Alerts.ResponseWarn = c.ResponseWarn
	cfg.Alerts.ResponseCritical = c.ResponseCritical
	cfg.Alerts.QualityWarn = c.QualityWarn
	cfg.Alerts.QualityCritical = c.QualityCritical
	return cfg
}
