// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("cache TTL = %v, want the 10 minute staleness window", cfg.Cache.TTL)
	}
	if cfg.Engine.HistoryDays != 30 {
		t.Errorf("history days = %d, want 30", cfg.Engine.HistoryDays)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "short" },
			wantErr: "jwt_secret",
		},
		{
			name: "jwt without admin credentials",
			mutate: func(c *Config) {
				c.Auth.JWTSecret = strings.Repeat("s", 32)
			},
			wantErr: "admin_username",
		},
		{
			name:    "zero cache ttl",
			mutate:  func(c *Config) { c.Cache.TTL = 0 },
			wantErr: "cache.ttl",
		},
		{
			name:    "history window too short",
			mutate:  func(c *Config) { c.Engine.HistoryDays = 1 },
			wantErr: "history_days",
		},
		{
			name: "inverted conversion thresholds",
			mutate: func(c *Config) {
				c.Engine.ConversionCritical = 0.5
			},
			wantErr: "conversion_critical",
		},
		{
			name: "inverted response thresholds",
			mutate: func(c *Config) {
				c.Engine.ResponseCritical = 100
			},
			wantErr: "response_critical",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
engine:
  history_days: 60
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PULSO_SERVER_HOST", "127.0.0.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("file layer: port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Engine.HistoryDays != 60 {
		t.Errorf("file layer: history days = %d, want 60", cfg.Engine.HistoryDays)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("env layer: host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	// Untouched keys keep defaults.
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("default layer: cache TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadInvalidFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid port succeeded, want validation error")
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PULSO_SERVER_PORT", "server.port"},
		{"PULSO_ENGINE_HISTORY_DAYS", "engine.history_days"},
		{"PULSO_AUTH_JWT_SECRET", "auth.jwt_secret"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPredictiveConfigOverlay(t *testing.T) {
	ec := defaultConfig().Engine
	ec.ConversionWarn = 0.25
	ec.ConversionCritical = 0.12

	cfg := ec.PredictiveConfig()
	if cfg.Alerts.ConversionWarn != 0.25 || cfg.Alerts.ConversionCritical != 0.12 {
		t.Errorf("overlay not applied: %+v", cfg.Alerts)
	}
	// Non-exposed thresholds keep calibrated defaults.
	if cfg.AttendanceSlopeThreshold != 5 {
		t.Errorf("AttendanceSlopeThreshold = %v, want 5", cfg.AttendanceSlopeThreshold)
	}
	if len(cfg.Sentiment.PositiveWords) == 0 {
		t.Error("sentiment keyword lists missing from overlay result")
	}
}
