// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package config

import (
	"errors"
	"fmt"
)

// minJWTSecretLength guards against brute-forceable signing keys.
const minJWTSecretLength = 32

// Validate checks cross-field constraints the type system cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, errors.New("server.rate_limit must be positive"))
	}

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least %d characters", minJWTSecretLength))
	}
	if c.Auth.JWTSecret != "" && (c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "") {
		errs = append(errs, errors.New("auth requires admin_username and admin_password when jwt_secret is set"))
	}

	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}

	if c.Engine.HistoryDays < 2 {
		errs = append(errs, errors.New("engine.history_days must be at least 2 for a meaningful fit"))
	}
	if c.Engine.ConversionCritical > c.Engine.ConversionWarn {
		errs = append(errs, errors.New("engine.conversion_critical must not exceed conversion_warn"))
	}
	if c.Engine.ResponseCritical < c.Engine.ResponseWarn {
		errs = append(errs, errors.New("engine.response_critical must not be below response_warn"))
	}
	if c.Engine.QualityCritical > c.Engine.QualityWarn {
		errs = append(errs, errors.New("engine.quality_critical must not exceed quality_warn"))
	}

	if c.Demo.Seed && c.Demo.Days < 2 {
		errs = append(errs, errors.New("demo.days must be at least 2 when seeding"))
	}

	return errors.Join(errs...)
}

// AuthEnabled reports whether JWT authentication is configured. Without a
// secret the server runs in open mode, intended for local development
// only.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}
