// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package main is the entry point for the Pulso server.
//
// Pulso is a self-hosted analytics backend for WhatsApp customer
// engagement: it ingests daily operational metrics (attendance volume,
// conversions, response latency, quality scores, customer sentiment)
// and serves a predictive dashboard with forecasts, threshold alerts,
// heuristic recommendations, and temporal patterns.
//
// Startup order:
//
//  1. Configuration (Koanf v2: defaults, YAML file, PULSO_* env vars)
//  2. Logging (zerolog, JSON or console)
//  3. DuckDB history store, optional demo seed
//  4. BadgerDB insight-state store
//  5. Forecasting engine, analytics service, JWT auth
//  6. Chi router under a suture supervision tree
//
// The server shuts down gracefully on SIGINT/SIGTERM: in-flight
// requests get the configured shutdown timeout, then stores close.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulsolabs/pulso/internal/analytics"
	"github.com/pulsolabs/pulso/internal/api"
	"github.com/pulsolabs/pulso/internal/auth"
	"github.com/pulsolabs/pulso/internal/config"
	"github.com/pulsolabs/pulso/internal/history"
	"github.com/pulsolabs/pulso/internal/insightstate"
	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/predictive"
	"github.com/pulsolabs/pulso/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Bool("auth", cfg.AuthEnabled()).Msg("pulso starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := history.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Demo.Seed {
		if err := history.SeedDemo(ctx, store, cfg.Demo.UserID, cfg.Demo.Days); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	state, err := insightstate.Open(&cfg.State)
	if err != nil {
		return err
	}
	defer state.Close()

	engine := predictive.NewEngine(cfg.Engine.PredictiveConfig())
	provider := history.NewBreakerProvider("history", store)
	service := analytics.New(provider, store, engine, state, cfg.Cache.TTL, cfg.Engine.HistoryDays)
	defer service.Close()

	var authmgr *auth.Manager
	if cfg.AuthEnabled() {
		authmgr, err = auth.NewManager(&cfg.Auth)
		if err != nil {
			return err
		}
	} else {
		logging.Warn().Msg("no jwt_secret configured, running in open mode")
	}

	router := api.NewRouter(cfg, api.NewHandlers(service, authmgr, store))

	tree := supervisor.New(supervisor.DefaultConfig())
	tree.Add(&supervisor.HTTPService{
		Server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if cfg.State.Dir != "" {
		tree.Add(&supervisor.GCService{
			Name:     "insightstate-gc",
			Interval: cfg.State.GCInterval,
			Run:      state.RunGC,
		})
	}

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("pulso stopped")
	return nil
}
