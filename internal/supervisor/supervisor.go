// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package supervisor runs Pulso's long-lived services under a suture v4
// supervision tree: the HTTP server and the insight-state garbage
// collector. A crashing service is restarted with backoff instead of
// taking the process down.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/pulsolabs/pulso/internal/logging"
)

// Config tunes restart behaviour; zero values take suture's defaults.
type Config struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

// DefaultConfig matches suture's documented defaults.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree is the root supervisor.
type Tree struct {
	root *suture.Supervisor
}

// New builds the tree with an event hook that routes suture lifecycle
// events into the structured log.
func New(cfg Config) *Tree {
	root := suture.New("pulso", suture.Spec{
		EventHook:        logEvent,
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	})
	return &Tree{root: root}
}

// Add registers a service with the root supervisor.
func (t *Tree) Add(svc suture.Service) {
	t.root.Add(svc)
}

// Serve runs the tree until ctx is cancelled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

func logEvent(event suture.Event) {
	switch event.Type() {
	case suture.EventTypeServiceTerminate, suture.EventTypeBackoff:
		logging.Warn().Str("event", event.String()).Msg("supervisor event")
	default:
		logging.Debug().Str("event", event.String()).Msg("supervisor event")
	}
}

// HTTPService runs an http.Server as a suture service.
type HTTPService struct {
	Server          *http.Server
	ShutdownTimeout time.Duration
}

// Serve implements suture.Service. It blocks in ListenAndServe and
// shuts the server down gracefully when ctx is cancelled.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Server.ListenAndServe()
	}()

	logging.Info().Str("addr", s.Server.Addr).Msg("http server listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if err := s.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		logging.Info().Msg("http server stopped")
		return ctx.Err()
	}
}

func (s *HTTPService) String() string { return "http-server" }

// GCService periodically runs a garbage collection function, used for
// the Badger value log.
type GCService struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context, interval time.Duration)
}

// Serve implements suture.Service.
func (s *GCService) Serve(ctx context.Context) error {
	s.Run(ctx, s.Interval)
	return ctx.Err()
}

func (s *GCService) String() string { return s.Name }
