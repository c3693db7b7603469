// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package auth implements JWT authentication for the dashboard API.
// Tokens are issued against the configured admin credentials and carry
// the workspace user ID that scopes every analytics query.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pulsolabs/pulso/internal/config"
	"github.com/pulsolabs/pulso/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not reveal which.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken covers malformed, mis-signed, and expired tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the JWT claims carried by Pulso tokens. Subject holds the
// workspace user ID.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and validates tokens and checks login credentials.
type Manager struct {
	secret        []byte
	tokenTTL      time.Duration
	adminUsername string
	adminHash     []byte
}

// NewManager builds a Manager from config. The admin password is hashed
// at startup so the plaintext never sits in memory past initialization.
func NewManager(cfg *config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: jwt_secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &Manager{
		secret:        []byte(cfg.JWTSecret),
		tokenTTL:      cfg.TokenTTL,
		adminUsername: cfg.AdminUsername,
		adminHash:     hash,
	}, nil
}

// Login checks credentials and returns a signed token on success.
func (m *Manager) Login(username, password string) (string, error) {
	// Compare the hash even for a wrong username to keep timing flat.
	err := bcrypt.CompareHashAndPassword(m.adminHash, []byte(password))
	if err != nil || username != m.adminUsername {
		metrics.AuthLogins.WithLabelValues("invalid_credentials").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := m.GenerateToken(username)
	if err != nil {
		return "", err
	}
	metrics.AuthLogins.WithLabelValues("success").Inc()
	return token, nil
}

// GenerateToken signs a token for the given user with the configured TTL.
func (m *Manager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature and registered claims and returns
// the parsed claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenTTL exposes the configured token lifetime for login responses.
func (m *Manager) TokenTTL() time.Duration {
	return m.tokenTTL
}
