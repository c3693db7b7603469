// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/pulsolabs/pulso/internal/models"
)

// validate is shared across handlers; validator.Validate is safe for
// concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse returns the issued token and its lifetime in seconds.
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// alertPatchRequest is the PATCH /analytics/alerts/{id} body. Pointer
// distinguishes "missing field" from an explicit false.
type alertPatchRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// dailyMetricsRequest is the POST /metrics/daily ingest body. Sentiment
// may be given directly or derived from feedback samples; when both are
// absent the day is stored as neutral.
type dailyMetricsRequest struct {
	Date         models.Date            `json:"date" validate:"required"`
	Attendances  int                    `json:"attendances" validate:"gte=0"`
	Conversions  int                    `json:"conversions" validate:"gte=0,ltefield=Attendances"`
	ResponseTime float64                `json:"responseTime" validate:"gt=0"`
	QualityScore float64                `json:"qualityScore" validate:"gte=1,lte=5"`
	Sentiment    *float64               `json:"sentiment" validate:"omitempty,gte=0,lte=1"`
	Intents      models.IntentBreakdown `json:"intents"`

	// FeedbackSamples are free-text customer messages for the day; when
	// Sentiment is absent they are classified and averaged instead.
	FeedbackSamples []string `json:"feedbackSamples" validate:"omitempty,dive,max=2000"`
}

// decodeAndValidate parses the request body into v and runs validation.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
