// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"testing"

	"github.com/pulsolabs/pulso/internal/models"
)

func TestSentimentClassifier(t *testing.T) {
	c := NewSentimentClassifier(DefaultConfig().Sentiment)

	tests := []struct {
		name      string
		text      string
		wantLabel models.SentimentLabel
		wantScore float64
	}{
		{
			name:      "only positive keywords",
			text:      "excelente atendimento, bom e rápido",
			wantLabel: models.SentimentPositive,
			wantScore: 1,
		},
		{
			name:      "only negative keywords",
			text:      "péssimo serviço, lento e ruim",
			wantLabel: models.SentimentNegative,
			wantScore: 0,
		},
		{
			name:      "no listed words is neutral at half",
			text:      "aguardando retorno sobre o pedido",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "balanced mix is neutral",
			text:      "bom mas lento",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "mostly positive crosses the threshold",
			text:      "bom rápido eficiente mas lento",
			wantLabel: models.SentimentPositive,
			wantScore: 0.75,
		},
		{
			name:      "case insensitive matching",
			text:      "EXCELENTE",
			wantLabel: models.SentimentPositive,
			wantScore: 1,
		},
		{
			name:      "empty text is neutral",
			text:      "",
			wantLabel: models.SentimentNeutral,
			wantScore: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.Sentiment != tt.wantLabel {
				t.Errorf("Sentiment = %v, want %v", got.Sentiment, tt.wantLabel)
			}
			if !almostEqual(got.Score, tt.wantScore) {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
		})
	}
}

// Whitespace tokenization means only the single-word entries of the
// keyword lists can ever match; "excelente atendimento" contributes one
// positive hit via "excelente", and the multi-word negative entries like
// "não gostei" never fire as a unit.
func TestSentimentClassifierTokenization(t *testing.T) {
	c := NewSentimentClassifier(DefaultConfig().Sentiment)

	got := c.Classify("não gostei")
	// "gostei" alone is on the positive list; "não" is not a keyword.
	if got.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %v, want %v (single-token matching)", got.Sentiment, models.SentimentPositive)
	}
}

func TestSentimentLabelThresholds(t *testing.T) {
	c := NewSentimentClassifier(DefaultConfig().Sentiment)

	tests := []struct {
		score float64
		want  models.SentimentLabel
	}{
		{0.61, models.SentimentPositive},
		{0.6, models.SentimentNeutral}, // threshold is strict
		{0.5, models.SentimentNeutral},
		{0.4, models.SentimentNeutral}, // threshold is strict
		{0.39, models.SentimentNegative},
	}

	for _, tt := range tests {
		if got := c.Label(tt.score); got != tt.want {
			t.Errorf("Label(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
