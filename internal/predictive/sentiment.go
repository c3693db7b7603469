// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"strings"

	"github.com/pulsolabs/pulso/internal/models"
)

// SentimentResult is the outcome of classifying one piece of text.
type SentimentResult struct {
	Sentiment models.SentimentLabel `json:"sentiment"`
	Score     float64               `json:"score"` // 0-1
}

// SentimentClassifier is a keyword-count classifier over free text.
// It is deliberately simple: the keyword lists are domain-calibrated
// Portuguese terms from real customer feedback, and downstream consumers
// depend on the exact lists and thresholds staying stable.
type SentimentClassifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
	cfg      SentimentConfig
}

// NewSentimentClassifier builds a classifier from the configured keyword
// lists.
func NewSentimentClassifier(cfg SentimentConfig) *SentimentClassifier {
	c := &SentimentClassifier{
		positive: make(map[string]struct{}, len(cfg.PositiveWords)),
		negative: make(map[string]struct{}, len(cfg.NegativeWords)),
		cfg:      cfg,
	}
	for _, w := range cfg.PositiveWords {
		c.positive[w] = struct{}{}
	}
	for _, w := range cfg.NegativeWords {
		c.negative[w] = struct{}{}
	}
	return c
}

// Classify tokenizes text on whitespace (case-insensitive) and scores it
// by keyword membership: score = positive/(positive+negative). Text with
// no listed words is neutral with score 0.5.
func (c *SentimentClassifier) Classify(text string) SentimentResult {
	words := strings.Fields(strings.ToLower(text))

	var positiveCount, negativeCount int
	for _, w := range words {
		if _, ok := c.positive[w]; ok {
			positiveCount++
		}
		if _, ok := c.negative[w]; ok {
			negativeCount++
		}
	}

	total := positiveCount + negativeCount
	if total == 0 {
		return SentimentResult{Sentiment: models.SentimentNeutral, Score: 0.5}
	}

	score := float64(positiveCount) / float64(total)
	return SentimentResult{Sentiment: c.Label(score), Score: score}
}

// Label maps a 0-1 sentiment score onto the three-way label using the
// configured thresholds.
func (c *SentimentClassifier) Label(score float64) models.SentimentLabel {
	switch {
	case score > c.cfg.PositiveThreshold:
		return models.SentimentPositive
	case score < c.cfg.NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
