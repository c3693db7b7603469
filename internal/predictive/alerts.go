// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"fmt"
	"math"

	"github.com/pulsolabs/pulso/internal/models"
)

// Fixed per-type alert probabilities. These are operator-calibrated
// constants, not model outputs.
const (
	probLowConversion    = 0.85
	probHighResponseTime = 0.9
	probQualityDrop      = 0.75
)

// generateAlerts applies the threshold table to the trailing window of the
// series. Checks are independent; multiple alerts may co-occur. Every
// alert is created active — deactivation belongs to the insight-state
// store, not the engine.
func (e *Engine) generateAlerts(series models.HistoricalSeries) []models.PredictiveAlert {
	recent := series.Tail(e.cfg.Alerts.Window)
	if len(recent) == 0 {
		return []models.PredictiveAlert{}
	}

	avgConversion := mean(recent.ConversionRates())
	avgResponseTime := mean(recent.ResponseTimes())

	var qualitySum float64
	for _, p := range recent {
		qualitySum += p.QualityScore
	}
	avgQuality := qualitySum / float64(len(recent))

	now := e.clock.Now()
	alerts := make([]models.PredictiveAlert, 0, 3)

	if avgConversion < e.cfg.Alerts.ConversionWarn {
		severity := models.SeverityHigh
		if avgConversion < e.cfg.Alerts.ConversionCritical {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.PredictiveAlert{
			ID:                e.ids.NewID("alert"),
			Type:              models.AlertLowConversion,
			Severity:          severity,
			Probability:       probLowConversion,
			Message:           fmt.Sprintf("Taxa de conversão baixa detectada (%.1f%%)", avgConversion*100),
			RecommendedAction: "Revisar funil de vendas e treinar equipe",
			EstimatedImpact:   "Redução de 20-30% na receita",
			Timeframe:         models.TimeframeImmediate,
			CreatedAt:         now,
			IsActive:          true,
		})
	}

	// Strictly greater: an average of exactly ResponseWarn seconds does
	// not trigger.
	if avgResponseTime > e.cfg.Alerts.ResponseWarn {
		severity := models.SeverityHigh
		if avgResponseTime > e.cfg.Alerts.ResponseCritical {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.PredictiveAlert{
			ID:                e.ids.NewID("alert"),
			Type:              models.AlertHighResponseTime,
			Severity:          severity,
			Probability:       probHighResponseTime,
			Message:           fmt.Sprintf("Tempo de resposta alto (%dmin)", int(math.Round(avgResponseTime/60))),
			RecommendedAction: "Implementar automações e aumentar equipe",
			EstimatedImpact:   "Perda de 15-25% dos clientes",
			Timeframe:         models.Timeframe24h,
			CreatedAt:         now,
			IsActive:          true,
		})
	}

	if avgQuality < e.cfg.Alerts.QualityWarn {
		severity := models.SeverityMedium
		if avgQuality < e.cfg.Alerts.QualityCritical {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.PredictiveAlert{
			ID:                e.ids.NewID("alert"),
			Type:              models.AlertQualityDrop,
			Severity:          severity,
			Probability:       probQualityDrop,
			Message:           fmt.Sprintf("Qualidade do atendimento em declínio (%.1f/5)", avgQuality),
			RecommendedAction: "Treinamento da equipe e revisão de processos",
			EstimatedImpact:   "Redução na satisfação do cliente",
			Timeframe:         models.TimeframeWeek,
			CreatedAt:         now,
			IsActive:          true,
		})
	}

	return alerts
}
