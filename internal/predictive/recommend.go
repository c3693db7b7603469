// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"fmt"
	"strings"

	"github.com/pulsolabs/pulso/internal/models"
)

// generateRecommendations applies the heuristic rules over whole-series
// aggregates. The rules are independent of the alert generator and may
// reference overlapping conditions; each run mints fresh identifiers with
// no dedup across runs.
func (e *Engine) generateRecommendations(series models.HistoricalSeries, hourly []models.HourlyTrend) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, 3)
	if len(series) == 0 {
		return recommendations
	}

	avgResponseTime := mean(series.ResponseTimes())
	avgConversion := mean(series.ConversionRates())

	if avgResponseTime > e.cfg.Recommendations.AutomationResponseTime {
		recommendations = append(recommendations, models.Recommendation{
			ID:                 e.ids.NewID("rec"),
			Type:               models.RecommendationAutomation,
			Title:              "Implementar Chatbot Inteligente",
			Description:        "Automatizar respostas comuns para reduzir tempo de resposta",
			Impact:             models.ImpactHigh,
			Confidence:         0.85,
			ImplementationTime: "2-3 semanas",
			ExpectedROI:        0.25,
			Priority:           models.SeverityHigh,
			Category:           "Eficiência",
			Tags:               []string{"automação", "tempo-resposta", "chatbot"},
		})
	}

	if peaks := peakHours(hourly, e.cfg.Recommendations.PeakHourAttendances); len(peaks) > 0 {
		recommendations = append(recommendations, models.Recommendation{
			ID:                 e.ids.NewID("rec"),
			Type:               models.RecommendationTiming,
			Title:              "Otimizar Horários de Atendimento",
			Description:        fmt.Sprintf("Aumentar equipe nos horários de pico (%s)", strings.Join(peaks, ", ")),
			Impact:             models.ImpactMedium,
			Confidence:         0.8,
			ImplementationTime: "1 semana",
			ExpectedROI:        0.15,
			Priority:           models.SeverityMedium,
			Category:           "Operacional",
			Tags:               []string{"horários", "equipe", "pico"},
		})
	}

	if avgConversion < e.cfg.Recommendations.TrainingConversion {
		recommendations = append(recommendations, models.Recommendation{
			ID:                 e.ids.NewID("rec"),
			Type:               models.RecommendationProcess,
			Title:              "Treinamento em Técnicas de Venda",
			Description:        "Capacitar equipe em técnicas avançadas de conversão",
			Impact:             models.ImpactHigh,
			Confidence:         0.9,
			ImplementationTime: "1 mês",
			ExpectedROI:        0.3,
			Priority:           models.SeverityHigh,
			Category:           "Vendas",
			Tags:               []string{"treinamento", "vendas", "conversão"},
		})
	}

	return recommendations
}

// peakHours lists the hours whose average attendance strictly exceeds the
// threshold, formatted for the recommendation description ("8h, 9h").
func peakHours(hourly []models.HourlyTrend, threshold float64) []string {
	var out []string
	for _, h := range hourly {
		if h.AverageAttendances > threshold {
			out = append(out, fmt.Sprintf("%dh", h.Hour))
		}
	}
	return out
}
