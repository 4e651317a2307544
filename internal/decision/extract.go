package decision

import (
	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/statistics"
)

// neutralScore stands in for any pillar that failed or produced an
// unreadable payload, keeping the weighted formula well-defined without
// renormalizing weights.
const neutralScore = 0.5

// ExtractScores maps each pillar's structured payload to one normalized
// score in [0,1], oriented so higher always means more favorable.
func ExtractScores(run *models.OrchestrationRun) map[string]float64 {
	scores := make(map[string]float64, len(run.Results))
	for pillar, result := range run.Results {
		scores[pillar] = extractScore(&result)
	}
	return scores
}

func extractScore(result *models.AgentResult) float64 {
	if result.Failed() || result.Payload == nil {
		return neutralScore
	}

	switch payload := result.Payload.(type) {
	case models.FinanceReport:
		return statistics.Clamp01(financeScore(payload))
	case models.RiskReport:
		// Inverted: the pillar reports risk where 1.0 is maximal, while
		// extracted scores are favorability.
		return statistics.Clamp01(1.0 - payload.OverallRisk)
	case models.ComplianceReport:
		return statistics.Clamp01(payload.OverallCompliance)
	case models.MarketReport:
		return statistics.Clamp01(payload.OverallScore)
	default:
		return neutralScore
	}
}

// financeScore is the mean of the pillar's sub-metrics, falling back to its
// self-reported confidence when none are present.
func financeScore(payload models.FinanceReport) float64 {
	if len(payload.Metrics) == 0 {
		return payload.Confidence
	}
	values := make([]float64, 0, len(payload.Metrics))
	for _, v := range payload.Metrics {
		values = append(values, v)
	}
	return statistics.Mean(values)
}
