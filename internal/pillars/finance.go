package pillars

import (
	"context"
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

// FinanceParams tunes the finance agent's keyword heuristics.
type FinanceParams struct {
	PositiveIndicators []string `mapstructure:"positive_indicators"`
	NegativeIndicators []string `mapstructure:"negative_indicators"`
	Confidence         float64  `mapstructure:"confidence"`
}

func defaultFinanceParams() FinanceParams {
	return FinanceParams{
		PositiveIndicators: []string{"high", "strong", "good", "excellent", "positive"},
		NegativeIndicators: []string{"low", "weak", "poor", "negative", "risk"},
		Confidence:         0.85,
	}
}

// FinanceAgent scores a scenario's financial posture from keyword sentiment
// around revenue, cost, ROI, and funding mentions.
type FinanceAgent struct {
	params FinanceParams
}

// NewFinanceAgent creates a finance agent, filling empty params with the
// built-in defaults.
func NewFinanceAgent(params FinanceParams) *FinanceAgent {
	def := defaultFinanceParams()
	if len(params.PositiveIndicators) == 0 {
		params.PositiveIndicators = def.PositiveIndicators
	}
	if len(params.NegativeIndicators) == 0 {
		params.NegativeIndicators = def.NegativeIndicators
	}
	if params.Confidence <= 0 {
		params.Confidence = def.Confidence
	}
	return &FinanceAgent{params: params}
}

func (a *FinanceAgent) Name() string { return models.PillarFinance }

func (a *FinanceAgent) Analyze(ctx context.Context, scenario string) Outcome {
	if err := ctx.Err(); err != nil {
		return Failure(err)
	}

	text := strings.ToLower(scenario)
	metrics := map[string]float64{
		"revenue_potential":   a.keywordScore(text, "revenue"),
		"cost_efficiency":     a.keywordScore(text, "cost"),
		"roi_projection":      a.keywordScore(text, "roi"),
		"funding_requirement": a.keywordScore(text, "funding"),
	}

	return Success(models.FinanceReport{
		Analysis:   a.summarize(metrics),
		Metrics:    metrics,
		Confidence: a.params.Confidence,
	})
}

// keywordScore rates one financial dimension. A dimension mentioned in the
// scenario scores from the balance of positive vs negative indicators;
// an absent dimension stays neutral at 0.5.
func (a *FinanceAgent) keywordScore(text, keyword string) float64 {
	if !strings.Contains(text, keyword) {
		return 0.5
	}

	positive := countPresent(text, a.params.PositiveIndicators)
	negative := countPresent(text, a.params.NegativeIndicators)

	if positive > negative {
		score := 0.8 + float64(positive)*0.05
		if score > 1.0 {
			score = 1.0
		}
		return score
	}
	score := 0.3 - float64(negative)*0.05
	if score < 0.1 {
		score = 0.1
	}
	return score
}

func (a *FinanceAgent) summarize(metrics map[string]float64) string {
	favorable := 0
	for _, v := range metrics {
		if v >= 0.6 {
			favorable++
		}
	}
	return fmt.Sprintf("Financial screening: %d of %d dimensions favorable (revenue, cost, ROI, funding)",
		favorable, len(metrics))
}
