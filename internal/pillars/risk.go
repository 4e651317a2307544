package pillars

import (
	"context"
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

// RiskParams tunes the risk agent's keyword heuristics.
type RiskParams struct {
	RiskIndicators       []string `mapstructure:"risk_indicators"`
	MitigationIndicators []string `mapstructure:"mitigation_indicators"`
	Confidence           float64  `mapstructure:"confidence"`
}

func defaultRiskParams() RiskParams {
	return RiskParams{
		RiskIndicators:       []string{"risk", "threat", "danger", "concern", "challenge"},
		MitigationIndicators: []string{"mitigation", "control", "manage", "reduce", "minimize"},
		Confidence:           0.88,
	}
}

// riskCategories are assessed individually; order fixes report iteration.
var riskCategories = []string{
	"financial_risk",
	"operational_risk",
	"market_risk",
	"technical_risk",
	"strategic_risk",
}

var (
	highRiskIndicators   = []string{"high risk", "critical", "severe", "major threat", "significant risk"}
	mediumRiskIndicators = []string{"moderate", "medium risk", "potential risk", "some risk"}
	lowRiskIndicators    = []string{"low risk", "minimal", "minor", "manageable", "low impact"}
)

// priorityTriggers maps named priority risks to the scenario terms that
// raise them.
var priorityTriggers = []trigger{
	{"Financial Risk", []string{"cash flow", "funding", "financial"}},
	{"Market Risk", []string{"competition", "market", "regulatory"}},
	{"Operational Risk", []string{"operational", "execution", "scalability"}},
	{"Technical Risk", []string{"technical", "security", "technology"}},
	{"Strategic Risk", []string{"strategic", "reputation", "partnership"}},
}

// RiskAgent rates overall scenario risk from the balance of risk vs
// mitigation language. Its OverallRisk is oriented so 1.0 means maximal
// risk; inversion happens downstream in the decision engine.
type RiskAgent struct {
	params RiskParams
}

func NewRiskAgent(params RiskParams) *RiskAgent {
	def := defaultRiskParams()
	if len(params.RiskIndicators) == 0 {
		params.RiskIndicators = def.RiskIndicators
	}
	if len(params.MitigationIndicators) == 0 {
		params.MitigationIndicators = def.MitigationIndicators
	}
	if params.Confidence <= 0 {
		params.Confidence = def.Confidence
	}
	return &RiskAgent{params: params}
}

func (a *RiskAgent) Name() string { return models.PillarRisk }

func (a *RiskAgent) Analyze(ctx context.Context, scenario string) Outcome {
	if err := ctx.Err(); err != nil {
		return Failure(err)
	}

	text := strings.ToLower(scenario)

	categories := make(map[string]models.RiskLevel, len(riskCategories))
	for _, cat := range riskCategories {
		categories[cat] = assessRiskLevel(text)
	}

	overall := ratioScore(
		countOccurrences(text, a.params.RiskIndicators),
		countOccurrences(text, a.params.MitigationIndicators),
	)

	return Success(models.RiskReport{
		Analysis:           fmt.Sprintf("Risk screening: overall exposure %.2f across %d categories", overall, len(categories)),
		Categories:         categories,
		OverallRisk:        overall,
		MitigationPriority: matchLabels(text, priorityTriggers, 3, nil),
		Confidence:         a.params.Confidence,
	})
}

func assessRiskLevel(text string) models.RiskLevel {
	grade := gradeLevel(
		countPresent(text, highRiskIndicators),
		countPresent(text, mediumRiskIndicators),
		countPresent(text, lowRiskIndicators),
		string(models.RiskHigh), string(models.RiskMedium), string(models.RiskLow),
	)
	return models.RiskLevel(grade)
}
