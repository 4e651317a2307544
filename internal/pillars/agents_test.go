package pillars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/internal/models"
)

func requireReport[T models.Report](t *testing.T, o Outcome) T {
	t.Helper()
	report, ok := o.Report()
	require.True(t, ok, "expected a successful outcome, got err: %v", o.Err())
	payload, ok := report.(T)
	require.True(t, ok, "unexpected payload type %T", report)
	return payload
}

func TestFinanceAgentAnalyze(t *testing.T) {
	agent := NewFinanceAgent(FinanceParams{})
	scenario := "Strong revenue growth expected with excellent positive margins in the enterprise segment"

	report := requireReport[models.FinanceReport](t, agent.Analyze(context.Background(), scenario))

	// "revenue" is mentioned and three positive indicators appear.
	assert.InDelta(t, 0.95, report.Metrics["revenue_potential"], 1e-9)

	// Dimensions the scenario never mentions stay neutral.
	assert.Equal(t, 0.5, report.Metrics["cost_efficiency"])
	assert.Equal(t, 0.5, report.Metrics["roi_projection"])
	assert.Equal(t, 0.5, report.Metrics["funding_requirement"])

	assert.Equal(t, 0.85, report.Confidence)
	assert.NotEmpty(t, report.Analysis)
}

func TestFinanceAgentNegativeSentiment(t *testing.T) {
	agent := NewFinanceAgent(FinanceParams{})
	scenario := "Weak revenue outlook with poor margins and negative cash trends"

	report := requireReport[models.FinanceReport](t, agent.Analyze(context.Background(), scenario))
	assert.Less(t, report.Metrics["revenue_potential"], 0.5)
	assert.GreaterOrEqual(t, report.Metrics["revenue_potential"], 0.1)
}

func TestFinanceAgentCustomParams(t *testing.T) {
	agent := NewFinanceAgent(FinanceParams{
		PositiveIndicators: []string{"lucrative"},
		NegativeIndicators: []string{"bleak"},
		Confidence:         0.6,
	})
	scenario := "A lucrative revenue stream"

	report := requireReport[models.FinanceReport](t, agent.Analyze(context.Background(), scenario))
	assert.InDelta(t, 0.85, report.Metrics["revenue_potential"], 1e-9)
	assert.Equal(t, 0.6, report.Confidence)
}

func TestRiskAgentAnalyze(t *testing.T) {
	agent := NewRiskAgent(RiskParams{})
	scenario := "Significant risk and threat of danger around cash flow"

	report := requireReport[models.RiskReport](t, agent.Analyze(context.Background(), scenario))

	// Three risk mentions, zero mitigation mentions: capped at 0.9.
	assert.InDelta(t, 0.9, report.OverallRisk, 1e-9)
	assert.Len(t, report.Categories, 5)
	assert.Equal(t, models.RiskHigh, report.Categories["operational_risk"])
	assert.Contains(t, report.MitigationPriority, "Financial Risk")
	assert.Equal(t, 0.88, report.Confidence)
}

func TestRiskAgentMitigationLowersRisk(t *testing.T) {
	agent := NewRiskAgent(RiskParams{})
	scenario := "Minor manageable risk, with mitigation plans to control, manage, reduce, and minimize exposure"

	report := requireReport[models.RiskReport](t, agent.Analyze(context.Background(), scenario))
	assert.Less(t, report.OverallRisk, 0.5)
	assert.Equal(t, models.RiskLow, report.Categories["financial_risk"])
}

func TestComplianceAgentAnalyze(t *testing.T) {
	agent := NewComplianceAgent(ComplianceParams{})
	scenario := "Customer data privacy with gdpr consent processes and security encryption controls"

	report := requireReport[models.ComplianceReport](t, agent.Analyze(context.Background(), scenario))

	require.Len(t, report.AreaScores, 2)
	assert.InDelta(t, 0.8, report.AreaScores["Data Protection and Privacy"], 1e-9)
	assert.InDelta(t, 0.6, report.AreaScores["Cybersecurity"], 1e-9)
	assert.InDelta(t, 0.7, report.OverallCompliance, 1e-9)
	assert.Empty(t, report.Gaps)
	assert.Equal(t, []string{"Maintain current compliance monitoring"}, report.RecommendedActions)
}

func TestComplianceAgentGapThreshold(t *testing.T) {
	// With a raised threshold, thin coverage becomes a reported gap.
	agent := NewComplianceAgent(ComplianceParams{GapThreshold: 0.7})
	scenario := "We process some customer transaction records for audit purposes"

	report := requireReport[models.ComplianceReport](t, agent.Analyze(context.Background(), scenario))
	assert.NotEmpty(t, report.Gaps)
	for _, gap := range report.Gaps {
		assert.Less(t, report.AreaScores[gap], 0.7)
	}
}

func TestComplianceAgentNoRegulatedAreas(t *testing.T) {
	agent := NewComplianceAgent(ComplianceParams{})
	scenario := "Launching a lemonade stand at the neighborhood fair next summer"

	report := requireReport[models.ComplianceReport](t, agent.Analyze(context.Background(), scenario))
	assert.Empty(t, report.AreaScores)
	assert.Equal(t, 0.5, report.OverallCompliance)
}

func TestMarketAgentAnalyze(t *testing.T) {
	agent := NewMarketAgent(MarketParams{})
	scenario := "A large market opportunity with strong growth and low competition"

	report := requireReport[models.MarketReport](t, agent.Analyze(context.Background(), scenario))

	assert.Equal(t, "LARGE", report.Metrics.SizePotential)
	assert.Equal(t, "LOW", report.Metrics.CompetitiveIntensity)
	assert.InDelta(t, 0.9, report.OverallScore, 1e-9)
	assert.Equal(t, []string{"General Market", "Early Adopters"}, report.Segments)
	assert.Contains(t, report.GrowthDrivers, "Economic Growth")
	assert.Equal(t, 0.87, report.Confidence)
}

func TestMarketAgentUnfavorableScenario(t *testing.T) {
	agent := NewMarketAgent(MarketParams{})
	scenario := "A difficult niche with intense competition, high barriers, and every barrier a threat"

	report := requireReport[models.MarketReport](t, agent.Analyze(context.Background(), scenario))
	assert.Equal(t, "HIGH", report.Metrics.CompetitiveIntensity)
	assert.Equal(t, "HIGH", report.Metrics.EntryDifficulty)
	assert.Less(t, report.OverallScore, 0.5)
}

func TestMarketAgentDemandGrades(t *testing.T) {
	agent := NewMarketAgent(MarketParams{})

	cases := []struct {
		name     string
		scenario string
		want     string
	}{
		{"strong signals", "A product facing strong demand and growing interest from buyers", "HIGH"},
		{"weak signals", "A product facing weak demand and declining interest from buyers", "LOW"},
		{"no signals stays neutral", "A subscription service for regional logistics providers", "MEDIUM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := requireReport[models.MarketReport](t, agent.Analyze(context.Background(), tc.scenario))
			assert.Equal(t, tc.want, report.Metrics.CustomerDemand)
		})
	}
}

func TestAgentsHonorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agents := []Agent{
		NewFinanceAgent(FinanceParams{}),
		NewRiskAgent(RiskParams{}),
		NewComplianceAgent(ComplianceParams{}),
		NewMarketAgent(MarketParams{}),
	}
	for _, a := range agents {
		outcome := a.Analyze(ctx, "any scenario")
		assert.True(t, outcome.Failed(), "agent %s should fail on canceled context", a.Name())
		assert.ErrorIs(t, outcome.Err(), context.Canceled)
	}
}

func TestOutcome(t *testing.T) {
	ok := Success(models.FinanceReport{Confidence: 0.5})
	report, success := ok.Report()
	assert.True(t, success)
	assert.NotNil(t, report)
	assert.False(t, ok.Failed())
	assert.NoError(t, ok.Err())

	failed := Failure(context.DeadlineExceeded)
	_, success = failed.Report()
	assert.False(t, success)
	assert.True(t, failed.Failed())
	assert.ErrorIs(t, failed.Err(), context.DeadlineExceeded)
}
