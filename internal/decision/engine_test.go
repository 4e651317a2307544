package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/internal/models"
)

// runWithScores builds a completed run whose payloads extract to exactly
// the given per-pillar scores (the risk payload is pre-inverted).
func runWithScores(t *testing.T, finance, risk, compliance, market float64) *models.OrchestrationRun {
	t.Helper()
	results := map[string]models.AgentResult{
		models.PillarFinance: {
			Pillar: models.PillarFinance,
			Status: models.ResultSuccess,
			Payload: models.FinanceReport{
				Metrics:    map[string]float64{"revenue_potential": finance, "roi_projection": finance},
				Confidence: 0.85,
			},
		},
		models.PillarRisk: {
			Pillar: models.PillarRisk,
			Status: models.ResultSuccess,
			Payload: models.RiskReport{
				OverallRisk: 1.0 - risk,
				Confidence:  0.88,
			},
		},
		models.PillarCompliance: {
			Pillar: models.PillarCompliance,
			Status: models.ResultSuccess,
			Payload: models.ComplianceReport{
				OverallCompliance: compliance,
				Confidence:        0.82,
			},
		},
		models.PillarMarket: {
			Pillar: models.PillarMarket,
			Status: models.ResultSuccess,
			Payload: models.MarketReport{
				OverallScore: market,
				Confidence:   0.87,
			},
		},
	}
	return &models.OrchestrationRun{
		RunID:     "run-test",
		Results:   results,
		Status:    models.RunDone,
		Succeeded: 4,
		Total:     4,
	}
}

func TestSynthesizeWorkedExample(t *testing.T) {
	engine := NewEngine()
	run := runWithScores(t, 0.9, 0.8, 0.7, 0.6)

	rec := engine.Synthesize(run, nil)
	require.NotNil(t, rec)

	// 0.9*0.30 + 0.8*0.25 + 0.7*0.20 + 0.6*0.25
	assert.InDelta(t, 0.76, rec.OverallScore, 1e-9)
	assert.Equal(t, models.Recommend, rec.Category)

	// stddev of {0.9,0.8,0.7,0.6} is ~0.1291, mean 0.75
	assert.InDelta(t, 0.745, rec.Confidence, 1e-3)

	assert.Len(t, rec.PillarScores, 4)
	assert.InDelta(t, 0.8, rec.PillarScores[models.PillarRisk], 1e-9)
	assert.False(t, rec.Degraded())
	assert.NotEmpty(t, rec.Rationale)
	assert.NotEmpty(t, rec.NextSteps)
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Category
	}{
		{0.95, models.StronglyRecommend},
		{0.80, models.StronglyRecommend},
		{0.7999, models.Recommend},
		{0.65, models.Recommend},
		{0.6499, models.Conditional},
		{0.50, models.Conditional},
		{0.4999, models.Caution},
		{0.35, models.Caution},
		{0.3499, models.NotRecommended},
		{0.0, models.NotRecommended},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.score), "score %v", tt.score)
	}
}

func TestSynthesizeAllPillarsFailed(t *testing.T) {
	engine := NewEngine()
	run := &models.OrchestrationRun{
		RunID: "run-degraded",
		Results: map[string]models.AgentResult{
			models.PillarFinance: {Pillar: models.PillarFinance, Status: models.ResultFailed, Err: "timeout"},
			models.PillarRisk:    {Pillar: models.PillarRisk, Status: models.ResultFailed, Err: "panic"},
		},
		Status:    models.RunDone,
		Succeeded: 0,
		Total:     2,
	}

	rec := engine.Synthesize(run, nil)
	require.NotNil(t, rec)
	assert.True(t, rec.Degraded())
	assert.Equal(t, models.ReviewRequired, rec.Category)
	assert.Equal(t, 0.5, rec.OverallScore)
	assert.Equal(t, 0.0, rec.Confidence)
	assert.True(t, rec.RiskSummary.MitigationRequired)
}

func TestSynthesizeNilRun(t *testing.T) {
	rec := NewEngine().Synthesize(nil, nil)
	require.NotNil(t, rec)
	assert.True(t, rec.Degraded())
}

func TestSynthesizePartialFailureUsesNeutralScore(t *testing.T) {
	engine := NewEngine()
	run := runWithScores(t, 0.9, 0.9, 0.9, 0.9)

	failed := run.Results[models.PillarMarket]
	failed.Status = models.ResultFailed
	failed.Payload = nil
	failed.Err = "agent unavailable"
	run.Results[models.PillarMarket] = failed
	run.Succeeded = 3

	rec := engine.Synthesize(run, nil)
	require.NotNil(t, rec)

	// 0.9*0.30 + 0.9*0.25 + 0.9*0.20 + 0.5*0.25
	assert.InDelta(t, 0.80, rec.OverallScore, 1e-9)
	assert.Equal(t, 0.5, rec.PillarScores[models.PillarMarket])

	// The neutral score drags agreement down, so confidence falls below
	// the all-success figure of ~0.85.
	uniform := engine.Synthesize(runWithScores(t, 0.9, 0.9, 0.9, 0.9), nil)
	assert.Less(t, rec.Confidence, uniform.Confidence)
}

func TestSynthesizeWeightOverride(t *testing.T) {
	engine := NewEngine()
	run := runWithScores(t, 1.0, 0.0, 0.0, 0.0)

	rec := engine.Synthesize(run, map[string]float64{
		models.PillarFinance:    1.0,
		models.PillarRisk:       0.0,
		models.PillarCompliance: 0.0,
		models.PillarMarket:     0.0,
	})
	assert.InDelta(t, 1.0, rec.OverallScore, 1e-9)

	// Engine weights are untouched by a per-call override.
	assert.InDelta(t, 0.30, engine.Weights()[models.PillarFinance], 1e-9)
}

func TestWeightedScoreFallbackWeight(t *testing.T) {
	scores := map[string]float64{
		models.PillarFinance: 0.8,
		"sustainability":     0.4,
	}
	weights := map[string]float64{models.PillarFinance: 0.25}

	// The unlisted pillar gets the 0.25 fallback: (0.8*0.25 + 0.4*0.25) / 0.5
	assert.InDelta(t, 0.6, weightedScore(scores, weights), 1e-9)
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.0, confidence(nil))
	assert.Equal(t, 0.5, confidence(map[string]float64{models.PillarFinance: 0.9}))

	// Perfectly consistent high scores max out.
	high := confidence(map[string]float64{
		models.PillarFinance: 0.9, models.PillarRisk: 0.9,
		models.PillarCompliance: 0.9, models.PillarMarket: 0.9,
	})
	assert.InDelta(t, 0.6+0.4*0.9, high, 1e-9)

	// Wildly disagreeing scores zero out the consistency term.
	split := confidence(map[string]float64{
		models.PillarFinance: 1.0, models.PillarRisk: 0.0,
		models.PillarCompliance: 1.0, models.PillarMarket: 0.0,
	})
	assert.InDelta(t, 0.4*0.5, split, 1e-9)
}

func TestUpdateWeights(t *testing.T) {
	engine := NewEngine()

	err := engine.UpdateWeights(map[string]float64{
		models.PillarFinance: 0.4, models.PillarRisk: 0.3,
		models.PillarCompliance: 0.2, models.PillarMarket: 0.1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, engine.Weights()[models.PillarFinance], 1e-9)

	err = engine.UpdateWeights(map[string]float64{models.PillarFinance: 0.9})
	require.Error(t, err)
	var cfgErr *models.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	err = engine.UpdateWeights(nil)
	require.Error(t, err)

	// Within the 1e-3 tolerance still passes.
	err = engine.UpdateWeights(map[string]float64{
		models.PillarFinance: 0.2503, models.PillarRisk: 0.25,
		models.PillarCompliance: 0.25, models.PillarMarket: 0.25,
	})
	require.NoError(t, err)
}
