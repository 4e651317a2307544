// Package decision synthesizes one bounded, classified recommendation from
// the heterogeneous pillar results of an orchestration run.
package decision

import (
	"log/slog"
	"sync"
	"time"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/statistics"
)

// Classification band lower bounds, inclusive.
const (
	stronglyRecommendFloor = 0.80
	recommendFloor         = 0.65
	conditionalFloor       = 0.50
	cautionFloor           = 0.35
)

// fallbackWeight applies to pillars missing from the weight map, so a
// partial override still covers every extracted score.
const fallbackWeight = 0.25

// DefaultWeights returns the standard pillar weighting.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		models.PillarFinance:    0.30,
		models.PillarRisk:       0.25,
		models.PillarCompliance: 0.20,
		models.PillarMarket:     0.25,
	}
}

// Engine computes recommendations from orchestration runs. It holds only
// the weight map; every synthesis is a pure function of its inputs, so a
// single engine serves concurrent runs.
type Engine struct {
	mu      sync.RWMutex
	weights map[string]float64
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine with the default pillar weights.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Weights returns a copy of the engine's current weight map.
func (e *Engine) Weights() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]float64, len(e.weights))
	for k, v := range e.weights {
		out[k] = v
	}
	return out
}

// UpdateWeights replaces the engine's weight map. The values must sum to
// 1.0 within tolerance or the update is rejected.
func (e *Engine) UpdateWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return &models.ConfigurationError{Field: "weights", Reason: "weight map is empty"}
	}
	if err := models.ValidateWeights(weights); err != nil {
		return err
	}

	copied := make(map[string]float64, len(weights))
	for k, v := range weights {
		copied[k] = v
	}

	e.mu.Lock()
	e.weights = copied
	e.mu.Unlock()

	e.logger.Info("decision weights updated", "weights", copied)
	return nil
}

// Synthesize derives a Recommendation from a completed run. A non-nil
// weights argument overrides the engine's weights for this call only; it
// must have been validated at request time. Synthesize never fails: when
// every pillar failed it returns the neutral degraded recommendation.
func (e *Engine) Synthesize(run *models.OrchestrationRun, weights map[string]float64) *models.Recommendation {
	if weights == nil {
		weights = e.Weights()
	}

	if run == nil || len(run.Results) == 0 || run.Succeeded == 0 {
		return e.degraded(run)
	}

	scores := ExtractScores(run)
	overall := statistics.Clamp01(weightedScore(scores, weights))
	category := classify(overall)

	rec := &models.Recommendation{
		OverallScore: overall,
		Category:     category,
		Confidence:   confidence(scores),
		PillarScores: scores,
		Insights:     insights(run),
		ActionItems:  actionItems(scores),
		RiskSummary:  riskRollup(run),
		Rationale:    rationale(category),
		NextSteps:    nextSteps(category),
		CreatedAt:    time.Now(),
	}

	e.logger.Info("recommendation synthesized",
		"run_id", run.RunID,
		"overall", rec.OverallScore,
		"category", rec.Category,
		"confidence", rec.Confidence,
		"succeeded", run.Succeeded,
		"total", run.Total)

	return rec
}

// degraded is the neutral fallback when no pillar produced a usable result.
// Callers always receive a well-formed recommendation; confidence 0 and the
// run's success count are the signals to distrust it.
func (e *Engine) degraded(run *models.OrchestrationRun) *models.Recommendation {
	runID := ""
	if run != nil {
		runID = run.RunID
	}
	e.logger.Warn("synthesizing degraded recommendation, no successful pillars", "run_id", runID)

	return &models.Recommendation{
		OverallScore: 0.5,
		Category:     models.ReviewRequired,
		Confidence:   0.0,
		PillarScores: map[string]float64{},
		Insights:     []string{},
		ActionItems:  []string{"Re-run the analysis once pillar agents are available"},
		RiskSummary: models.RiskSummary{
			Level:              models.RiskMedium,
			Factors:            []string{"No pillar analysis completed successfully"},
			MitigationRequired: true,
		},
		Rationale: "Analysis could not be completed; manual review is required before any decision.",
		NextSteps: nextSteps(models.ReviewRequired),
		CreatedAt: time.Now(),
	}
}

// weightedScore computes the weighted consensus over extracted scores. The
// division by the summed weight guards against residual floating-point
// drift; the weights themselves were validated at request time.
func weightedScore(scores, weights map[string]float64) float64 {
	if len(scores) == 0 {
		return 0.5
	}
	weightedSum := 0.0
	totalWeight := 0.0
	for pillar, score := range scores {
		w, ok := weights[pillar]
		if !ok {
			w = fallbackWeight
		}
		weightedSum += score * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0.5
	}
	return weightedSum / totalWeight
}

// classify maps the overall score to its band; bounds are inclusive on the
// lower edge of each band.
func classify(overall float64) models.Category {
	switch {
	case overall >= stronglyRecommendFloor:
		return models.StronglyRecommend
	case overall >= recommendFloor:
		return models.Recommend
	case overall >= conditionalFloor:
		return models.Conditional
	case overall >= cautionFloor:
		return models.Caution
	default:
		return models.NotRecommended
	}
}

// confidence is high only when pillar scores agree with each other and are
// not uniformly low: 0.6*consistency + 0.4*mean, with consistency falling
// twice as fast as the sample stddev grows.
func confidence(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s)
	}
	if len(values) < 2 {
		return 0.5
	}

	consistency := 1.0 - 2.0*statistics.StdDev(values)
	if consistency < 0 {
		consistency = 0
	}
	return statistics.Clamp01(0.6*consistency + 0.4*statistics.Mean(values))
}
