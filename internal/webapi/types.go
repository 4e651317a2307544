package webapi

import (
	"time"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/pillars"
)

// AnalyzeResponse is the API response for a completed analysis.
type AnalyzeResponse struct {
	RunID          string                   `json:"run_id"`
	Run            *models.OrchestrationRun `json:"run"`
	Recommendation *models.Recommendation   `json:"recommendation"`
}

// RunSummary is the API response for a single run in the list.
type RunSummary struct {
	ID           string           `json:"id"`
	Status       models.RunStatus `json:"status"`
	Category     models.Category  `json:"recommendation"`
	OverallScore float64          `json:"overall_score"`
	Confidence   float64          `json:"confidence"`
	Succeeded    int              `json:"succeeded"`
	Total        int              `json:"total"`
	Duration     float64          `json:"duration"`
	Timestamp    time.Time        `json:"timestamp"`
}

// RunDetail is the API response for a single run with full pillar results.
type RunDetail struct {
	RunSummary
	Run            *models.OrchestrationRun `json:"run"`
	Recommendation *models.Recommendation   `json:"recommendation"`
}

// SummaryResponse is the aggregate KPI response.
type SummaryResponse struct {
	TotalRuns     int            `json:"total_runs"`
	DegradedRuns  int            `json:"degraded_runs"`
	AvgScore      float64        `json:"avg_score"`
	AvgConfidence float64        `json:"avg_confidence"`
	Categories    map[string]int `json:"categories"`
}

// StatusResponse reports the configured agent set and active weights.
type StatusResponse struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	Agents  []pillars.AgentInfo `json:"agents"`
	Weights map[string]float64  `json:"weights"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
