package models

import "time"

// Category is the ordered recommendation classification. ReviewRequired is
// reserved for the degraded case where every pillar failed.
type Category string

const (
	StronglyRecommend Category = "STRONGLY_RECOMMEND"
	Recommend         Category = "RECOMMEND"
	Conditional       Category = "CONDITIONAL"
	Caution           Category = "CAUTION"
	NotRecommended    Category = "NOT_RECOMMENDED"
	ReviewRequired    Category = "REVIEW_REQUIRED"
)

// RiskSummary is the aggregate risk rollup across pillars.
type RiskSummary struct {
	Level              RiskLevel `json:"level"`
	Factors            []string  `json:"factors"`
	MitigationRequired bool      `json:"mitigation_required"`
}

// Recommendation is the synthesized decision for one orchestration run.
// It is derived purely from the run record and carries no lifecycle of its
// own: recomputing it from the same run yields the same answer.
type Recommendation struct {
	OverallScore float64            `json:"overall_score"`
	Category     Category           `json:"recommendation"`
	Confidence   float64            `json:"confidence"`
	PillarScores map[string]float64 `json:"pillar_scores"`
	Insights     []string           `json:"key_insights"`
	ActionItems  []string           `json:"action_items"`
	RiskSummary  RiskSummary        `json:"risk_assessment"`
	Rationale    string             `json:"decision_rationale"`
	NextSteps    []string           `json:"next_steps"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Degraded reports whether this recommendation is the neutral fallback
// produced when no pillar succeeded.
func (r *Recommendation) Degraded() bool { return r.Category == ReviewRequired }
