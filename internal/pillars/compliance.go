package pillars

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

// ComplianceParams tunes the compliance agent.
type ComplianceParams struct {
	// GapThreshold is the area score below which a compliance gap is
	// reported.
	GapThreshold float64 `mapstructure:"gap_threshold"`
	Confidence   float64 `mapstructure:"confidence"`
}

func defaultComplianceParams() ComplianceParams {
	return ComplianceParams{
		GapThreshold: 0.5,
		Confidence:   0.82,
	}
}

// complianceAreas maps each regulatory area to the scenario keywords that
// signal readiness coverage for it.
var complianceAreas = []struct {
	name     string
	keywords []string
}{
	{"Data Protection and Privacy", []string{"data", "privacy", "personal", "gdpr", "ccpa", "consent"}},
	{"Financial Services Regulations", []string{"financial", "banking", "securities", "sox", "basel", "audit"}},
	{"Industry-Specific Compliance", []string{"industry", "regulation", "standard", "certification", "fda", "fcc"}},
	{"Labor and Employment", []string{"employment", "labor", "worker", "workplace", "discrimination", "safety"}},
	{"Intellectual Property", []string{"patent", "trademark", "copyright", "intellectual", "property", "license"}},
	{"Anti-Money Laundering", []string{"aml", "money", "laundering", "kyc", "suspicious", "transaction"}},
	{"Cybersecurity", []string{"cybersecurity", "security", "breach", "encryption", "access", "incident"}},
}

// ComplianceAgent scores regulatory readiness per area from keyword
// coverage. Area scores are oriented so higher means better prepared.
type ComplianceAgent struct {
	params ComplianceParams
}

func NewComplianceAgent(params ComplianceParams) *ComplianceAgent {
	def := defaultComplianceParams()
	if params.GapThreshold <= 0 {
		params.GapThreshold = def.GapThreshold
	}
	if params.Confidence <= 0 {
		params.Confidence = def.Confidence
	}
	return &ComplianceAgent{params: params}
}

func (a *ComplianceAgent) Name() string { return models.PillarCompliance }

func (a *ComplianceAgent) Analyze(ctx context.Context, scenario string) Outcome {
	if err := ctx.Err(); err != nil {
		return Failure(err)
	}

	text := strings.ToLower(scenario)

	areaScores := make(map[string]float64, len(complianceAreas))
	var gaps, requirements []string
	for _, area := range complianceAreas {
		matched := countPresent(text, area.keywords)
		if matched == 0 {
			// Areas the scenario never touches are out of scope, not gaps.
			continue
		}
		score := 0.4 + float64(matched)/float64(len(area.keywords))*0.6
		if score > 1.0 {
			score = 1.0
		}
		areaScores[area.name] = score
		requirements = append(requirements, area.name)
		if score < a.params.GapThreshold {
			gaps = append(gaps, area.name)
		}
	}
	sort.Strings(gaps)

	return Success(models.ComplianceReport{
		Analysis:           fmt.Sprintf("Compliance screening: %d regulatory areas in scope, %d gaps", len(areaScores), len(gaps)),
		AreaScores:         areaScores,
		Requirements:       requirements,
		Gaps:               gaps,
		RecommendedActions: complianceActions(gaps),
		OverallCompliance:  overallCompliance(areaScores),
		Confidence:         a.params.Confidence,
	})
}

// overallCompliance is the mean of in-scope area scores; a scenario that
// touches no regulated area is treated as neutral.
func overallCompliance(areaScores map[string]float64) float64 {
	if len(areaScores) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, s := range areaScores {
		sum += s
	}
	return sum / float64(len(areaScores))
}

func complianceActions(gaps []string) []string {
	if len(gaps) == 0 {
		return []string{"Maintain current compliance monitoring"}
	}
	actions := make([]string, 0, len(gaps)+1)
	for _, gap := range gaps {
		actions = append(actions, "Close readiness gap: "+gap)
	}
	actions = append(actions, "Schedule a full compliance gap analysis")
	return actions
}
