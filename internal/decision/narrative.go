package decision

import (
	"fmt"
	"sort"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

const (
	maxInsights    = 5
	maxActionItems = 5

	// Pillars scoring below this contribute a targeted action item.
	weakPillarThreshold = 0.6
)

// insights pulls qualitative flags out of each successful pillar's payload,
// in fixed pillar order, capped at maxInsights.
func insights(run *models.OrchestrationRun) []string {
	out := []string{}

	if payload, ok := financePayload(run); ok {
		if payload.Metrics["revenue_potential"] > 0.7 {
			out = append(out, "Strong revenue potential identified")
		}
		if payload.Metrics["roi_projection"] > 0.7 {
			out = append(out, "Positive ROI projections")
		}
	}

	if payload, ok := riskPayload(run); ok {
		var high []string
		for category, level := range payload.Categories {
			if level == models.RiskHigh {
				high = append(high, category)
			}
		}
		if len(high) > 0 {
			sort.Strings(high)
			out = append(out, "High risk areas: "+strings.Join(high, ", "))
		}
	}

	if payload, ok := compliancePayload(run); ok {
		if len(payload.Gaps) > 0 {
			out = append(out, fmt.Sprintf("Compliance attention needed: %d areas", len(payload.Gaps)))
		}
	}

	if payload, ok := marketPayload(run); ok {
		if payload.Metrics.SizePotential == "LARGE" {
			out = append(out, "Large market opportunity identified")
		}
		if payload.Metrics.CompetitiveIntensity == "LOW" {
			out = append(out, "Low competitive intensity, favorable entry conditions")
		}
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

var targetedActions = map[string]string{
	models.PillarFinance:    "Conduct detailed financial modeling and projections",
	models.PillarRisk:       "Develop comprehensive risk mitigation strategies",
	models.PillarCompliance: "Complete compliance assessment and gap analysis",
	models.PillarMarket:     "Perform thorough market research and validation",
}

var generalActions = []string{
	"Develop detailed implementation timeline",
	"Secure stakeholder alignment and approval",
	"Establish monitoring and review processes",
}

// actionItems ranks pillars ascending by score; the two weakest each
// contribute one targeted action, followed by the fixed process actions,
// capped at maxActionItems.
func actionItems(scores map[string]float64) []string {
	pillars := make([]string, 0, len(scores))
	for p := range scores {
		pillars = append(pillars, p)
	}
	sort.Slice(pillars, func(i, j int) bool {
		if scores[pillars[i]] != scores[pillars[j]] {
			return scores[pillars[i]] < scores[pillars[j]]
		}
		return pillars[i] < pillars[j]
	})

	actions := []string{}
	for _, p := range pillars {
		if len(actions) == 2 {
			break
		}
		if scores[p] >= weakPillarThreshold {
			break
		}
		action, ok := targetedActions[p]
		if !ok {
			action = fmt.Sprintf("Reassess %s analysis inputs", p)
		}
		actions = append(actions, action)
	}

	actions = append(actions, generalActions...)
	if len(actions) > maxActionItems {
		actions = actions[:maxActionItems]
	}
	return actions
}

// riskRollup derives the aggregate risk level primarily from the risk
// pillar's raw (non-inverted) score, downgraded further by a weak
// compliance posture.
func riskRollup(run *models.OrchestrationRun) models.RiskSummary {
	level := models.RiskMedium
	factors := []string{}

	if payload, ok := riskPayload(run); ok {
		switch {
		case payload.OverallRisk > 0.7:
			level = models.RiskHigh
			factors = append(factors, "High risk score from risk analysis")
		case payload.OverallRisk < 0.3:
			level = models.RiskLow
		}
	}

	if payload, ok := compliancePayload(run); ok {
		if payload.OverallCompliance < 0.4 {
			level = models.RiskHigh
			factors = append(factors, "Low compliance score")
		}
	}

	return models.RiskSummary{
		Level:              level,
		Factors:            factors,
		MitigationRequired: level != models.RiskLow,
	}
}

// rationale is the templated, band-specific explanation of the
// classification in business terms.
func rationale(category models.Category) string {
	switch category {
	case models.StronglyRecommend:
		return "Strong performance across all four pillars with minimal risks identified."
	case models.Recommend:
		return "Good overall assessment with manageable risks and strong opportunities."
	case models.Conditional:
		return "Mixed assessment requiring careful consideration and risk mitigation."
	case models.Caution:
		return "Significant concerns identified requiring major improvements before proceeding."
	case models.NotRecommended:
		return "Multiple critical issues identified across pillars; not recommended without major changes."
	default:
		return "Analysis could not be completed; manual review is required before any decision."
	}
}

func nextSteps(category models.Category) []string {
	switch category {
	case models.StronglyRecommend:
		return []string{
			"Proceed with implementation planning",
			"Secure funding and resources",
			"Begin stakeholder communication",
			"Establish project timeline",
		}
	case models.Recommend:
		return []string{
			"Address minor concerns identified",
			"Finalize implementation strategy",
			"Secure necessary approvals",
			"Begin pilot or phased rollout",
		}
	case models.Conditional:
		return []string{
			"Address key concerns before proceeding",
			"Conduct additional analysis in weak areas",
			"Develop risk mitigation strategies",
			"Seek expert consultation",
		}
	case models.Caution:
		return []string{
			"Major improvements required before proceeding",
			"Conduct comprehensive review",
			"Address critical risk factors",
			"Consider alternative approaches",
		}
	case models.NotRecommended:
		return []string{
			"Significant restructuring required",
			"Address fundamental issues",
			"Consider alternative strategies",
			"Conduct thorough reassessment",
		}
	default:
		return []string{"Review analysis and seek expert guidance"}
	}
}

func financePayload(run *models.OrchestrationRun) (models.FinanceReport, bool) {
	result, ok := run.Results[models.PillarFinance]
	if !ok || result.Failed() {
		return models.FinanceReport{}, false
	}
	payload, ok := result.Payload.(models.FinanceReport)
	return payload, ok
}

func riskPayload(run *models.OrchestrationRun) (models.RiskReport, bool) {
	result, ok := run.Results[models.PillarRisk]
	if !ok || result.Failed() {
		return models.RiskReport{}, false
	}
	payload, ok := result.Payload.(models.RiskReport)
	return payload, ok
}

func compliancePayload(run *models.OrchestrationRun) (models.ComplianceReport, bool) {
	result, ok := run.Results[models.PillarCompliance]
	if !ok || result.Failed() {
		return models.ComplianceReport{}, false
	}
	payload, ok := result.Payload.(models.ComplianceReport)
	return payload, ok
}

func marketPayload(run *models.OrchestrationRun) (models.MarketReport, bool) {
	result, ok := run.Results[models.PillarMarket]
	if !ok || result.Failed() {
		return models.MarketReport{}, false
	}
	payload, ok := result.Payload.(models.MarketReport)
	return payload, ok
}
