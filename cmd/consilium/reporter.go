package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

// categoryLabel renders a classification with a quick visual cue.
func categoryLabel(c models.Category) string {
	switch c {
	case models.StronglyRecommend:
		return "✅ STRONGLY RECOMMEND"
	case models.Recommend:
		return "✅ RECOMMEND"
	case models.Conditional:
		return "⚠️ CONDITIONAL"
	case models.Caution:
		return "⚠️ CAUTION"
	case models.NotRecommended:
		return "❌ NOT RECOMMENDED"
	default:
		return "❓ REVIEW REQUIRED"
	}
}

// printRecommendation renders the synthesized recommendation as a readable
// console report.
func printRecommendation(w io.Writer, run *models.OrchestrationRun, rec *models.Recommendation) {
	fmt.Fprintln(w, strings.Repeat("─", 64))
	fmt.Fprintf(w, "Recommendation: %s\n", categoryLabel(rec.Category))
	fmt.Fprintf(w, "Overall score:  %.2f   Confidence: %.2f\n", rec.OverallScore, rec.Confidence)
	fmt.Fprintln(w, strings.Repeat("─", 64))

	if len(rec.PillarScores) > 0 {
		fmt.Fprintln(w, "\nPillar scores:")
		pillarNames := make([]string, 0, len(rec.PillarScores))
		for p := range rec.PillarScores {
			pillarNames = append(pillarNames, p)
		}
		sort.Strings(pillarNames)
		for _, p := range pillarNames {
			status := "ok"
			if result, ok := run.Results[p]; ok && result.Failed() {
				status = "failed: " + result.Err
			}
			fmt.Fprintf(w, "  %-12s %.2f  (%s)\n", p, rec.PillarScores[p], status)
		}
	}

	if len(rec.Insights) > 0 {
		fmt.Fprintln(w, "\nKey insights:")
		for _, s := range rec.Insights {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}

	if len(rec.ActionItems) > 0 {
		fmt.Fprintln(w, "\nAction items:")
		for _, s := range rec.ActionItems {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}

	fmt.Fprintf(w, "\nRisk level: %s", rec.RiskSummary.Level)
	if rec.RiskSummary.MitigationRequired {
		fmt.Fprint(w, " (mitigation required)")
	}
	fmt.Fprintln(w)
	for _, factor := range rec.RiskSummary.Factors {
		fmt.Fprintf(w, "  • %s\n", factor)
	}

	fmt.Fprintf(w, "\nRationale: %s\n", rec.Rationale)

	if len(rec.NextSteps) > 0 {
		fmt.Fprintln(w, "\nNext steps:")
		for i, s := range rec.NextSteps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}

	fmt.Fprintf(w, "\nRun %s: %d/%d pillars succeeded\n", run.RunID, run.Succeeded, run.Total)
}
