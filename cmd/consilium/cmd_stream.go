package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/orchestration"
	"github.com/consilium-ai/consilium/internal/projectconfig"
)

func newStreamCommand() *cobra.Command {
	var (
		scenarioFile string
		weightFlags  []string
		focusPillars []string
		timeoutSecs  int
	)

	cmd := &cobra.Command{
		Use:   "stream [scenario]",
		Short: "Analyze a scenario with live per-pillar progress",
		Long: `Analyze a business scenario like analyze, but run the pillars one at a
time and print each result as it lands, followed by the final
recommendation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := readScenario(cmd, args, scenarioFile)
			if err != nil {
				return err
			}

			weights, err := parseWeights(weightFlags)
			if err != nil {
				return err
			}

			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			orch, err := buildOrchestrator(cfg, timeoutSecs)
			if err != nil {
				return err
			}

			req := models.ScenarioRequest{
				Scenario: scenario,
				Weights:  weights,
				Focus:    focusPillars,
			}
			events, err := orch.RunWithUpdates(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var final *orchestration.Event
			for ev := range events {
				switch ev.Kind {
				case orchestration.EventRunStarted:
					fmt.Fprintf(out, "Run %s started\n", ev.RunID)
				case orchestration.EventPillarStarted:
					fmt.Fprintf(out, "  • %-12s analyzing...\n", ev.Pillar)
				case orchestration.EventPillarCompleted:
					fmt.Fprintf(out, "  ✓ %-12s done (%s)\n", ev.Pillar, formatDuration(ev.Result.Duration))
				case orchestration.EventPillarFailed:
					fmt.Fprintf(out, "  ✗ %-12s failed: %s\n", ev.Pillar, ev.Err)
				case orchestration.EventRunCompleted:
					final = &ev
				}
			}

			if final == nil || final.Run == nil {
				return fmt.Errorf("stream ended before the run completed")
			}

			fmt.Fprintf(out, "Run finished in %s\n\n", formatDuration(final.Run.FinishedAt.Sub(final.Run.StartedAt)))
			printRecommendation(out, final.Run, final.Recommendation)

			if final.Recommendation.Degraded() {
				return &DegradedAnalysisError{RunID: final.Run.RunID}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "Read the scenario from a file (- for stdin)")
	cmd.Flags().StringArrayVarP(&weightFlags, "weight", "w", nil, "Pillar weight override as pillar=value (can be repeated)")
	cmd.Flags().StringArrayVarP(&focusPillars, "pillar", "p", nil, "Restrict the analysis to the named pillars (can be repeated)")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "Per-agent timeout in seconds (overrides config)")

	return cmd
}

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
