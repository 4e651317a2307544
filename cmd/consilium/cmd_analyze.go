package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/projectconfig"
	"github.com/consilium-ai/consilium/internal/webapi"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		scenarioFile string
		outputPath   string
		weightFlags  []string
		focusPillars []string
		timeoutSecs  int
		formatJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [scenario]",
		Short: "Analyze a business scenario across all pillars",
		Long: `Analyze a business scenario across the configured pillar agents and
print the synthesized recommendation.

The scenario can be passed as an argument, read from a file with --file,
or piped on stdin with --file -. A .yaml/.yml file is treated as a
scenario document with scenario, weights, and pillars keys. Weights
override the configured pillar weighting for this run and must sum
to 1.0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readScenarioDocument(cmd, args, scenarioFile)
			if err != nil {
				return err
			}

			weights, err := parseWeights(weightFlags)
			if err != nil {
				return err
			}
			if weights == nil {
				weights = doc.Weights
			}
			focus := focusPillars
			if len(focus) == 0 {
				focus = doc.Pillars
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
				Scenario: doc.Scenario,
				Weights:  weights,
				Focus:    focus,
			}
			run, rec, err := orch.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			if outputPath != "" {
				data, err := json.MarshalIndent(webapi.StoredRun{Run: run, Recommendation: rec}, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding results: %w", err)
				}
				if err := os.WriteFile(outputPath, data, 0o644); err != nil {
					return fmt.Errorf("writing results: %w", err)
				}
			}

			if formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(webapi.StoredRun{Run: run, Recommendation: rec}); err != nil {
					return err
				}
			} else {
				printRecommendation(cmd.OutOrStdout(), run, rec)
			}

			if rec.Degraded() {
				return &DegradedAnalysisError{RunID: run.RunID}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "Read the scenario from a file (- for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for the full run record")
	cmd.Flags().StringArrayVarP(&weightFlags, "weight", "w", nil, "Pillar weight override as pillar=value (can be repeated)")
	cmd.Flags().StringArrayVarP(&focusPillars, "pillar", "p", nil, "Restrict the analysis to the named pillars (can be repeated)")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "Per-agent timeout in seconds (overrides config)")
	cmd.Flags().BoolVar(&formatJSON, "json", false, "Print the full run record as JSON instead of the report")

	return cmd
}
