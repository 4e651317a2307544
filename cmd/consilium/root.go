package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consilium",
		Short: "Consilium - multi-pillar business scenario analysis",
		Long: `Consilium analyzes business scenarios across four pillars (finance,
risk, compliance, market) and synthesizes the results into a single
weighted, classified recommendation.

Pillar agents run concurrently and individual failures degrade the
confidence of the answer instead of failing the analysis.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newStreamCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newAgentsCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
