package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/internal/projectconfig"
)

func newAgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the configured pillar agents and weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			orch, err := buildOrchestrator(cfg, 0)
			if err != nil {
				return err
			}

			weights := orch.Engine().Weights()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tWEIGHT\tREADY")
			for _, info := range orch.Registry().Status() {
				weight, ok := weights[info.Name]
				weightCol := "-"
				if ok {
					weightCol = fmt.Sprintf("%.2f", weight)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", info.Name, info.Kind, weightCol, info.Ready)
			}
			return w.Flush()
		},
	}
	return cmd
}
