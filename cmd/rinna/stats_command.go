package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rinna/internal/api"
	"rinna/internal/workflow"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show work-item counts by lifecycle state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			stats, err := api.ItemStats(cmd.Context(), cfg, ctx.logger())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, stats)
			}
			rows := make([][]string, 0, len(stats))
			total := 0
			for _, state := range workflow.AllStates() {
				count := stats[string(state)]
				if count == 0 {
					continue
				}
				total += count
				rows = append(rows, []string{string(state), strconv.Itoa(count)})
			}
			if total == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No work items found")
				return nil
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Status", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
