// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate project texts for registry projects in bulk",
	Long: `Batch runs the project-id generation path for the first N registry
records. Failing projects are reported and skipped; the run continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		gen, reg, err := newGenerator(pipelineConfig(), true)
		if err != nil {
			return err
		}
		defer reg.Close()

		summary, err := gen.GenerateBatch(cmd.Context(), limit, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "done: %d generated, %d failed (%d total)\n",
			summary.Generated, summary.Failed, summary.Total())
		if summary.HasFailures() {
			return fmt.Errorf("%d projects failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().Int("limit", 5, "number of registry projects to process (0 = all)")

	rootCmd.AddCommand(batchCmd)
}
