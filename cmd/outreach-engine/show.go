// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outreach-engine/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Inspect persisted generation output",
	Long: `Show lists projects with persisted output, or prints the generated texts
and evaluation for one project. Missing evaluations and references are normal
states, not errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := storage.NewStore(pipelineConfig().Storage)
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			ids, err := store.ListProjects()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		}

		projectID := args[0]
		result, err := store.LoadGeneration(projectID)
		if err != nil {
			return err
		}

		for lang, entry := range result.ProjectPage {
			fmt.Fprintf(out, "--- project_page[%s] (%d words, %s)\n%s\n\n", lang, entry.WordCount, entry.ReadingLevel, entry.Text)
		}
		for lang, entry := range result.FacultyTeaser {
			fmt.Fprintf(out, "--- faculty_teaser[%s] (%d words, %s)\n%s\n\n", lang, entry.WordCount, entry.ReadingLevel, entry.Text)
		}
		if len(result.UsedKeywords) > 0 {
			fmt.Fprintf(out, "used keywords: %v\n", result.UsedKeywords)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}

		eval, err := store.LoadEvaluation(projectID)
		if err != nil {
			return err
		}
		switch {
		case eval == nil:
			fmt.Fprintln(out, "evaluation: none")
		case eval.Skipped():
			fmt.Fprintf(out, "evaluation: skipped (%s)\n", eval.Reason)
		default:
			fmt.Fprintf(out, "evaluation: %.4f (%s, %s)\n", *eval.Score, eval.Metric, eval.EmbeddingModel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
