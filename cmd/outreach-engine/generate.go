// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate project texts for one project",
	Long: `Generate produces a multilingual project page and faculty teaser for a
single project and persists them under the output directory.

With --project-id the project metadata is resolved from the registry; the
derived request uses the project title as seed content, keywords from the
mapped table columns, and the default audience and languages. Otherwise
--description starts a direct request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project-id")
		description, _ := cmd.Flags().GetString("description")
		keywords, _ := cmd.Flags().GetStringSlice("keywords")
		audiences, _ := cmd.Flags().GetStringSlice("audience")
		languages, _ := cmd.Flags().GetStringSlice("languages")
		referenceFile, _ := cmd.Flags().GetString("reference")

		fromRegistry := description == ""
		if fromRegistry && projectID == "" {
			return fmt.Errorf("either --project-id or --description is required")
		}

		gen, reg, err := newGenerator(pipelineConfig(), fromRegistry)
		if err != nil {
			return err
		}
		if reg != nil {
			defer reg.Close()
		}

		ctx := cmd.Context()

		if fromRegistry {
			result, err := gen.GenerateFromProjectID(ctx, projectID)
			if err != nil {
				return err
			}
			return printSummary(cmd, projectID, result)
		}

		req := types.GenerationRequest{
			ProjectID:          projectID,
			ProjectDescription: description,
			Keywords:           keywords,
			SourceType:         types.SourceDatabase,
		}
		for _, a := range audiences {
			req.TargetAudience = append(req.TargetAudience, types.Audience(strings.TrimSpace(a)))
		}
		for _, l := range languages {
			req.Languages = append(req.Languages, types.Language(strings.TrimSpace(l)))
		}

		var reference string
		if referenceFile != "" {
			data, err := os.ReadFile(referenceFile)
			if err != nil {
				return fmt.Errorf("reading reference file: %w", err)
			}
			reference = string(data)
		}

		result, err := gen.Generate(ctx, req, reference)
		if err != nil {
			return err
		}
		return printSummary(cmd, projectID, result)
	},
}

// printSummary writes a short human-readable result overview to stdout.
func printSummary(cmd *cobra.Command, projectID string, result *types.GenerationResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "generated %s\n", projectID)
	for lang, entry := range result.ProjectPage {
		fmt.Fprintf(out, "  project_page[%s]: %d words (%s)\n", lang, entry.WordCount, entry.ReadingLevel)
	}
	for lang, entry := range result.FacultyTeaser {
		fmt.Fprintf(out, "  faculty_teaser[%s]: %d words (%s)\n", lang, entry.WordCount, entry.ReadingLevel)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	return nil
}

func init() {
	generateCmd.Flags().String("project-id", "", "project identifier (registry lookup when --description is absent)")
	generateCmd.Flags().String("description", "", "free-text seed content for a direct request")
	generateCmd.Flags().StringSlice("keywords", nil, "keywords for a direct request")
	generateCmd.Flags().StringSlice("audience", []string{"faculty"}, "target audience tags: faculty, students, industry, general_public")
	generateCmd.Flags().StringSlice("languages", []string{"de", "en"}, "output language codes")
	generateCmd.Flags().String("reference", "", "path to a reference text file for evaluation")

	rootCmd.AddCommand(generateCmd)
}
