// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outreach-engine/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the project metadata registry",
	Long: `Registry maintains the read-only project metadata table backing the
project-id generation path. Import a CSV export of the project report, then
list or inspect records.`,
}

var registryImportCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import a CSV project table into the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Open(pipelineConfig().Registry)
		if err != nil {
			return err
		}
		defer reg.Close()

		count, err := reg.ImportCSV(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d projects\n", count)
		return nil
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry records",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Open(pipelineConfig().Registry)
		if err != nil {
			return err
		}
		defer reg.Close()

		projects, err := reg.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range projects {
			ref := "no reference"
			if p.ReferenceText != "" {
				ref = "reference"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", p.ProjectID, p.Title, ref)
		}
		return nil
	},
}

var registryShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show one registry record with derived keywords",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Open(pipelineConfig().Registry)
		if err != nil {
			return err
		}
		defer reg.Close()

		p, err := reg.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "project_id: %s\n", p.ProjectID)
		fmt.Fprintf(out, "title: %s\n", p.Title)
		fmt.Fprintf(out, "keywords: %s\n", strings.Join(reg.Keywords(p), ", "))
		if p.ReferenceText != "" {
			fmt.Fprintf(out, "reference: %s\n", p.ReferenceText)
		}
		return nil
	},
}

func init() {
	registryCmd.AddCommand(registryImportCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryShowCmd)

	rootCmd.AddCommand(registryCmd)
}
