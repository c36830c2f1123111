// ABOUTME: CLI commands for exporting and importing lift data.
// ABOUTME: Supports JSON, YAML, and Markdown formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data",
	Long: `Export exercises, gyms, templates, workouts, and plans.

FORMATS:

  json       Full round-trippable dump (default)
  yaml       Same data as YAML
  markdown   Human-readable training log

Examples:
  lift export > backup.json
  lift export --format yaml -o lift.yaml
  lift export --format markdown --since 2026-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch exportFormat {
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, perr := time.Parse("2006-01-02", exportSince)
				if perr != nil {
					return fmt.Errorf("invalid --since date %q (want YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = store.ExportMarkdown(since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %q (want json, yaml, or markdown)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import data from a previous 'lift export' JSON file.

Rows keep their original ids. Exercises already present (matched by
stable ID) are skipped; everything else is inserted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := store.ImportJSON(data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("✓ Imported %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: json, yaml, or markdown")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "markdown only: include workouts since date")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
