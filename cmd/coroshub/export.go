// ABOUTME: CLI command running the full extraction pipeline.
// ABOUTME: Lists, fetches, maps, and serializes activities to one file.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coroshub/coroshub/internal/export"
	"github.com/coroshub/coroshub/internal/extract"
)

var (
	exportOutput string
	exportFormat string
	exportLimit  int
	exportSports []int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export activities with laps and samples",
	Long: `Export your activity history to a structured file.

Each activity carries its full summary, the lap breakdown, and the
recorded time series (heart rate, cadence, distance). The output root
is an array of activities in the order Training Hub lists them.

The export is deterministic: the same data always produces the same
bytes, so output files diff cleanly across runs.

OPTIONS:

  --output, -o   Destination file (default: activities.json)
  --format, -f   json or yaml (default: json)
  --limit, -n    Only the most recent N activities (default: all)
  --sport        Filter by sport type code, repeatable

EXAMPLES:

  coroshub export                          # Everything, as JSON
  coroshub export -o backup.json           # Custom destination
  coroshub export -f yaml -o backup.yaml   # YAML output
  coroshub export -n 25                    # Last 25 activities
  coroshub export --sport 101 --sport 104  # Indoor runs and hikes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		extractor := extract.New(client, cfg.PageSize)
		result, err := extractor.Extract(cmd.Context(), extract.Options{
			Limit:      exportLimit,
			SportTypes: exportSports,
		})
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		if err := export.Write(result, exportOutput, format); err != nil {
			return err
		}

		color.Green("✓ Exported %d activities to %s", result.Len(), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "activities.json", "destination file")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json or yaml)")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 0, "max activities to export (0 = all)")
	exportCmd.Flags().IntSliceVar(&exportSports, "sport", nil, "filter by sport type code (repeatable)")

	rootCmd.AddCommand(exportCmd)
}
