// ABOUTME: CLI command downloading server-rendered activity files.
// ABOUTME: Fetches FIT/GPX/KML/TCX/CSV exports into a local directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coroshub/coroshub/internal/coros"
	"github.com/coroshub/coroshub/internal/extract"
)

var (
	filesFormat string
	filesDir    string
	filesLimit  int
	filesSports []int
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Download per-activity files (fit, gpx, kml, tcx, csv)",
	Long: `Download the files Training Hub renders for each activity.

Coros generates these server-side, so availability depends on the sport
type; for example GPX needs GPS data, which indoor activities lack.
Unavailable combinations are skipped with a warning rather than failing
the run.

Files are named <start-time>_<activity-name>_<label-id>.<ext> inside
the target directory, which is created if needed.

EXAMPLES:

  coroshub files                       # FIT files into ./exports
  coroshub files --format gpx          # GPX instead
  coroshub files -n 5 --dir /tmp/runs  # Last 5, custom directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileType, err := coros.ParseFileType(filesFormat)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filesDir, 0750); err != nil {
			return fmt.Errorf("create target directory: %w", err)
		}

		extractor := extract.New(client, cfg.PageSize)
		refs, err := extractor.ListActivities(cmd.Context(), extract.Options{
			Limit:      filesLimit,
			SportTypes: filesSports,
		})
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}

		downloaded := 0
		for _, ref := range refs {
			fileURL, ok, err := client.RequestFileExport(cmd.Context(), ref, fileType)
			if err != nil {
				return fmt.Errorf("activity %s: request %s export: %w", ref.LabelID, filesFormat, err)
			}
			if !ok {
				color.Yellow("⚠ No %s available for %s (%s), skipping",
					filesFormat, ref.Name, ref.SportType.Name())
				continue
			}

			data, err := client.Download(cmd.Context(), fileURL)
			if err != nil {
				return fmt.Errorf("activity %s: download: %w", ref.LabelID, err)
			}

			name := exportFileName(ref, fileType)
			if err := os.WriteFile(filepath.Join(filesDir, name), data, 0600); err != nil {
				return fmt.Errorf("activity %s: write file: %w", ref.LabelID, err)
			}
			downloaded++
		}

		color.Green("✓ Downloaded %d of %d files to %s", downloaded, len(refs), filesDir)
		return nil
	},
}

// exportFileName builds a stable filesystem-safe name for one download.
func exportFileName(ref coros.ActivityRef, fileType coros.FileType) string {
	started := time.Unix(ref.StartTime, 0).UTC().Format("2006-01-02T15-04-05Z")
	return fmt.Sprintf("%s_%s_%s.%s", started, sanitizeName(ref.Name), ref.LabelID, fileType.Ext())
}

// sanitizeName makes an activity name safe to use in a filename.
func sanitizeName(name string) string {
	if name == "" {
		return "activity"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}

func init() {
	filesCmd.Flags().StringVar(&filesFormat, "format", "fit", "file format (csv, gpx, kml, tcx, fit)")
	filesCmd.Flags().StringVar(&filesDir, "dir", "exports", "target directory")
	filesCmd.Flags().IntVarP(&filesLimit, "limit", "n", 0, "max activities (0 = all)")
	filesCmd.Flags().IntSliceVar(&filesSports, "sport", nil, "filter by sport type code (repeatable)")

	rootCmd.AddCommand(filesCmd)
}
