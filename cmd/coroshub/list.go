// ABOUTME: CLI command for listing activities without exporting them.
// ABOUTME: Prints one line per activity in faint aligned columns.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coroshub/coroshub/internal/extract"
)

var (
	listLimit  int
	listSports []int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List activities",
	Long: `List activities from your Training Hub history.

OUTPUT FORMAT:

  Each line shows: DATE  SPORT  DISTANCE  DURATION  NAME

FILTERING:

  Use --sport with a Coros sport type code to filter, for example
  101 (indoor run), 104 (hike), 201 (indoor bike), 900 (walk).

EXAMPLES:

  coroshub list              # Last 20 activities
  coroshub list -n 50        # Last 50
  coroshub list --sport 104  # Hikes only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor := extract.New(client, cfg.PageSize)
		refs, err := extractor.ListActivities(cmd.Context(), extract.Options{
			Limit:      listLimit,
			SportTypes: listSports,
		})
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}

		if len(refs) == 0 {
			fmt.Println("No activities found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, ref := range refs {
			started := time.Unix(ref.StartTime, 0).Local()
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(started.Format("2006-01-02 15:04")),
				padRight(ref.SportType.Name(), 14),
				padRight(formatDistance(ref.Distance), 9),
				padRight(formatDuration(ref.TotalTime), 8),
				truncate(ref.Name, 40))
		}

		return nil
	},
}

// formatDistance renders meters as kilometers with two decimals.
func formatDistance(meters float64) string {
	if meters <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// formatDuration renders whole seconds as h:mm:ss or m:ss.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, maxLen int) string {
	// Slice on runes so a multibyte activity name is never cut mid-character.
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results (0 = all)")
	listCmd.Flags().IntSliceVar(&listSports, "sport", nil, "filter by sport type code (repeatable)")

	rootCmd.AddCommand(listCmd)
}
