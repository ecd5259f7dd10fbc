// ABOUTME: Root Cobra command for the coroshub CLI.
// ABOUTME: Loads config and logs in to Coros in PersistentPreRunE.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coroshub/coroshub/internal/config"
	"github.com/coroshub/coroshub/internal/coros"
)

var (
	cfg     *config.Config
	client  *coros.Client
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coroshub",
	Short: "Export training data from Coros Training Hub",
	Long: `Coroshub pulls your workout history out of Coros Training Hub.

It logs in with your Coros account, walks your activity history, and
writes laps and time-series samples to a structured file you own.

CREDENTIALS:

  Set these environment variables before running any command:

    COROS_EMAIL      your Coros account email (or phone number)
    COROS_PASSWORD   your Coros account password

  The password is hashed before it is sent; only the resulting session
  token is kept, and only in memory for the duration of one run.

QUICK START:

  $ coroshub list                        # See your recent activities
  $ coroshub export                      # Full history to activities.json
  $ coroshub export -n 10 -o latest.json # Just the last 10
  $ coroshub export --format yaml        # YAML instead of JSON
  $ coroshub files --format gpx          # Download GPX files per activity

FAILURE BEHAVIOR:

  A run either exports everything you asked for or fails with a
  non-zero exit code. Partial output files are never written.

OPTIONAL SETTINGS:

  COROS_BASE_URL     API endpoint override (default teamapi.coros.com)
  COROS_TIMEOUT      per-request timeout (default 30s)
  COROS_PAGE_SIZE    listing page size, max 200 (default 200)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never talk to the API skip config and login.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		client = coros.NewClient(cfg.BaseURL, cfg.Timeout)
		if err := client.Login(cmd.Context(), cfg.Email, cfg.Password); err != nil {
			return fmt.Errorf("coros login: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
