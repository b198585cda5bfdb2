package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Personal-Repositories-Space/prepme/internal/app"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepme",
	Short: "Interview-prep problem tracker",
	Long:  "PrepMe — terminal tracker for interview problems with spaced-repetition review and timed mock tests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Path to the data directory (overrides PREPME_DATA_DIR env var)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data-dir flag (highest
// priority), then PREPME_DATA_DIR env var, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data-dir"); p != "" {
		return p, nil
	}
	return store.DefaultDataDir()
}

// openStore opens the problem store for a CLI command.
func openStore(cmd *cobra.Command) (*store.ProblemStore, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return store.NewProblemStore(dir)
}

// runApp opens the stores and launches the TUI.
func runApp(cmd *cobra.Command) error {
	problemStore, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// The TUI works without the event log; stats just lose depth.
	events, err := store.OpenEventLog(store.EventLogPath(problemStore.Dir()))
	if err != nil {
		events = nil
	} else {
		defer events.Close()
	}

	return app.Run(problemStore, events)
}
