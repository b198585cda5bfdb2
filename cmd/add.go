package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Personal-Repositories-Space/prepme/internal/capture"
)

var addCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Capture a new problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problemStore, err := openStore(cmd)
		if err != nil {
			return err
		}

		details := capture.PageDetails{}
		if len(args) == 1 {
			details.URL = args[0]
		}
		details.Title, _ = cmd.Flags().GetString("title")
		details.Description, _ = cmd.Flags().GetString("description")
		details.PlatformID, _ = cmd.Flags().GetString("platform")

		if details.URL == "" && details.Title == "" {
			return fmt.Errorf("provide a URL argument or --title")
		}

		rec, err := capture.Capture(problemStore, capture.StaticSource(details), time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Saved %q (%s)\n", rec.DisplayTitle(), rec.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().String("title", "", "Problem title")
	addCmd.Flags().String("description", "", "Problem description")
	addCmd.Flags().String("platform", "", "Source platform identifier (defaults to manual)")
}
