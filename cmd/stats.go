package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Personal-Repositories-Space/prepme/internal/activity"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		problemStore, err := openStore(cmd)
		if err != nil {
			return err
		}

		all, err := problemStore.ListProblems()
		if err != nil {
			return err
		}
		results := problemStore.TestResults()

		now := time.Now()
		var due, mastered int
		for _, p := range all {
			if p.IsDue(now) {
				due++
			}
			if p.Mastered() {
				mastered++
			}
		}

		st := activity.Compute(all, results, now)

		fmt.Printf("Problems:   %d (%d due, %d mastered)\n", len(all), due, mastered)
		fmt.Printf("Streak:     %d day(s)\n", st.CurrentStreak)
		fmt.Printf("Tests:      %d taken\n", len(results))
		if len(results) > 0 {
			last := results[len(results)-1]
			fmt.Printf("Last test:  %d/%d (%d%%)\n", last.Score, last.Total, last.Percent())
		}

		if events, err := store.OpenEventLog(store.EventLogPath(problemStore.Dir())); err == nil {
			defer events.Close()
			if counts, err := events.ReviewCounts(); err == nil {
				total := counts["easy"] + counts["medium"] + counts["hard"]
				if total > 0 {
					fmt.Printf("Reviews:    %d (easy %d, medium %d, hard %d)\n",
						total, counts["easy"], counts["medium"], counts["hard"])
				}
			}
		}

		fmt.Println()
		for _, d := range st.Heatmap {
			if d.Active {
				fmt.Print("■")
			} else {
				fmt.Print("·")
			}
		}
		fmt.Println("  last 30 days")
		return nil
	},
}
