package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Personal-Repositories-Space/prepme/internal/leitner"
	"github.com/Personal-Repositories-Space/prepme/internal/problem"
	"github.com/Personal-Repositories-Space/prepme/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review <id> <easy|medium|hard>",
	Short: "Record a review outcome for a problem",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		problemStore, err := openStore(cmd)
		if err != nil {
			return err
		}

		outcome, err := problem.ParseOutcome(args[1])
		if err != nil {
			return err
		}

		rec := problemStore.LoadProblem(args[0])
		if rec == nil {
			return fmt.Errorf("no problem with id %q", args[0])
		}

		now := time.Now()
		before := rec.Box()
		updated := leitner.Review(*rec, outcome, now)
		if _, err := problemStore.SaveProblem(&updated); err != nil {
			return err
		}

		if events, err := store.OpenEventLog(store.EventLogPath(problemStore.Dir())); err == nil {
			_ = events.AppendReview(updated.ID, string(outcome), before, updated.Box(), now)
			_ = events.Close()
		}

		next := time.UnixMilli(updated.NextReviewDate)
		fmt.Printf("%s: box %d → %d, next review %s\n",
			updated.DisplayTitle(), before, updated.Box(), next.Format("Mon Jan 2"))
		return nil
	},
}
