package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List problems due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		problemStore, err := openStore(cmd)
		if err != nil {
			return err
		}

		all, err := problemStore.ListProblems()
		if err != nil {
			return err
		}

		now := time.Now()
		sort.Slice(all, func(i, j int) bool {
			return all[i].NextReviewDate < all[j].NextReviewDate
		})

		count := 0
		for _, p := range all {
			if !p.IsDue(now) {
				continue
			}
			count++
			fmt.Printf("%-30s box %d  %s\n", p.ID, p.Box(), p.DisplayTitle())
		}
		if count == 0 {
			fmt.Println("Nothing due. Nice.")
		}
		return nil
	},
}
