package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		problemStore, err := openStore(cmd)
		if err != nil {
			return err
		}

		all, err := problemStore.ListProblems()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No problems captured yet. Try: prepme add <url>")
			return nil
		}

		sort.Slice(all, func(i, j int) bool {
			return all[i].ID < all[j].ID
		})

		now := time.Now()
		for _, p := range all {
			status := " "
			switch {
			case p.Mastered():
				status = "★"
			case p.IsDue(now):
				status = "!"
			}
			fmt.Printf("%s %-30s box %d  %s\n", status, p.ID, p.Box(), p.DisplayTitle())
		}
		return nil
	},
}
