package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/client"
)

func newLeaderboardCmd() *cobra.Command {
	var (
		category    string
		subcategory string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := newStateStore(cfg)
			if err != nil {
				return err
			}
			c := client.New(cfg.APIBaseURL, store)

			entries, err := c.Leaderboard(cmd.Context(), category, subcategory, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No scores yet.")
				return nil
			}
			for i, e := range entries {
				fmt.Fprintf(out, "%2d. %-20s %d/%d  %s\n", i+1, e.Username, e.Score, e.TotalQuestions, e.SubcategoryID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category id")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "filter by subcategory id")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of entries (server default when 0)")
	return cmd
}
