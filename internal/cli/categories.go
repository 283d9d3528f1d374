package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/questions"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available question categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, g := range questions.Groups {
				fmt.Fprintf(out, "%s (%s)\n", g.Name, g.ID)
				for _, sub := range g.Subcategories {
					fmt.Fprintf(out, "  %-24s %s\n", sub.ID, sub.Name)
				}
			}
			return nil
		},
	}
}
