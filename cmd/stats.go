package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.SessionRepo()

		totals, err := repo.Totals(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}

		if totals.Sessions == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		accuracy := 0.0
		if totals.Questions > 0 {
			accuracy = float64(totals.Correct) / float64(totals.Questions) * 100
		}

		fmt.Printf("Sessions:  %d\n", totals.Sessions)
		fmt.Printf("Cards:     %d answered, %d correct\n", totals.Questions, totals.Correct)
		fmt.Printf("Accuracy:  %.0f%%\n", accuracy)

		hardest, err := repo.HardestCards(ctx, 3, 10)
		if err != nil {
			return fmt.Errorf("query hardest cards: %w", err)
		}
		if len(hardest) > 0 {
			fmt.Println()
			fmt.Println("Toughest cards")
			fmt.Println(strings.Repeat("─", 56))
			for _, cs := range hardest {
				prompt := cs.Prompt
				if len(prompt) > 40 {
					prompt = prompt[:40]
				}
				fmt.Printf("%-42s  %d/%d correct\n", prompt, cs.Correct, cs.Attempts)
			}
		}
		return nil
	},
}
