package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/deck"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List available decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDecksDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve decks dir: %w", err)
		}

		decks, problems := deck.Discover(dir)

		if len(decks) == 0 {
			fmt.Printf("No decks found in %s\n", dir)
		}
		for _, d := range decks {
			fmt.Printf("%-32s  %3d cards  %s\n", d.Title, len(d.Cards), d.Path)
		}

		for _, p := range problems {
			fmt.Fprintln(os.Stderr, "skipped:", p)
		}
		return nil
	},
}
