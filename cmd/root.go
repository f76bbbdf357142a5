package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "flashiz",
	Short: "Flashcards in your terminal",
	Long:  "Flashiz — terminal flashcard app with fuzzy answer matching and LLM deck generation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLASHIZ_DB env var)")
	rootCmd.PersistentFlags().String("decks", "", "Deck directory (overrides FLASHIZ_DECKS env var)")

	rootCmd.Flags().String("mode", "mixed", "Question mode: choice, typed or mixed")
	rootCmd.Flags().Bool("bidirectional", true, "Quiz both directions (disable with --bidirectional=false)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FLASHIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDecksDir returns the deck directory using --decks flag (highest
// priority), then FLASHIZ_DECKS env var, then the default XDG path.
func resolveDecksDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("decks"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}
	return deck.DefaultDir()
}
