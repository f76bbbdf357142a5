package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/deckgen"
	"github.com/abhisek/flashiz/internal/store"
)

var genCmd = &cobra.Command{
	Use:   "gen <topic>",
	Short: "Generate a deck from a topic using an LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		cards, _ := cmd.Flags().GetInt("cards")
		notes, _ := cmd.Flags().GetString("notes")
		out, _ := cmd.Flags().GetString("out")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := buildProvider(cmd, st.EventRepo())
		if err != nil {
			return err
		}
		generator := deckgen.New(provider, deckgen.DefaultConfig())

		fmt.Fprintf(os.Stderr, "Generating deck for %q...\n", topic)
		d, err := generator.Generate(cmd.Context(), topic, cards, notes)
		if err != nil {
			return err
		}

		if out == "" {
			dir, err := resolveDecksDir(cmd)
			if err != nil {
				return fmt.Errorf("resolve decks dir: %w", err)
			}
			out = filepath.Join(dir, slugify(d.Title)+".json")
		}

		if err := deck.Save(d, out); err != nil {
			return err
		}

		fmt.Printf("Created %q with %d cards\n", d.Title, len(d.Cards))
		fmt.Println("Saved to", out)
		return nil
	},
}

func init() {
	genCmd.Flags().IntP("cards", "n", 0, "Number of cards (default 15)")
	genCmd.Flags().String("notes", "", "Extra guidance for the generator")
	genCmd.Flags().StringP("out", "o", "", "Output file (default: <decks dir>/<slug>.json)")
}

// slugify turns a deck title into a safe file name.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "deck"
	}
	return slug
}
