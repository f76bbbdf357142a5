package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/app"
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/deckgen"
	"github.com/abhisek/flashiz/internal/llm"
	"github.com/abhisek/flashiz/internal/match"
	"github.com/abhisek/flashiz/internal/quizgen"
	"github.com/abhisek/flashiz/internal/screens/home"
	"github.com/abhisek/flashiz/internal/screens/study"
	"github.com/abhisek/flashiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// deckName, when non-empty, skips the menu and starts a session on that deck.
func runApp(cmd *cobra.Command, deckName string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	decksDir, err := resolveDecksDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve decks dir: %w", err)
	}

	mode, err := parseMode(cmd)
	if err != nil {
		return err
	}
	bidirectional, _ := cmd.Flags().GetBool("bidirectional")

	opts := app.Options{
		Config: home.Config{
			Study: study.Options{
				Sessions:      st.SessionRepo(),
				Mode:          mode,
				Bidirectional: bidirectional,
				Match:         match.DefaultConfig(),
			},
			DecksDir: decksDir,
		},
	}

	if deckName != "" {
		d, err := findDeck(decksDir, deckName)
		if err != nil {
			return err
		}
		opts.StartDeck = d
	}

	provider, err := buildProvider(cmd, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Deck generation will be unavailable.")
	} else {
		opts.Generator = deckgen.New(provider, deckgen.DefaultConfig())
	}

	return app.Run(opts)
}

// findDeck resolves a deck by title or file name (with or without .json),
// case-insensitively.
func findDeck(dir, name string) (*deck.Deck, error) {
	decks, _ := deck.Discover(dir)
	want := strings.ToLower(strings.TrimSuffix(name, ".json"))
	for _, d := range decks {
		base := strings.TrimSuffix(filepath.Base(d.Path), ".json")
		if strings.ToLower(d.Title) == want || strings.ToLower(base) == want {
			return d, nil
		}
	}
	if len(decks) == 0 {
		return nil, fmt.Errorf("no decks found in %s", dir)
	}
	titles := make([]string, len(decks))
	for i, d := range decks {
		titles[i] = d.Title
	}
	return nil, fmt.Errorf("deck %q not found (have: %s)", name, strings.Join(titles, ", "))
}

// buildProvider assembles an LLM provider from FLASHIZ_* env config, falling
// back to probing the standard API key variables.
func buildProvider(cmd *cobra.Command, events store.EventRepo) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no API key found (set FLASHIZ_ANTHROPIC_API_KEY, FLASHIZ_OPENAI_API_KEY or FLASHIZ_GEMINI_API_KEY)")
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, events)
}

// parseMode maps the --mode flag onto a question mode.
func parseMode(cmd *cobra.Command) (quizgen.Mode, error) {
	s, _ := cmd.Flags().GetString("mode")
	switch s {
	case "choice", "multiple_choice":
		return quizgen.ModeMultipleChoice, nil
	case "typed", "type_answer":
		return quizgen.ModeTypeAnswer, nil
	case "", "mixed":
		return quizgen.ModeMixed, nil
	}
	return "", fmt.Errorf("unknown mode %q (want choice, typed or mixed)", s)
}
