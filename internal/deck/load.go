package deck

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads and validates a single deck file.
func Load(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Parse validates raw deck JSON against the schema plus semantic rules and
// decodes it.
func Parse(raw []byte) (*Deck, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var d Deck
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	if err := checkCards(d.Cards); err != nil {
		return nil, err
	}
	return &d, nil
}

// checkCards enforces the rules the schema cannot express.
func checkCards(cards []Card) error {
	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		if seen[c.ID] {
			return fmt.Errorf("card %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true

		if strings.TrimSpace(c.Front.Text) == "" {
			return fmt.Errorf("card %q: blank front text", c.ID)
		}
		if strings.TrimSpace(c.Back.Text) == "" {
			return fmt.Errorf("card %q: blank back text", c.ID)
		}
		for j, alt := range c.Back.Alternatives {
			if strings.TrimSpace(alt) == "" {
				return fmt.Errorf("card %q: blank alternative %d", c.ID, j)
			}
		}
	}
	return nil
}

// Discover walks dir for deck files (*.json) and loads each one. Files that
// fail validation are skipped and reported in the returned problem list so
// one broken deck doesn't hide the rest.
func Discover(dir string) ([]*Deck, []error) {
	var decks []*Deck
	var problems []error

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}
		d, loadErr := Load(path)
		if loadErr != nil {
			problems = append(problems, loadErr)
			return nil
		}
		decks = append(decks, d)
		return nil
	})
	if err != nil {
		problems = append(problems, fmt.Errorf("walk %s: %w", dir, err))
	}

	sort.Slice(decks, func(i, j int) bool {
		return decks[i].Title < decks[j].Title
	})
	return decks, problems
}

// Save writes the deck as indented JSON, creating parent directories.
func Save(d *Deck, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write deck %s: %w", path, err)
	}
	return nil
}

// DefaultDir resolves the deck directory in priority order:
// 1. FLASHIZ_DECKS environment variable
// 2. $XDG_DATA_HOME/flashiz/decks
// 3. ~/.local/share/flashiz/decks
func DefaultDir() (string, error) {
	if p := os.Getenv("FLASHIZ_DECKS"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "flashiz", "decks")
	return p, os.MkdirAll(p, 0o755)
}
