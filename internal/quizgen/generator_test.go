package quizgen

import (
	"testing"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/match"
)

func testCards(n int) []deck.Card {
	cards := make([]deck.Card, n)
	letters := "abcdefghijklmnopqrstuvwxyz"
	for i := range cards {
		id := string(letters[i%len(letters)])
		cards[i] = deck.Card{
			ID:    id,
			Front: deck.Front{Text: "front-" + id},
			Back:  deck.Back{Text: "back-" + id},
		}
	}
	return cards
}

func TestGenerate_Cardinality(t *testing.T) {
	g := NewSeeded(1)

	if got := len(g.Generate(testCards(5), ModeTypeAnswer, true)); got != 10 {
		t.Errorf("bidirectional: %d questions, want 10", got)
	}
	if got := len(g.Generate(testCards(5), ModeTypeAnswer, false)); got != 5 {
		t.Errorf("one-way: %d questions, want 5", got)
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	g := NewSeeded(1)
	if qs := g.Generate(nil, ModeMixed, true); len(qs) != 0 {
		t.Errorf("expected empty output, got %d questions", len(qs))
	}
}

func TestGenerate_CoversEveryCardAndDirection(t *testing.T) {
	g := NewSeeded(7)
	cards := testCards(6)
	qs := g.Generate(cards, ModeTypeAnswer, true)

	seen := make(map[string]map[Direction]bool)
	for _, q := range qs {
		if seen[q.CardID] == nil {
			seen[q.CardID] = make(map[Direction]bool)
		}
		if seen[q.CardID][q.Direction] {
			t.Errorf("duplicate question for card %s direction %s", q.CardID, q.Direction)
		}
		seen[q.CardID][q.Direction] = true
	}
	for _, c := range cards {
		if !seen[c.ID][FrontToBack] || !seen[c.ID][BackToFront] {
			t.Errorf("card %s missing a direction", c.ID)
		}
	}
}

func TestGenerate_MultipleChoiceShape(t *testing.T) {
	g := NewSeeded(42)
	cards := testCards(8)
	qs := g.Generate(cards, ModeMultipleChoice, true)

	for _, q := range qs {
		if len(q.Options) < 2 || len(q.Options) > 4 {
			t.Fatalf("question %s: %d options, want 2-4", q.CardID, len(q.Options))
		}

		correct := 0
		texts := make(map[string]bool)
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
				if opt.CardID != q.CardID {
					t.Errorf("correct option from card %s, want %s", opt.CardID, q.CardID)
				}
				if opt.Text != q.Answer() {
					t.Errorf("correct option text %q, want %q", opt.Text, q.Answer())
				}
			} else if opt.CardID == q.CardID {
				t.Errorf("distractor drawn from the question's own card %s", q.CardID)
			}
			texts[opt.Text] = true
		}
		if correct != 1 {
			t.Errorf("question %s: %d correct options, want exactly 1", q.CardID, correct)
		}
		if len(texts) != len(q.Options) {
			t.Errorf("question %s: duplicate option texts", q.CardID)
		}
	}
}

func TestGenerate_SmallPoolLimitsOptions(t *testing.T) {
	g := NewSeeded(3)
	qs := g.Generate(testCards(2), ModeMultipleChoice, false)

	for _, q := range qs {
		if len(q.Options) != 2 {
			t.Errorf("2-card deck: %d options, want 2", len(q.Options))
		}
	}
}

func TestGenerate_SingleCardFallsBackToTyped(t *testing.T) {
	cards := testCards(1)

	for _, mode := range []Mode{ModeMultipleChoice, ModeMixed} {
		g := NewSeeded(1)
		for _, q := range g.Generate(cards, mode, true) {
			if q.Mode != ModeTypeAnswer {
				t.Errorf("mode %s: single-card question generated as %s, want %s",
					mode, q.Mode, ModeTypeAnswer)
			}
			if len(q.Options) != 0 {
				t.Errorf("mode %s: single-card question carries %d options", mode, len(q.Options))
			}
		}
	}
}

func TestGenerate_AlternativesOnlyOnBackAnswers(t *testing.T) {
	cards := []deck.Card{
		{
			ID:    "fr",
			Front: deck.Front{Text: "France"},
			Back:  deck.Back{Text: "Paris", Alternatives: []string{"Ville de Paris"}},
		},
		{
			ID:    "de",
			Front: deck.Front{Text: "Germany"},
			Back:  deck.Back{Text: "Berlin"},
		},
	}

	g := NewSeeded(9)
	qs := g.Generate(cards, ModeTypeAnswer, true)

	for _, q := range qs {
		if q.CardID != "fr" {
			continue
		}
		switch q.Direction {
		case FrontToBack:
			if len(q.Accepted) != 2 || q.Accepted[0] != "Paris" || q.Accepted[1] != "Ville de Paris" {
				t.Errorf("front-to-back Accepted = %v", q.Accepted)
			}
		case BackToFront:
			if len(q.Accepted) != 1 || q.Accepted[0] != "France" {
				t.Errorf("back-to-front Accepted = %v", q.Accepted)
			}
		}
	}
}

func TestGenerate_MixedProducesConcreteModes(t *testing.T) {
	g := NewSeeded(11)
	qs := g.Generate(testCards(20), ModeMixed, true)

	counts := make(map[Mode]int)
	for _, q := range qs {
		if q.Mode != ModeMultipleChoice && q.Mode != ModeTypeAnswer {
			t.Fatalf("generated question carries mode %q", q.Mode)
		}
		counts[q.Mode]++
	}
	// 40 coin flips; both outcomes should appear.
	if counts[ModeMultipleChoice] == 0 || counts[ModeTypeAnswer] == 0 {
		t.Errorf("mixed mode never chose both: %v", counts)
	}
}

func TestGenerate_SeededReproducible(t *testing.T) {
	cards := testCards(10)

	a := NewSeeded(99).Generate(cards, ModeMixed, true)
	b := NewSeeded(99).Generate(cards, ModeMixed, true)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CardID != b[i].CardID || a[i].Mode != b[i].Mode || a[i].Direction != b[i].Direction {
			t.Fatalf("question %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if len(a[i].Options) != len(b[i].Options) {
			t.Fatalf("question %d option counts differ", i)
		}
		for j := range a[i].Options {
			if a[i].Options[j] != b[i].Options[j] {
				t.Fatalf("question %d option %d differs", i, j)
			}
		}
	}
}

func TestGenerate_ShuffleIsPermutation(t *testing.T) {
	g := NewSeeded(5)
	cards := testCards(12)
	qs := g.Generate(cards, ModeTypeAnswer, false)

	ids := make(map[string]int)
	for _, q := range qs {
		ids[q.CardID]++
	}
	for _, c := range cards {
		if ids[c.ID] != 1 {
			t.Errorf("card %s appears %d times, want 1", c.ID, ids[c.ID])
		}
	}
}

func TestGenerate_MatchOverrideCarried(t *testing.T) {
	cards := testCards(3)
	override := &match.Config{IgnoreCase: true, AllowTypoDistance: 2}
	cards[1].Match = override

	g := NewSeeded(2)
	for _, q := range g.Generate(cards, ModeTypeAnswer, false) {
		if q.CardID == cards[1].ID {
			if q.Match != override {
				t.Error("expected match override to be carried onto the question")
			}
		} else if q.Match != nil {
			t.Errorf("card %s: unexpected override", q.CardID)
		}
	}
}
