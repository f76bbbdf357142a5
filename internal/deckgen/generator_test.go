package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/flashiz/internal/llm"
)

const deckJSON = `{
  "title": "Nordic Capitals",
  "description": "Capitals of the Nordic countries",
  "cards": [
    {"front": "Norway", "back": "Oslo", "alternatives": [], "hint": "", "explanation": "Capital since 1814."},
    {"front": "Sweden", "back": "Stockholm", "alternatives": [], "hint": "Built on 14 islands", "explanation": ""},
    {"front": "  ", "back": "Helsinki", "alternatives": [], "hint": "", "explanation": ""},
    {"front": "Svealand's kingdom", "back": "stockholm", "alternatives": [], "hint": "", "explanation": ""},
    {"front": "Denmark", "back": "Copenhagen", "alternatives": ["København"], "hint": "", "explanation": ""}
  ]
}`

func TestGenerate_BuildsDeck(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(deckJSON)},
	)
	g := New(mock, DefaultConfig())

	d, err := g.Generate(context.Background(), "Nordic capitals", 5, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if d.Title != "Nordic Capitals" {
		t.Errorf("Title = %q", d.Title)
	}
	// Blank front and duplicate back are dropped.
	if len(d.Cards) != 3 {
		t.Fatalf("len(Cards) = %d, want 3", len(d.Cards))
	}
	for _, c := range d.Cards {
		if c.ID == "" {
			t.Errorf("card %q has no id", c.Front.Text)
		}
	}
	if alts := d.Cards[2].Back.Alternatives; len(alts) != 1 || alts[0] != "København" {
		t.Errorf("Alternatives = %v", alts)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(deckJSON)},
	)
	g := New(mock, DefaultConfig())

	if _, err := g.Generate(context.Background(), "Nordic capitals", 0, "focus on islands"); err != nil {
		t.Fatal(err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("CallCount = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != DeckSchema {
		t.Error("request must carry the deck schema")
	}
	if req.System == "" || len(req.Messages) != 1 {
		t.Errorf("request = %+v", req)
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	g := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := g.Generate(context.Background(), "  ", 5, ""); err == nil {
		t.Error("expected error for blank topic")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "anything", 5, "")
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("err = %T, want ErrProviderUnavailable", err)
	}
}

func TestGenerate_NoUsableCards(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"title":"T","description":"","cards":[{"front":"","back":"","alternatives":[],"hint":"","explanation":""}]}`)},
	)
	g := New(mock, DefaultConfig())

	if _, err := g.Generate(context.Background(), "topic", 5, ""); err == nil {
		t.Error("expected error when every card is unusable")
	}
}
