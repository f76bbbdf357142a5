package deckgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/llm"
)

// Config bounds a deck generation request.
type Config struct {
	// DefaultCards is the card count used when the caller passes 0.
	DefaultCards int

	// MaxCards caps the requested card count.
	MaxCards int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		DefaultCards: 15,
		MaxCards:     50,
		MaxTokens:    8192,
		Temperature:  0.7,
	}
}

// Generator turns a topic into a validated deck via the LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// deckOutput is the raw LLM response before validation.
type deckOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cards       []struct {
		Front        string   `json:"front"`
		Back         string   `json:"back"`
		Alternatives []string `json:"alternatives"`
		Hint         string   `json:"hint"`
		Explanation  string   `json:"explanation"`
	} `json:"cards"`
}

// Generate produces a deck for topic with count cards. Count 0 uses the
// configured default. Notes is free-form extra guidance, may be empty.
func (g *Generator) Generate(ctx context.Context, topic string, count int, notes string) (*deck.Deck, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if count <= 0 {
		count = g.config.DefaultCards
	}
	if count > g.config.MaxCards {
		count = g.config.MaxCards
	}

	ctx = llm.WithPurpose(ctx, "deck-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, count, notes)},
		},
		Schema:      DeckSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw deckOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w", err)
	}

	return buildDeck(raw)
}

// buildDeck converts validated LLM output into a deck, dropping cards the
// model duplicated and assigning stable IDs.
func buildDeck(raw deckOutput) (*deck.Deck, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return nil, fmt.Errorf("generated deck has no title")
	}

	seenBacks := make(map[string]bool)
	seenFronts := make(map[string]bool)

	var cards []deck.Card
	for _, c := range raw.Cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}

		// Duplicate backs would collide as distractors; duplicate
		// fronts are the same fact twice.
		backKey := strings.ToLower(back)
		frontKey := strings.ToLower(front)
		if seenBacks[backKey] || seenFronts[frontKey] {
			continue
		}
		seenBacks[backKey] = true
		seenFronts[frontKey] = true

		card := deck.Card{
			ID:    uuid.NewString(),
			Front: deck.Front{Text: front, Hint: strings.TrimSpace(c.Hint)},
			Back: deck.Back{
				Text:        back,
				Explanation: strings.TrimSpace(c.Explanation),
			},
		}
		for _, alt := range c.Alternatives {
			if alt = strings.TrimSpace(alt); alt != "" {
				card.Back.Alternatives = append(card.Back.Alternatives, alt)
			}
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("generated deck has no usable cards")
	}

	return &deck.Deck{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Cards:       cards,
	}, nil
}
