package deck

import "github.com/abhisek/flashiz/internal/match"

// Front is the prompt side of a card.
type Front struct {
	// Text is the primary prompt text.
	Text string `json:"text"`

	// Hint is an optional nudge shown on request.
	Hint string `json:"hint,omitempty"`
}

// Back is the answer side of a card.
type Back struct {
	// Text is the primary answer text.
	Text string `json:"text"`

	// Alternatives are additional accepted answer spellings. They belong
	// to the back content: they only apply when the back is the answer
	// side of a question.
	Alternatives []string `json:"alternatives,omitempty"`

	// Explanation is optional context shown after answering.
	Explanation string `json:"explanation,omitempty"`
}

// Card is an immutable front/back knowledge unit. Cards are owned by the
// loaded deck and never mutated after load.
type Card struct {
	ID    string   `json:"id"`
	Front Front    `json:"front"`
	Back  Back     `json:"back"`
	Tags  []string `json:"tags,omitempty"`

	// Match overrides the session's grading tolerance for this card.
	// Nil means use the session default.
	Match *match.Config `json:"match,omitempty"`
}

// Deck is a validated, in-memory card set.
type Deck struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Cards       []Card `json:"cards"`

	// Path is the file the deck was loaded from. Empty for generated
	// decks not yet saved.
	Path string `json:"-"`
}
