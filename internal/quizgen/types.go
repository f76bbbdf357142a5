package quizgen

import (
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/match"
)

// Mode selects how a question is answered.
type Mode string

const (
	// ModeMultipleChoice presents 2-4 options, exactly one correct.
	ModeMultipleChoice Mode = "multiple_choice"

	// ModeTypeAnswer asks the learner to type the answer.
	ModeTypeAnswer Mode = "type_answer"

	// ModeMixed picks a mode per question at generation time. Generated
	// questions never carry this value themselves.
	ModeMixed Mode = "mixed"
)

// Direction is which side of the card is the prompt.
type Direction string

const (
	// FrontToBack prompts with the front, answers with the back.
	FrontToBack Direction = "front_to_back"

	// BackToFront prompts with the back, answers with the front.
	BackToFront Direction = "back_to_front"
)

// Option is a single multiple-choice option after shuffling.
type Option struct {
	// CardID identifies the card the option text came from.
	CardID string

	Text      string
	IsCorrect bool
}

// Question is a generated, single-use prompt derived from a card. It lives
// for one session and is discarded after.
type Question struct {
	// CardID references the source card.
	CardID string

	Prompt    string
	Direction Direction
	Mode      Mode

	// Accepted are the answer strings a typed response is graded
	// against: the primary answer first, then alternatives when the back
	// is the answer side. Never empty.
	Accepted []string

	// Options is populated only for ModeMultipleChoice: 2-4 entries,
	// exactly one with IsCorrect set.
	Options []Option

	// Hint and Explanation are carried from the source card for display.
	Hint        string
	Explanation string

	// Match overrides the session grading tolerance. Nil means default.
	Match *match.Config
}

// Answer returns the primary correct answer text.
func (q *Question) Answer() string {
	return q.Accepted[0]
}

// answerSide returns the answer text for a card in the given direction.
func answerSide(c deck.Card, dir Direction) string {
	if dir == BackToFront {
		return c.Front.Text
	}
	return c.Back.Text
}

// promptSide returns the prompt text for a card in the given direction.
func promptSide(c deck.Card, dir Direction) string {
	if dir == BackToFront {
		return c.Back.Text
	}
	return c.Front.Text
}

// acceptedAnswers builds the accepted answer list for a card and direction.
// Alternatives belong to the back content, so they apply only when the back
// is the answer side.
func acceptedAnswers(c deck.Card, dir Direction) []string {
	if dir == BackToFront {
		return []string{c.Front.Text}
	}
	accepted := make([]string, 0, 1+len(c.Back.Alternatives))
	accepted = append(accepted, c.Back.Text)
	accepted = append(accepted, c.Back.Alternatives...)
	return accepted
}
