package quizgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/abhisek/flashiz/internal/deck"
)

// maxDistractors caps how many wrong options a multiple-choice question
// carries alongside the correct one.
const maxDistractors = 3

// Generator turns a card set into a shuffled question sequence. The random
// source is injectable so tests can reproduce orderings.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded from crypto-quality entropy, falling back
// to the clock if the system source is unavailable.
func New() *Generator {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return NewSeeded(time.Now().UnixNano())
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewSeeded creates a Generator with a fixed seed for reproducible output.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces the question list for one session.
//
// Each card yields a front-to-back question, plus a back-to-front question
// when bidirectional. ModeMixed flips a fair coin per question. An empty
// card list yields an empty question list; callers treat that as nothing
// to study.
func (g *Generator) Generate(cards []deck.Card, mode Mode, bidirectional bool) []Question {
	if len(cards) == 0 {
		return nil
	}

	// One shuffle per call: presentation order and the distractor pool
	// base share it.
	shuffled := make([]deck.Card, len(cards))
	copy(shuffled, cards)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	directions := []Direction{FrontToBack}
	if bidirectional {
		directions = append(directions, BackToFront)
	}

	questions := make([]Question, 0, len(shuffled)*len(directions))
	for i, c := range shuffled {
		for _, dir := range directions {
			qMode := mode
			if mode == ModeMixed {
				if g.rng.Intn(2) == 0 {
					qMode = ModeMultipleChoice
				} else {
					qMode = ModeTypeAnswer
				}
			}
			// A choice question needs at least one distractor; with no
			// other cards to draw from, ask for a typed answer instead.
			if qMode == ModeMultipleChoice && len(shuffled) < 2 {
				qMode = ModeTypeAnswer
			}

			q := Question{
				CardID:      c.ID,
				Prompt:      promptSide(c, dir),
				Direction:   dir,
				Mode:        qMode,
				Accepted:    acceptedAnswers(c, dir),
				Hint:        c.Front.Hint,
				Explanation: c.Back.Explanation,
				Match:       c.Match,
			}

			if qMode == ModeMultipleChoice {
				q.Options = g.buildOptions(shuffled, i, dir)
			}

			questions = append(questions, q)
		}
	}

	// Question order is independent of per-card generation order.
	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions
}

// buildOptions assembles the shuffled option list for the card at index
// self: its answer-side text plus up to maxDistractors other cards' texts
// for the same direction, with the correct position uniformly random.
func (g *Generator) buildOptions(cards []deck.Card, self int, dir Direction) []Option {
	correct := cards[self]

	others := make([]deck.Card, 0, len(cards)-1)
	for i, c := range cards {
		if i != self {
			others = append(others, c)
		}
	}
	// Fresh shuffle of the pool so each question draws its own distractors.
	g.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	n := maxDistractors
	if len(others) < n {
		n = len(others)
	}

	options := make([]Option, 0, n+1)
	options = append(options, Option{
		CardID:    correct.ID,
		Text:      answerSide(correct, dir),
		IsCorrect: true,
	})
	for _, c := range others[:n] {
		options = append(options, Option{
			CardID: c.ID,
			Text:   answerSide(c, dir),
		})
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
