package session

import (
	"math"
	"time"
)

// Summary holds the figures shown on the end-of-session screen and written
// to the history store.
type Summary struct {
	// Total counts answered questions, so mid-session it is the progress
	// so far and equals the question count once the engine completes.
	Total     int
	Correct   int
	Incorrect int

	// Percentage is Correct/Total rounded to the nearest whole percent,
	// 0 for an empty session.
	Percentage int

	Duration time.Duration
}

// Summary builds the final tally. It is meaningful at any point, but the
// app calls it once the engine reports StatusComplete.
func (e *Engine) Summary() Summary {
	s := Summary{
		Total:     e.correct + e.incorrect,
		Correct:   e.correct,
		Incorrect: e.incorrect,
		Duration:  e.now().Sub(e.startedAt),
	}
	if s.Total > 0 {
		s.Percentage = int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
	}
	return s
}
