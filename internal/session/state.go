package session

import (
	"time"

	"github.com/abhisek/flashiz/internal/match"
	"github.com/abhisek/flashiz/internal/quizgen"
)

// Status is the phase of the session state machine.
type Status int

const (
	// StatusAwaitingAnswer means the current question is active and the
	// engine is collecting input for it.
	StatusAwaitingAnswer Status = iota

	// StatusShowingResult means the current question was just graded and
	// the engine waits for an acknowledgement before moving on.
	StatusShowingResult

	// StatusComplete is terminal: every question has been answered and
	// acknowledged. No action changes the state after this.
	StatusComplete
)

// String returns the status name for logging and errors.
func (s Status) String() string {
	switch s {
	case StatusAwaitingAnswer:
		return "awaiting_answer"
	case StatusShowingResult:
		return "showing_result"
	case StatusComplete:
		return "complete"
	}
	return "unknown"
}

// noSelection marks the multiple-choice scratch state before any option has
// been highlighted.
const noSelection = -1

// Outcome records the terminal result of one question.
type Outcome struct {
	CardID    string
	Mode      quizgen.Mode
	Direction quizgen.Direction
	Prompt    string

	// Given is the learner's answer: the chosen option text for multiple
	// choice, the submitted string for typed answers.
	Given string

	// Answer is the primary correct answer text.
	Answer    string
	IsCorrect bool

	// Match carries the grading detail for typed answers, nil for
	// multiple choice.
	Match *match.Result

	// TimeMs is how long the question was active before it was answered.
	TimeMs int
}

// Engine owns the question queue, cursor, per-question scratch state and
// rolling counters for one study session. All mutation flows through the
// action methods; the engine has no internal concurrency and every call
// returns immediately.
type Engine struct {
	questions []quizgen.Question
	cursor    int
	status    Status

	// Per-question scratch, cleared on Acknowledge.
	selected int
	typed    []rune

	correct   int
	incorrect int
	outcomes  []Outcome

	defaults match.Config

	startedAt       time.Time
	questionStarted time.Time
	now             func() time.Time
}

// New creates an engine over a generated question list. Grading uses each
// question's own match override when present, defaults otherwise. A
// zero-question session starts complete.
func New(questions []quizgen.Question, defaults match.Config) *Engine {
	e := &Engine{
		questions: questions,
		selected:  noSelection,
		defaults:  defaults,
		now:       time.Now,
	}
	e.startedAt = e.now()
	e.questionStarted = e.startedAt
	if len(questions) == 0 {
		e.status = StatusComplete
	}
	return e
}

// NumQuestions returns the total question count.
func (e *Engine) NumQuestions() int {
	return len(e.questions)
}

// Status returns the current phase.
func (e *Engine) Status() Status {
	return e.status
}

// current returns the active question, or nil when complete.
func (e *Engine) current() *quizgen.Question {
	if e.cursor >= len(e.questions) {
		return nil
	}
	return &e.questions[e.cursor]
}

// matchConfig returns the grading tolerance for a question: its per-card
// override when present, the session default otherwise.
func (e *Engine) matchConfig(q *quizgen.Question) match.Config {
	if q.Match != nil {
		return *q.Match
	}
	return e.defaults
}

// Snapshot is a read-only view of engine state, sufficient to render one
// frame without reaching into the engine.
type Snapshot struct {
	Status Status

	// Index is the cursor position, 0..Total. Index == Total only when
	// complete.
	Index int
	Total int

	// Question is the current question, nil when complete.
	Question *quizgen.Question

	// SelectedOption is the highlighted multiple-choice index, or -1 when
	// nothing is highlighted.
	SelectedOption int

	// TypedAnswer is the in-progress typed buffer.
	TypedAnswer string

	Correct   int
	Incorrect int

	// LastOutcome is the graded result on display, set only in
	// StatusShowingResult.
	LastOutcome *Outcome
}

// Snapshot captures the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Status:         e.status,
		Index:          e.cursor,
		Total:          len(e.questions),
		Question:       e.current(),
		SelectedOption: e.selected,
		TypedAnswer:    string(e.typed),
		Correct:        e.correct,
		Incorrect:      e.incorrect,
	}
	if n := len(e.outcomes); n > 0 && e.status == StatusShowingResult {
		s.LastOutcome = &e.outcomes[n-1]
	}
	return s
}

// Outcomes returns the recorded per-question results in answer order. The
// slice is owned by the engine; callers must not mutate it.
func (e *Engine) Outcomes() []Outcome {
	return e.outcomes
}
