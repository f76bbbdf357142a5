package session

import (
	"strings"

	"github.com/abhisek/flashiz/internal/match"
	"github.com/abhisek/flashiz/internal/quizgen"
)

// action identifies one learner input kind for guard lookup.
type action int

const (
	actSelectOption action = iota
	actConfirmOption
	actTypeRune
	actBackspace
	actSubmitTyped
	actAcknowledge
)

// guards enumerates the state/action pairs that do anything. Every pair
// absent from the table is a silent no-op, which makes stray or repeated
// key events (double Enter, typing during the result card) harmless by
// construction.
var guards = map[Status]map[action]bool{
	StatusAwaitingAnswer: {
		actSelectOption:  true,
		actConfirmOption: true,
		actTypeRune:      true,
		actBackspace:     true,
		actSubmitTyped:   true,
	},
	StatusShowingResult: {
		actAcknowledge: true,
	},
}

// allowed reports whether the action applies in the current state and, for
// answer input, whether it matches the current question's mode.
func (e *Engine) allowed(act action, mode quizgen.Mode) bool {
	if !guards[e.status][act] {
		return false
	}
	q := e.current()
	return q != nil && q.Mode == mode
}

// SelectOption highlights option k of the current multiple-choice question
// without committing it. Out-of-range indices are ignored.
func (e *Engine) SelectOption(k int) {
	if !e.allowed(actSelectOption, quizgen.ModeMultipleChoice) {
		return
	}
	if k < 0 || k >= len(e.current().Options) {
		return
	}
	e.selected = k
}

// ConfirmOption commits the highlighted option as the answer. With no
// option highlighted it does nothing.
func (e *Engine) ConfirmOption() {
	if !e.allowed(actConfirmOption, quizgen.ModeMultipleChoice) {
		return
	}
	if e.selected == noSelection {
		return
	}
	q := e.current()
	opt := q.Options[e.selected]
	e.finalize(q, opt.Text, opt.IsCorrect, nil)
}

// ChooseOption selects and confirms option k in one step, for numeric
// shortcut keys. An out-of-range k leaves any existing highlight untouched.
func (e *Engine) ChooseOption(k int) {
	if !e.allowed(actSelectOption, quizgen.ModeMultipleChoice) {
		return
	}
	if k < 0 || k >= len(e.current().Options) {
		return
	}
	e.selected = k
	e.ConfirmOption()
}

// TypeRune appends a rune to the typed answer buffer. Control runes are
// ignored.
func (e *Engine) TypeRune(r rune) {
	if !e.allowed(actTypeRune, quizgen.ModeTypeAnswer) {
		return
	}
	if r < 0x20 || r == 0x7f {
		return
	}
	e.typed = append(e.typed, r)
}

// Backspace removes the last rune of the typed answer buffer. An empty
// buffer stays empty.
func (e *Engine) Backspace() {
	if !e.allowed(actBackspace, quizgen.ModeTypeAnswer) {
		return
	}
	if len(e.typed) > 0 {
		e.typed = e.typed[:len(e.typed)-1]
	}
}

// SubmitTyped grades the typed buffer against the accepted answers. A
// buffer that is empty after trimming is rejected without grading, so an
// accidental Enter never records a wrong answer.
func (e *Engine) SubmitTyped() {
	if !e.allowed(actSubmitTyped, quizgen.ModeTypeAnswer) {
		return
	}
	given := string(e.typed)
	if strings.TrimSpace(given) == "" {
		return
	}

	q := e.current()
	res := match.Match(given, q.Accepted, e.matchConfig(q))
	e.finalize(q, given, res.IsCorrect, &res)
}

// Acknowledge dismisses the result card and advances the cursor, completing
// the session after the last question.
func (e *Engine) Acknowledge() {
	if !guards[e.status][actAcknowledge] {
		return
	}

	e.cursor++
	e.selected = noSelection
	e.typed = nil

	if e.cursor >= len(e.questions) {
		e.status = StatusComplete
		return
	}
	e.status = StatusAwaitingAnswer
	e.questionStarted = e.now()
}

// finalize records the graded answer. Exactly one counter moves per
// question, so correct+incorrect always equals the number of questions
// answered so far.
func (e *Engine) finalize(q *quizgen.Question, given string, correct bool, mr *match.Result) {
	if correct {
		e.correct++
	} else {
		e.incorrect++
	}

	e.outcomes = append(e.outcomes, Outcome{
		CardID:    q.CardID,
		Mode:      q.Mode,
		Direction: q.Direction,
		Prompt:    q.Prompt,
		Given:     given,
		Answer:    q.Answer(),
		IsCorrect: correct,
		Match:     mr,
		TimeMs:    int(e.now().Sub(e.questionStarted).Milliseconds()),
	})
	e.status = StatusShowingResult
}
