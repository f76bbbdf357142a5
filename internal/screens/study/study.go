package study

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/match"
	"github.com/abhisek/flashiz/internal/quizgen"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/summary"
	sess "github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

// Options carries the study settings and dependencies a session needs.
type Options struct {
	// Sessions persists finished sessions. Nil disables history; the
	// session still runs.
	Sessions store.SessionRepo

	Mode          quizgen.Mode
	Bidirectional bool
	Match         match.Config
}

// StudyScreen drives one flashcard session over a deck.
type StudyScreen struct {
	deck   *deck.Deck
	opts   Options
	engine *sess.Engine

	quitConfirm bool
	saving      bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a study screen for the given deck.
func New(d *deck.Deck, opts Options) *StudyScreen {
	return &StudyScreen{deck: d, opts: opts}
}

func (s *StudyScreen) Init() tea.Cmd {
	d := s.deck
	opts := s.opts
	return func() tea.Msg {
		questions := quizgen.New().Generate(d.Cards, opts.Mode, opts.Bidirectional)
		return questionsReadyMsg{Questions: questions}
	}
}

func (s *StudyScreen) Title() string {
	return s.deck.Title
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.engine == nil {
		return nil
	}

	switch s.engine.Status() {
	case sess.StatusShowingResult:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case sess.StatusAwaitingAnswer:
		snap := s.engine.Snapshot()
		if snap.Question != nil && snap.Question.Mode == quizgen.ModeMultipleChoice {
			return []layout.KeyHint{
				{Key: "1-4 / a-d", Description: "Answer"},
				{Key: "↑↓", Description: "Highlight"},
				{Key: "Enter", Description: "Confirm"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *StudyScreen) View(width, height int) string {
	if s.engine == nil {
		return renderLoading(width)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.saving {
		return renderSaving(width)
	}

	snap := s.engine.Snapshot()
	switch snap.Status {
	case sess.StatusShowingResult:
		return renderResult(snap, width)
	default:
		return renderQuestion(snap, width)
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		s.engine = sess.New(msg.Questions, s.opts.Match)
		if s.engine.Status() == sess.StatusComplete {
			// Empty deck edge: nothing to study, nothing to save.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case sessionSavedMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(msg.Summary, s.deck.Title, s.engine.Outcomes(), msg.Err),
			}
		}

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.engine == nil || s.saving {
		return s, nil
	}

	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.engine.Status() {
	case sess.StatusShowingResult:
		s.engine.Acknowledge()
		if s.engine.Status() == sess.StatusComplete {
			return s.finishSession()
		}
		return s, nil

	case sess.StatusAwaitingAnswer:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		snap := s.engine.Snapshot()
		if snap.Question == nil {
			return s, nil
		}
		if snap.Question.Mode == quizgen.ModeMultipleChoice {
			s.handleChoiceKey(key, snap)
		} else {
			s.handleTypedKey(msg)
		}
		if s.engine.Status() == sess.StatusComplete {
			return s.finishSession()
		}
	}
	return s, nil
}

// handleChoiceKey maps keys onto multiple-choice engine actions. Digits and
// letters answer directly, arrows move the highlight.
func (s *StudyScreen) handleChoiceKey(key string, snap sess.Snapshot) {
	switch key {
	case "1", "2", "3", "4":
		s.engine.ChooseOption(int(key[0] - '1'))
	case "a", "b", "c", "d":
		s.engine.ChooseOption(int(key[0] - 'a'))
	case "up", "k":
		if snap.SelectedOption > 0 {
			s.engine.SelectOption(snap.SelectedOption - 1)
		} else if snap.SelectedOption < 0 {
			s.engine.SelectOption(0)
		}
	case "down", "j":
		s.engine.SelectOption(snap.SelectedOption + 1)
	case "enter":
		s.engine.ConfirmOption()
	}
}

// handleTypedKey maps keys onto typed-answer engine actions. The engine owns
// the answer buffer, so this only translates key events.
func (s *StudyScreen) handleTypedKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "enter":
		s.engine.SubmitTyped()
		return
	case "backspace":
		s.engine.Backspace()
		return
	case "space":
		s.engine.TypeRune(' ')
		return
	}
	for _, r := range msg.Text {
		s.engine.TypeRune(r)
	}
}

// finishSession persists the finished session and hands off to the summary.
func (s *StudyScreen) finishSession() (screen.Screen, tea.Cmd) {
	s.saving = true

	engine := s.engine
	d := s.deck
	opts := s.opts

	return s, func() tea.Msg {
		sum := engine.Summary()
		if opts.Sessions == nil {
			return sessionSavedMsg{Summary: sum}
		}

		now := time.Now()
		rec := store.SessionRecord{
			ID:         uuid.NewString(),
			DeckTitle:  d.Title,
			DeckPath:   d.Path,
			Mode:       string(opts.Mode),
			Total:      sum.Total,
			Correct:    sum.Correct,
			Incorrect:  sum.Incorrect,
			Percentage: sum.Percentage,
			DurationMs: sum.Duration.Milliseconds(),
			StartedAt:  now.Add(-sum.Duration),
		}

		outcomes := engine.Outcomes()
		answers := make([]store.AnswerRecord, 0, len(outcomes))
		for _, o := range outcomes {
			a := store.AnswerRecord{
				SessionID: rec.ID,
				CardID:    o.CardID,
				Mode:      string(o.Mode),
				Direction: string(o.Direction),
				Prompt:    o.Prompt,
				Given:     o.Given,
				Answer:    o.Answer,
				Correct:   o.IsCorrect,
				TimeMs:    o.TimeMs,
			}
			if o.Match != nil {
				a.Distance = o.Match.Distance
			}
			answers = append(answers, a)
		}

		err := opts.Sessions.AppendSession(context.Background(), rec, answers)
		return sessionSavedMsg{Summary: sum, Err: err}
	}
}
