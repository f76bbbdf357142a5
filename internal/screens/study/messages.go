package study

import (
	"github.com/abhisek/flashiz/internal/quizgen"
	sess "github.com/abhisek/flashiz/internal/session"
)

// questionsReadyMsg is sent when the question list has been generated.
type questionsReadyMsg struct {
	Questions []quizgen.Question
}

// sessionSavedMsg is sent after the finished session was written to history.
type sessionSavedMsg struct {
	Summary sess.Summary
	Err     error
}
