package store

import (
	"context"
	"time"
)

// SessionRecord is one finished study session as persisted to history.
type SessionRecord struct {
	ID         string
	DeckTitle  string
	DeckPath   string
	Mode       string
	Total      int
	Correct    int
	Incorrect  int
	Percentage int
	DurationMs int64
	StartedAt  time.Time
}

// AnswerRecord is one graded answer within a session.
type AnswerRecord struct {
	SessionID string
	CardID    string
	Mode      string
	Direction string
	Prompt    string
	Given     string
	Answer    string
	Correct   bool

	// Distance is the edit distance for typed answers, 0 for multiple
	// choice.
	Distance int
	TimeMs   int
}

// Totals aggregates lifetime study activity for the stats screen.
type Totals struct {
	Sessions  int
	Questions int
	Correct   int
}

// CardStat aggregates per-card accuracy, used to surface the cards a
// learner misses most.
type CardStat struct {
	CardID   string
	Prompt   string
	Attempts int
	Correct  int
}

// SessionRepo persists finished sessions and their answers.
type SessionRepo interface {
	// AppendSession writes one session row with all its answers.
	AppendSession(ctx context.Context, rec SessionRecord, answers []AnswerRecord) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// Totals returns lifetime aggregates across all sessions.
	Totals(ctx context.Context) (Totals, error)

	// HardestCards returns up to limit cards with at least minAttempts
	// answers, ordered by ascending accuracy.
	HardestCards(ctx context.Context, minAttempts, limit int) ([]CardStat, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is one persisted LLM request event.
type LLMRequestRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates request counts and token totals per purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides access to telemetry events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
