package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sessionFixture(id string, startedAt time.Time) SessionRecord {
	return SessionRecord{
		ID:         id,
		DeckTitle:  "Capitals",
		DeckPath:   "/decks/capitals.json",
		Mode:       "mixed",
		Total:      10,
		Correct:    7,
		Incorrect:  3,
		Percentage: 70,
		DurationMs: 90_000,
		StartedAt:  startedAt,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"sessions", "answers", "llm_events"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestAppendAndRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"s1", "s2", "s3"} {
		rec := sessionFixture(id, base.Add(time.Duration(i)*time.Minute))
		answers := []AnswerRecord{
			{CardID: "fr", Mode: "type_answer", Direction: "front_to_back",
				Prompt: "France", Given: "Paris", Answer: "Paris", Correct: true, TimeMs: 1200},
			{CardID: "de", Mode: "multiple_choice", Direction: "front_to_back",
				Prompt: "Germany", Given: "Bonn", Answer: "Berlin", Correct: false, TimeMs: 800},
		}
		if err := repo.AppendSession(ctx, rec, answers); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	recs, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	// Newest first.
	if recs[0].ID != "s3" || recs[1].ID != "s2" {
		t.Errorf("order = %s, %s, want s3, s2", recs[0].ID, recs[1].ID)
	}
	if recs[0].Percentage != 70 || recs[0].DeckTitle != "Capitals" {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	got, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if got != (Totals{}) {
		t.Errorf("empty totals = %+v, want zeroes", got)
	}

	now := time.Now().UTC()
	if err := repo.AppendSession(ctx, sessionFixture("s1", now), nil); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSession(ctx, sessionFixture("s2", now.Add(time.Minute)), nil); err != nil {
		t.Fatal(err)
	}

	got, err = repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := Totals{Sessions: 2, Questions: 20, Correct: 14}
	if got != want {
		t.Errorf("totals = %+v, want %+v", got, want)
	}
}

func TestHardestCards(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	answers := []AnswerRecord{
		{CardID: "easy", Prompt: "Easy", Correct: true},
		{CardID: "easy", Prompt: "Easy", Correct: true},
		{CardID: "hard", Prompt: "Hard", Correct: false},
		{CardID: "hard", Prompt: "Hard", Correct: true},
		{CardID: "rare", Prompt: "Rare", Correct: false},
	}
	if err := repo.AppendSession(ctx, sessionFixture("s1", time.Now().UTC()), answers); err != nil {
		t.Fatal(err)
	}

	stats, err := repo.HardestCards(ctx, 2, 10)
	if err != nil {
		t.Fatalf("hardest: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2 (rare has too few attempts)", len(stats))
	}
	if stats[0].CardID != "hard" {
		t.Errorf("stats[0] = %+v, want card hard first", stats[0])
	}
	if stats[0].Attempts != 2 || stats[0].Correct != 1 {
		t.Errorf("hard stat = %+v, want 2 attempts, 1 correct", stats[0])
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	answers := []AnswerRecord{{CardID: "fr", Prompt: "France", Correct: true}}
	if err := repo.AppendSession(ctx, sessionFixture("s1", time.Now().UTC()), answers); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "deckgen", Success: true,
	}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for _, table := range []string{"sessions", "answers", "llm_events"} {
		var count int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s has %d rows after reset, want 0", table, count)
		}
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "deck_generation",
		InputTokens:  1200,
		OutputTokens: 900,
		LatencyMs:    2300,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var provider string
	var success bool
	err = s.DB().QueryRow("SELECT provider, success FROM llm_events").Scan(&provider, &success)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if provider != "anthropic" || !success {
		t.Errorf("row = %s/%v, want anthropic/true", provider, success)
	}
}

func TestRecentLLMRequests(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for i, purpose := range []string{"deck-gen", "deck-gen", "probe"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 50,
			LatencyMs:    800,
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.RecentLLMRequests(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Purpose != "probe" {
		t.Errorf("newest purpose = %q, want %q", records[0].Purpose, "probe")
	}
	if records[0].InputTokens != 300 {
		t.Errorf("newest input tokens = %d, want 300", records[0].InputTokens)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m", Purpose: "deck-gen", InputTokens: 100, OutputTokens: 40, LatencyMs: 1000, Success: true},
		{Provider: "anthropic", Model: "m", Purpose: "deck-gen", InputTokens: 300, OutputTokens: 60, LatencyMs: 3000, Success: true},
		{Provider: "anthropic", Model: "m", Purpose: "probe", InputTokens: 10, OutputTokens: 5, LatencyMs: 500, Success: false},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage groups = %d, want 2", len(usage))
	}

	// Ordered by purpose: deck-gen before probe.
	dg := usage[0]
	if dg.Purpose != "deck-gen" || dg.Calls != 2 || dg.InputTokens != 400 || dg.OutputTokens != 100 {
		t.Errorf("deck-gen usage = %+v, want 2 calls, 400 in, 100 out", dg)
	}
	if dg.AvgLatencyMs != 2000 {
		t.Errorf("deck-gen avg latency = %d, want 2000", dg.AvgLatencyMs)
	}
}
