package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sessionRepo implements SessionRepo over raw SQL.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) AppendSession(ctx context.Context, rec SessionRecord, answers []AnswerRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions
			(id, deck_title, deck_path, mode, total, correct, incorrect, percentage, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DeckTitle, rec.DeckPath, rec.Mode,
		rec.Total, rec.Correct, rec.Incorrect, rec.Percentage,
		rec.DurationMs, rec.StartedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for _, a := range answers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO answers
				(session_id, card_id, mode, direction, prompt, given, answer, correct, distance, time_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, a.CardID, a.Mode, a.Direction, a.Prompt,
			a.Given, a.Answer, a.Correct, a.Distance, a.TimeMs)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *sessionRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, deck_title, deck_path, mode, total, correct, incorrect, percentage, duration_ms, started_at
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var recs []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		err := rows.Scan(&rec.ID, &rec.DeckTitle, &rec.DeckPath, &rec.Mode,
			&rec.Total, &rec.Correct, &rec.Incorrect, &rec.Percentage,
			&rec.DurationMs, &rec.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *sessionRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(correct), 0) FROM sessions`,
	).Scan(&t.Sessions, &t.Questions, &t.Correct)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *sessionRepo) HardestCards(ctx context.Context, minAttempts, limit int) ([]CardStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT card_id, MAX(prompt), COUNT(*), SUM(correct)
		 FROM answers
		 GROUP BY card_id
		 HAVING COUNT(*) >= ?
		 ORDER BY CAST(SUM(correct) AS REAL) / COUNT(*) ASC
		 LIMIT ?`, minAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("query hardest cards: %w", err)
	}
	defer rows.Close()

	var stats []CardStat
	for rows.Next() {
		var cs CardStat
		if err := rows.Scan(&cs.CardID, &cs.Prompt, &cs.Attempts, &cs.Correct); err != nil {
			return nil, fmt.Errorf("scan card stat: %w", err)
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

func (r *sessionRepo) Reset(ctx context.Context) error {
	// answers cascade from sessions.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM llm_events`); err != nil {
		return fmt.Errorf("delete llm events: %w", err)
	}
	return nil
}
