package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rnlabs/finbot/internal/domain"
)

// AnswerStore records scored interview answers. The answers table is
// append-only; nothing in the core ever mutates or deletes a row.
type AnswerStore struct {
	db *DB
}

// NewAnswerStore creates an answer store using the given database.
func NewAnswerStore(db *DB) *AnswerStore {
	return &AnswerStore{db: db}
}

// InsertAnswer writes one answer record. Failures are returned to the
// caller; the orchestrator decides whether they block step advancement.
func (a *AnswerStore) InsertAnswer(ctx context.Context, ans domain.Answer) error {
	if ans.ID == "" {
		ans.ID = uuid.New().String()
	}
	if ans.RecordedAt.IsZero() {
		ans.RecordedAt = time.Now()
	}

	_, err := a.db.sql.ExecContext(ctx,
		`INSERT INTO answers (id, user_id, step_label, raw_text, evaluation, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ans.ID, ans.UserID, ans.StepLabel, ans.RawText, ans.Evaluation,
		ans.RecordedAt.Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("inserting answer %s/%s: %w", ans.UserID, ans.StepLabel, err)
	}
	return nil
}

// ListByUser returns all answers recorded for a participant, oldest first.
func (a *AnswerStore) ListByUser(ctx context.Context, userID string) ([]domain.Answer, error) {
	rows, err := a.db.sql.QueryContext(ctx,
		`SELECT id, user_id, step_label, raw_text, evaluation, recorded_at
		 FROM answers WHERE user_id = ? ORDER BY recorded_at, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing answers for %s: %w", userID, err)
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var ans domain.Answer
		var recordedAt string
		if err := rows.Scan(&ans.ID, &ans.UserID, &ans.StepLabel, &ans.RawText, &ans.Evaluation, &recordedAt); err != nil {
			return nil, err
		}
		ans.RecordedAt, _ = time.Parse(time.DateTime, recordedAt)
		answers = append(answers, ans)
	}
	return answers, rows.Err()
}
