package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rnlabs/finbot/internal/domain"
)

// SQLiteSessionStore implements dialog.SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db *DB
}

// NewSQLiteSessionStore creates a session store using the given database.
func NewSQLiteSessionStore(db *DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// GetOrCreate finds an existing session by conversation ID or creates a
// fresh one at the start of the script.
func (s *SQLiteSessionStore) GetOrCreate(ctx context.Context, conversationID string) (*domain.Session, error) {
	var sess domain.Session
	var createdAt, updatedAt string

	err := s.db.sql.QueryRowContext(ctx,
		`SELECT conversation_id, step, user_id, token, category, created_at, updated_at
		 FROM sessions WHERE conversation_id = ?`, conversationID,
	).Scan(
		&sess.ConversationID, &sess.Step, &sess.UserID, &sess.Token,
		&sess.Category, &createdAt, &updatedAt,
	)

	if err == nil {
		sess.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		sess.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		return &sess, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loading session %s: %w", conversationID, err)
	}

	fresh := domain.NewSession(conversationID)
	_, err = s.db.sql.ExecContext(ctx,
		`INSERT INTO sessions (conversation_id, step, user_id, token, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fresh.ConversationID, fresh.Step, fresh.UserID, fresh.Token, fresh.Category,
		fresh.CreatedAt.Format(time.DateTime), fresh.UpdatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session %s: %w", conversationID, err)
	}
	return fresh, nil
}

// Save durably stores the session, overwriting the prior value for its
// conversation (last-write-wins per conversation).
func (s *SQLiteSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = time.Now()

	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO sessions (conversation_id, step, user_id, token, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(conversation_id) DO UPDATE SET
		   step = excluded.step,
		   user_id = excluded.user_id,
		   token = excluded.token,
		   category = excluded.category,
		   updated_at = excluded.updated_at`,
		sess.ConversationID, sess.Step, sess.UserID, sess.Token, sess.Category,
		sess.CreatedAt.Format(time.DateTime), sess.UpdatedAt.Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ConversationID, err)
	}
	return nil
}

// List returns all conversation IDs, most recently updated first.
func (s *SQLiteSessionStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT conversation_id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
