package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rnlabs/finbot/internal/domain"
)

// Participant is one registered interview candidate.
type Participant struct {
	Identifier string          `json:"identifier"`
	Token      string          `json:"token"`
	Category   domain.Category `json:"category"`
	Attended   bool            `json:"attended"`
}

// ParticipantDirectory is the lookup collaborator behind the identity
// resolver. It implements identity.Directory and identity.Attendance.
type ParticipantDirectory struct {
	db *DB
}

// NewParticipantDirectory creates a directory using the given database.
func NewParticipantDirectory(db *DB) *ParticipantDirectory {
	return &ParticipantDirectory{db: db}
}

// FetchCategory maps (identifier, token) to the participant's category.
// An unknown pair surfaces as an error, not an empty category.
func (d *ParticipantDirectory) FetchCategory(ctx context.Context, identifier, token string) (domain.Category, error) {
	var category domain.Category
	err := d.db.sql.QueryRowContext(ctx,
		`SELECT category FROM participants WHERE identifier = ? AND token = ?`,
		identifier, token,
	).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CategoryUnresolved, fmt.Errorf("participant %s: %w", identifier, err)
	}
	if err != nil {
		return domain.CategoryUnresolved, fmt.Errorf("fetching category for %s: %w", identifier, err)
	}
	return category, nil
}

// MarkAttended flags a participant as having attended. Idempotent: the
// first call sets the timestamp, repeats change nothing.
func (d *ParticipantDirectory) MarkAttended(ctx context.Context, identifier string) error {
	_, err := d.db.sql.ExecContext(ctx,
		`UPDATE participants
		 SET attended = 1,
		     attended_at = COALESCE(attended_at, ?)
		 WHERE identifier = ?`,
		time.Now().Format(time.DateTime), identifier,
	)
	if err != nil {
		return fmt.Errorf("marking %s attended: %w", identifier, err)
	}
	return nil
}

// Add registers a participant, overwriting token and category for an
// existing identifier.
func (d *ParticipantDirectory) Add(ctx context.Context, p Participant) error {
	_, err := d.db.sql.ExecContext(ctx,
		`INSERT INTO participants (identifier, token, category)
		 VALUES (?, ?, ?)
		 ON CONFLICT(identifier) DO UPDATE SET
		   token = excluded.token,
		   category = excluded.category`,
		p.Identifier, p.Token, p.Category,
	)
	if err != nil {
		return fmt.Errorf("adding participant %s: %w", p.Identifier, err)
	}
	return nil
}

// List returns all registered participants.
func (d *ParticipantDirectory) List(ctx context.Context) ([]Participant, error) {
	rows, err := d.db.sql.QueryContext(ctx,
		`SELECT identifier, token, category, attended FROM participants ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		var attended int
		if err := rows.Scan(&p.Identifier, &p.Token, &p.Category, &attended); err != nil {
			return nil, err
		}
		p.Attended = attended != 0
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
