package outreach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one journaled delivery outcome.
type Record struct {
	ID        string
	RunID     string
	Contact   string
	Platform  string
	Status    string
	Reason    string
	Model     string
	Subject   string
	CreatedAt time.Time
}

// SQLStore journals per-contact outcomes so past outreach is auditable across runs.
type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Record(ctx context.Context, rec Record) (Record, error) {
	if s == nil || s.db == nil {
		return Record{}, errors.New("outreach store unavailable")
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO courtesy_outcomes (
			id,
			run_id,
			contact_name,
			platform,
			status,
			reason,
			model,
			subject,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`,
		rec.ID,
		rec.RunID,
		rec.Contact,
		rec.Platform,
		rec.Status,
		rec.Reason,
		rec.Model,
		rec.Subject,
	).Scan(&createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("insert outcome: %w", err)
	}

	rec.CreatedAt = createdAt
	return rec, nil
}

// CountForRun reports how many outcomes were journaled for a run, so the
// summary can confirm the journal kept up with the dispatch loop.
func (s *SQLStore) CountForRun(ctx context.Context, runID string) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("outreach store unavailable")
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM courtesy_outcomes WHERE run_id = $1`,
		runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count run outcomes: %w", err)
	}
	return count, nil
}
