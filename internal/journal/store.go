package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcomes recorded for an operation.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Entry is one submitted operation.
type Entry struct {
	ID        string
	Kind      string
	From      string
	To        string
	Amount    string
	Outcome   string
	Message   string
	RequestID string
	CreatedAt time.Time
}

// Store reads and writes journal entries.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store { return &Store{db: db, now: Now} }

// Record inserts e, filling ID and CreatedAt when empty.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.Amount == "" {
		e.Amount = "0"
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO operations(id, kind, from_acct, to_acct, amount, outcome, message, request_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Kind, e.From, e.To, e.Amount, e.Outcome, e.Message, e.RequestID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Kind, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, kind, from_acct, to_acct, amount, outcome, message, request_id, created_at
	FROM operations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.From, &e.To, &e.Amount, &e.Outcome, &e.Message, &e.RequestID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear wipes all entries, keeping the schema.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM operations"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear operations: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	_, _ = s.db.ExecContext(ctx, "VACUUM")
	return nil
}
