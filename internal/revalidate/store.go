package revalidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/termfolio/internal/db"
)

// Status of one revalidation attempt.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Record is one logged revalidation.
type Record struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store keeps the revalidation history.
type Store struct {
	db *db.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts rec. If rec.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO revalidations (id, path, status, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Path, string(rec.Status), rec.Error, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting revalidation: %w", err)
	}
	return nil
}

// Recent returns the newest records first. limit <= 0 means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, status, error, created_at FROM revalidations
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying revalidations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			status  string
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.Path, &status, &rec.Error, &created); err != nil {
			return nil, fmt.Errorf("scanning revalidation: %w", err)
		}
		rec.Status = Status(status)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LastSuccess returns when path was last regenerated successfully, or the
// zero time.
func (s *Store) LastSuccess(ctx context.Context, path string) (time.Time, error) {
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM revalidations WHERE path = ? AND status = 'ok'
		 ORDER BY created_at DESC LIMIT 1`, path).Scan(&created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("querying last revalidation: %w", err)
	}
	t, _ := time.Parse(time.RFC3339Nano, created)
	return t, nil
}
