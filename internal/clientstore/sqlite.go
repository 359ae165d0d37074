package clientstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/termfolio/internal/db"
)

const queryTimeout = 5 * time.Second

// Visitor stores values for one web visitor in the client_storage table.
type Visitor struct {
	db *db.DB
	id string
}

// ForVisitor returns the storage scoped to a visitor id.
func ForVisitor(database *db.DB, visitorID string) *Visitor {
	return &Visitor{db: database, id: visitorID}
}

func (v *Visitor) Load(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var value []byte
	err := v.db.QueryRowContext(ctx,
		`SELECT value FROM client_storage WHERE visitor_id = ? AND key = ?`,
		v.id, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	return value, nil
}

func (v *Visitor) Save(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := v.db.ExecContext(ctx, `
		INSERT INTO client_storage (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(visitor_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		v.id, key, value,
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (v *Visitor) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := v.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE visitor_id = ? AND key = ?`, v.id, key,
	); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}
