// Package storage provides persistence for PantryKit.
package storage

import (
	"time"

	"github.com/pantrykit/pantrykit/internal/core"
)

// UsageStore handles the append-only consumption log
type UsageStore struct {
	db *DB
}

// NewUsageStore creates a new usage store
func NewUsageStore(db *DB) *UsageStore {
	return &UsageStore{db: db}
}

// Append records a consumption event
func (s *UsageStore) Append(e *core.UsageEntry) error {
	e.CreatedAt = time.Now().UTC()

	_, err := s.db.conn.Exec(`
		INSERT INTO usage_entries (id, item_name, qty, unit, usage_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.ItemName, e.Qty, e.Unit, string(e.UsageType), e.CreatedAt)

	return err
}

// GetRecent returns the latest usage entries, newest first
func (s *UsageStore) GetRecent(limit int) ([]core.UsageEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, item_name, qty, unit, usage_type, created_at
		FROM usage_entries
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.UsageEntry
	for rows.Next() {
		var e core.UsageEntry
		if err := rows.Scan(&e.ID, &e.ItemName, &e.Qty, &e.Unit, &e.UsageType, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns total logged events
func (s *UsageStore) Count() (int, error) {
	var count int
	err := s.db.conn.QueryRow("SELECT COUNT(*) FROM usage_entries").Scan(&count)
	return count, err
}
