// Package storage provides persistence for PantryKit.
package storage

import (
	"database/sql"
	"time"

	"github.com/pantrykit/pantrykit/internal/core"
)

// ShoppingStore handles shopping list persistence
type ShoppingStore struct {
	db *DB
}

// NewShoppingStore creates a new shopping store
func NewShoppingStore(db *DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

// Create adds an entry to the shopping list
func (s *ShoppingStore) Create(entry *core.ShoppingEntry) error {
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.conn.Exec(`
		INSERT INTO shopping_entries (id, name, qty, unit, source, purchased, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Name, entry.Qty, entry.Unit, entry.Source, entry.Purchased, entry.CreatedAt)

	return err
}

// GetPending returns unpurchased entries, oldest first
func (s *ShoppingStore) GetPending() ([]core.ShoppingEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, name, qty, unit, source, purchased, created_at, purchased_at
		FROM shopping_entries
		WHERE purchased = 0
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShoppingEntries(rows)
}

// GetAll returns every entry, newest first
func (s *ShoppingStore) GetAll(limit int) ([]core.ShoppingEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, name, qty, unit, source, purchased, created_at, purchased_at
		FROM shopping_entries
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShoppingEntries(rows)
}

// MarkPurchased flags an entry as bought
func (s *ShoppingStore) MarkPurchased(id string) error {
	now := time.Now().UTC()
	res, err := s.db.conn.Exec(`
		UPDATE shopping_entries SET purchased = 1, purchased_at = ? WHERE id = ?
	`, now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry
func (s *ShoppingStore) Delete(id string) error {
	res, err := s.db.conn.Exec("DELETE FROM shopping_entries WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrEntryNotFound
	}
	return nil
}

func scanShoppingEntries(rows *sql.Rows) ([]core.ShoppingEntry, error) {
	var entries []core.ShoppingEntry
	for rows.Next() {
		var e core.ShoppingEntry
		var purchasedAt sql.NullTime

		err := rows.Scan(&e.ID, &e.Name, &e.Qty, &e.Unit, &e.Source,
			&e.Purchased, &e.CreatedAt, &purchasedAt)
		if err != nil {
			return nil, err
		}

		if purchasedAt.Valid {
			t := purchasedAt.Time
			e.PurchasedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
