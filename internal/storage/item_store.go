// Package storage provides persistence for PantryKit.
package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pantrykit/pantrykit/internal/core"
)

// ItemStore handles inventory item persistence
type ItemStore struct {
	db *DB
}

// NewItemStore creates a new item store
func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create creates a new item
func (s *ItemStore) Create(item *core.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.conn.Exec(`
		INSERT INTO items (
		    id, name, qty, unit, expiry, low_threshold,
		    category, emoji, status, heat_score, heat_color,
		    created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, item.Name, item.Qty, item.Unit, nullTime(item.Expiry),
		item.LowThreshold, item.Category, item.Emoji,
		item.Status, item.HeatScore, item.HeatColor,
		item.CreatedAt, item.UpdatedAt,
	)

	return err
}

// GetByID returns an item by ID
func (s *ItemStore) GetByID(id core.ItemID) (*core.Item, error) {
	row := s.db.conn.QueryRow(itemSelect+" WHERE id = ?", id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrItemNotFound
	}
	return item, err
}

// GetByName returns the first item whose name matches case-insensitively
func (s *ItemStore) GetByName(name string) (*core.Item, error) {
	row := s.db.conn.QueryRow(itemSelect+" WHERE LOWER(name) = ? LIMIT 1",
		strings.ToLower(name))
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrItemNotFound
	}
	return item, err
}

// GetAll returns every item, oldest first
func (s *ItemStore) GetAll() ([]core.Item, error) {
	rows, err := s.db.conn.Query(itemSelect + " ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// Update writes the item's mutable and derived fields
func (s *ItemStore) Update(item *core.Item) error {
	item.UpdatedAt = time.Now().UTC()

	_, err := s.db.conn.Exec(`
		UPDATE items SET
		    name = ?, qty = ?, unit = ?, expiry = ?, low_threshold = ?,
		    category = ?, emoji = ?, status = ?, heat_score = ?, heat_color = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		item.Name, item.Qty, item.Unit, nullTime(item.Expiry), item.LowThreshold,
		item.Category, item.Emoji, item.Status, item.HeatScore, item.HeatColor,
		item.UpdatedAt, item.ID,
	)

	return err
}

// AdjustQty changes an item's quantity by delta, clamping at zero.
// Returns the updated item.
func (s *ItemStore) AdjustQty(id core.ItemID, delta float64) (*core.Item, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.Qty += delta
	if item.Qty < 0 {
		item.Qty = 0
	}

	if err := s.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item
func (s *ItemStore) Delete(id core.ItemID) error {
	res, err := s.db.conn.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrItemNotFound
	}
	return nil
}

// Count returns total item count
func (s *ItemStore) Count() (int, error) {
	var count int
	err := s.db.conn.QueryRow("SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

const itemSelect = `
	SELECT id, name, qty, unit, expiry, low_threshold,
	       category, emoji, status, heat_score, heat_color,
	       created_at, updated_at
	FROM items`

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*core.Item, error) {
	item := &core.Item{}
	var expiry sql.NullTime

	err := row.Scan(
		&item.ID, &item.Name, &item.Qty, &item.Unit, &expiry,
		&item.LowThreshold, &item.Category, &item.Emoji,
		&item.Status, &item.HeatScore, &item.HeatColor,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiry.Valid {
		item.Expiry = expiry.Time
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]core.Item, error) {
	var items []core.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
