// Package storage provides persistence for PantryKit.
package storage

import (
	"database/sql"
	"time"

	"github.com/pantrykit/pantrykit/internal/core"
)

// ReminderStore handles reminder persistence
type ReminderStore struct {
	db *DB
}

// NewReminderStore creates a new reminder store
func NewReminderStore(db *DB) *ReminderStore {
	return &ReminderStore{db: db}
}

// Create stores a reminder
func (s *ReminderStore) Create(r *core.Reminder) error {
	r.CreatedAt = time.Now().UTC()

	_, err := s.db.conn.Exec(`
		INSERT INTO reminders (id, item_id, title, message, due_at, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, string(r.ItemID), r.Title, r.Message, r.DueAt, r.Done, r.CreatedAt)

	return err
}

// GetPending returns reminders not yet done, soonest due first
func (s *ReminderStore) GetPending(limit int) ([]core.Reminder, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, item_id, title, message, due_at, done, created_at
		FROM reminders
		WHERE done = 0
		ORDER BY due_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

// MarkDone flags a reminder as handled
func (s *ReminderStore) MarkDone(id string) error {
	res, err := s.db.conn.Exec("UPDATE reminders SET done = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrReminderNotFound
	}
	return nil
}

// ExistsForItemSince reports whether an undone reminder for the item
// was created at or after the cutoff. The sweep uses this to avoid
// nagging about the same item repeatedly.
func (s *ReminderStore) ExistsForItemSince(itemID core.ItemID, cutoff time.Time) (bool, error) {
	var count int
	err := s.db.conn.QueryRow(`
		SELECT COUNT(*) FROM reminders
		WHERE item_id = ? AND done = 0 AND created_at >= ?
	`, string(itemID), cutoff).Scan(&count)
	return count > 0, err
}

// DeleteDoneBefore prunes handled reminders older than the cutoff
func (s *ReminderStore) DeleteDoneBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.conn.Exec(
		"DELETE FROM reminders WHERE done = 1 AND created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanReminders(rows *sql.Rows) ([]core.Reminder, error) {
	var reminders []core.Reminder
	for rows.Next() {
		var r core.Reminder
		var itemID sql.NullString

		err := rows.Scan(&r.ID, &itemID, &r.Title, &r.Message,
			&r.DueAt, &r.Done, &r.CreatedAt)
		if err != nil {
			return nil, err
		}

		r.ItemID = core.ItemID(itemID.String)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
