// Package core defines the fundamental types for PantryKit.
// Every other package builds on these.
package core

import (
	"time"
)

// -----------------------------------------------------------------------------
// ITEM - A single inventory record
// -----------------------------------------------------------------------------

// ItemID is a type-safe identifier for inventory items
type ItemID string

// ItemStatus is the freshness/urgency classification of an item.
// Derived by the status engine, never authoritative on its own.
type ItemStatus string

const (
	StatusOK       ItemStatus = "ok"
	StatusLow      ItemStatus = "low"
	StatusExpiring ItemStatus = "expiring"
	StatusExpired  ItemStatus = "expired"
)

// HeatColor is the display band for a heat score
type HeatColor string

const (
	HeatGreen  HeatColor = "green"
	HeatYellow HeatColor = "yellow"
	HeatOrange HeatColor = "orange"
	HeatRed    HeatColor = "red"
)

// Item represents one tracked kitchen inventory item.
// Status, HeatScore, HeatColor, Category and Emoji are derived fields;
// the status engine recomputes them on every pass and they are pure
// functions of (Name, Qty, Expiry, LowThreshold, now).
type Item struct {
	ID   ItemID `json:"id"`
	Name string `json:"name"`

	// Stock
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`

	// Expiry is zero when the item has no known expiry date
	Expiry time.Time `json:"expiry,omitempty"`

	// LowThreshold <= 0 means "use the global default"
	LowThreshold float64 `json:"low_threshold,omitempty"`

	// Derived fields (recomputed, never trusted from storage)
	Category  string     `json:"category"`
	Emoji     string     `json:"emoji"`
	Status    ItemStatus `json:"status"`
	HeatScore int        `json:"heat_score"`
	HeatColor HeatColor  `json:"heat_color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortType selects an ordering for item collections
type SortType string

const (
	SortExpiry  SortType = "expiry"   // ascending expiry date
	SortQtyAsc  SortType = "qty_asc"  // ascending quantity
	SortQtyDesc SortType = "qty_desc" // descending quantity
	SortRecent  SortType = "recent"   // most recently updated first
	SortHeat    SortType = "heat"     // hottest first
)

// -----------------------------------------------------------------------------
// VOICE COMMAND - A parsed utterance
// -----------------------------------------------------------------------------

// ActionType is one of the six recognized voice-command actions
type ActionType string

const (
	ActionAddToShopping  ActionType = "add_to_shopping"
	ActionAddToInventory ActionType = "add_to_inventory"
	ActionLogUsage       ActionType = "log_usage"
	ActionCreateReminder ActionType = "create_reminder"
	ActionCheckStock     ActionType = "check_stock"
	ActionUnknown        ActionType = "unknown"
)

// UsageType distinguishes how an item was consumed
type UsageType string

const (
	UsageCooked   UsageType = "COOKED"
	UsageConsumed UsageType = "CONSUMED"
)

// VoiceCommand is the structured result of parsing one utterance.
// Created fresh per input, never mutated afterwards.
type VoiceCommand struct {
	Action     ActionType             `json:"action"`
	Item       string                 `json:"item,omitempty"`
	Quantity   float64                `json:"quantity,omitempty"`
	Unit       string                 `json:"unit,omitempty"`
	Confidence float64                `json:"confidence"`
	RawText    string                 `json:"raw_text"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// -----------------------------------------------------------------------------
// SHOPPING - Items queued for purchase
// -----------------------------------------------------------------------------

// ShoppingEntry is one line on the shopping list
type ShoppingEntry struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`

	// Source records what put the entry on the list:
	// "manual", "voice" or "festival"
	Source string `json:"source"`

	Purchased   bool       `json:"purchased"`
	CreatedAt   time.Time  `json:"created_at"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
}

// -----------------------------------------------------------------------------
// REMINDER - Something the kitchen wants you to notice
// -----------------------------------------------------------------------------

// Reminder is a user-visible nudge, either created explicitly via a
// voice command or generated by the expiry sweep.
type Reminder struct {
	ID      string `json:"id"`
	ItemID  ItemID `json:"item_id,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`

	DueAt time.Time `json:"due_at"`
	Done  bool      `json:"done"`

	CreatedAt time.Time `json:"created_at"`
}

// -----------------------------------------------------------------------------
// USAGE - Append-only consumption log
// -----------------------------------------------------------------------------

// UsageEntry records one consumption event
type UsageEntry struct {
	ID        string    `json:"id"`
	ItemName  string    `json:"item_name"`
	Qty       float64   `json:"qty"`
	Unit      string    `json:"unit"`
	UsageType UsageType `json:"usage_type"`
	CreatedAt time.Time `json:"created_at"`
}

// -----------------------------------------------------------------------------
// FESTIVAL - Calendar entries with shopping suggestions
// -----------------------------------------------------------------------------

// Festival is a recurring calendar entry the dashboard surfaces ahead
// of time, with the items typically bought for it.
type Festival struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`

	// Recurs every year on Month/Day
	Month time.Month `json:"month"`
	Day   int        `json:"day"`

	SuggestedItems []string `json:"suggested_items"`
}

// NextOccurrence returns the festival's next date on or after the
// calendar day of ref.
func (f Festival) NextOccurrence(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	occ := time.Date(ref.Year(), f.Month, f.Day, 0, 0, 0, 0, ref.Location())
	if occ.Before(day) {
		occ = occ.AddDate(1, 0, 0)
	}
	return occ
}
