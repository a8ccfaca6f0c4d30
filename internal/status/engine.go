// Package status derives freshness classifications and heat scores
// for inventory items.
//
// Everything here is a pure function of the item fields and the
// engine's clock; recomputing is idempotent for a fixed "now".
package status

import (
	"math"
	"sort"
	"time"

	"github.com/pantrykit/pantrykit/internal/core"
)

// Engine computes derived item fields
type Engine struct {
	config Config
	now    func() time.Time
}

// Config configures the status engine
type Config struct {
	// GlobalLowThreshold is the quantity at or below which an item
	// without its own threshold counts as low stock
	GlobalLowThreshold float64

	// ExpiringWindowDays is the expiring window for ordinary items
	ExpiringWindowDays int

	// PerishableWindowDays is the extended expiring window for
	// perishable items
	PerishableWindowDays int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		GlobalLowThreshold:   1,
		ExpiringWindowDays:   2,
		PerishableWindowDays: 4,
	}
}

// NewEngine creates a status engine using the real clock
func NewEngine(cfg Config) *Engine {
	return &Engine{
		config: cfg,
		now:    time.Now,
	}
}

// SetNow overrides the engine's clock. Used for deterministic tests.
func (e *Engine) SetNow(fn func() time.Time) {
	e.now = fn
}

// perishables get the extended expiring window; matched as
// case-insensitive substrings of the item name
var perishables = []string{"milk", "curd", "cheese", "tomato", "onion"}

// IsPerishable reports whether the item name matches the perishables list
func IsPerishable(name string) bool {
	return matchAny(name, perishables)
}

// DaysUntilExpiry returns ceil((expiry - now) / 24h).
// The current wall-clock time is part of the calculation: an item
// expiring tomorrow morning reads as 1 day before midnight tonight
// and as 0 or 1 depending on time of day. Kept as-is for
// compatibility with existing stored data.
func (e *Engine) DaysUntilExpiry(expiry time.Time) int {
	diff := expiry.Sub(e.now())
	return int(math.Ceil(diff.Hours() / 24))
}

// ComputeStatus classifies one item. The checks are a strict priority
// cascade; expired and expiring always win over low stock. Do not
// reorder.
func (e *Engine) ComputeStatus(item core.Item) core.ItemStatus {
	if !item.Expiry.IsZero() {
		days := e.DaysUntilExpiry(item.Expiry)
		if days < 0 {
			return core.StatusExpired
		}
		if days <= e.config.ExpiringWindowDays {
			return core.StatusExpiring
		}
		if IsPerishable(item.Name) && days <= e.config.PerishableWindowDays {
			return core.StatusExpiring
		}
	}
	if item.Qty <= e.lowThreshold(item) {
		return core.StatusLow
	}
	return core.StatusOK
}

func (e *Engine) lowThreshold(item core.Item) float64 {
	if item.LowThreshold > 0 {
		return item.LowThreshold
	}
	return e.config.GlobalLowThreshold
}

// Heat index weights. The score blends expiry proximity (dominant),
// perishability and stock level into a single 0-100 urgency value.
const (
	weightExpiry     = 0.65
	weightPerishable = 0.20
	weightStock      = 0.15
)

// ComputeHeatIndex returns the item's heat score and display color.
func (e *Engine) ComputeHeatIndex(item core.Item) (int, core.HeatColor) {
	// Items without an expiry date sit at the long-range floor
	expiryFactor := 10.0
	if !item.Expiry.IsZero() {
		days := e.DaysUntilExpiry(item.Expiry)
		switch {
		case days < 0:
			expiryFactor = 100
		case days <= 1:
			expiryFactor = 90
		case days <= 3:
			expiryFactor = 75
		case days <= 7:
			expiryFactor = 55
		default:
			expiryFactor = math.Max(10, 100-2*float64(days))
		}
	}

	perishableBoost := 0.0
	if IsPerishable(item.Name) {
		perishableBoost = 15
	}

	// Stock factor uses the item's own threshold, defaulting to 1
	// (not the global threshold - that only affects status)
	threshold := item.LowThreshold
	if threshold <= 0 {
		threshold = 1
	}
	stockFactor := 5.0
	if item.Qty <= threshold {
		stockFactor = 25
	}

	score := int(math.Round(math.Min(100,
		weightExpiry*expiryFactor+weightPerishable*perishableBoost+weightStock*stockFactor)))

	// Bands are inclusive lower bounds, checked high to low
	var color core.HeatColor
	switch {
	case score >= 85:
		color = core.HeatRed
	case score >= 60:
		color = core.HeatOrange
	case score >= 35:
		color = core.HeatYellow
	default:
		color = core.HeatGreen
	}

	return score, color
}

// Recalc maps every item through the classifiers and returns new
// records with the derived fields and UpdatedAt attached. The input
// slice is not mutated.
func (e *Engine) Recalc(items []core.Item) []core.Item {
	now := e.now()
	out := make([]core.Item, len(items))
	for i, item := range items {
		item.Category = InferCategory(item.Name)
		item.Emoji = InferEmoji(item.Name)
		item.Status = e.ComputeStatus(item)
		item.HeatScore, item.HeatColor = e.ComputeHeatIndex(item)
		item.UpdatedAt = now
		out[i] = item
	}
	return out
}

// Sort returns a stably sorted copy of items. Ties keep their
// relative input order. Unknown sort types return the copy unchanged.
func Sort(items []core.Item, by core.SortType) []core.Item {
	out := append([]core.Item(nil), items...)

	switch by {
	case core.SortExpiry:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Expiry.Before(out[j].Expiry)
		})
	case core.SortQtyAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Qty < out[j].Qty
		})
	case core.SortQtyDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Qty > out[j].Qty
		})
	case core.SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return recencyKey(out[i]).After(recencyKey(out[j]))
		})
	case core.SortHeat:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].HeatScore > out[j].HeatScore
		})
	}

	return out
}

// recencyKey falls back to the expiry date for items never recalculated
func recencyKey(item core.Item) time.Time {
	if item.UpdatedAt.IsZero() {
		return item.Expiry
	}
	return item.UpdatedAt
}
