// Package festivals provides the festival calendar that backs the
// dashboard's festivals tab: upcoming dates plus the shopping items
// typically bought for each one.
package festivals

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pantrykit/pantrykit/internal/core"
)

// calendar is the static festival table. Dates recur yearly.
var calendar = []core.Festival{
	{ID: "pongal", Name: "Pongal", Emoji: "🌾", Month: time.January, Day: 14,
		SuggestedItems: []string{"Rice", "Jaggery", "Milk", "Ghee"}},
	{ID: "holi", Name: "Holi", Emoji: "🎨", Month: time.March, Day: 14,
		SuggestedItems: []string{"Milk", "Sugar", "Flour", "Ghee"}},
	{ID: "eid", Name: "Eid", Emoji: "🌙", Month: time.March, Day: 30,
		SuggestedItems: []string{"Milk", "Dates", "Vermicelli", "Sugar"}},
	{ID: "onam", Name: "Onam", Emoji: "🛶", Month: time.September, Day: 5,
		SuggestedItems: []string{"Rice", "Coconut", "Banana", "Jaggery"}},
	{ID: "navratri", Name: "Navratri", Emoji: "🪔", Month: time.September, Day: 22,
		SuggestedItems: []string{"Flour", "Potatoes", "Curd", "Ghee"}},
	{ID: "diwali", Name: "Diwali", Emoji: "🪔", Month: time.October, Day: 20,
		SuggestedItems: []string{"Ghee", "Sugar", "Flour", "Dry Fruits", "Oil"}},
	{ID: "christmas", Name: "Christmas", Emoji: "🎄", Month: time.December, Day: 25,
		SuggestedItems: []string{"Flour", "Butter", "Sugar", "Eggs", "Honey"}},
	{ID: "newyear", Name: "New Year", Emoji: "🎉", Month: time.January, Day: 1,
		SuggestedItems: []string{"Juice", "Biscuits", "Bread"}},
}

// Upcoming is a festival with its resolved next date
type Upcoming struct {
	core.Festival
	Date     time.Time `json:"date"`
	DaysAway int       `json:"days_away"`
}

// Service answers festival calendar queries
type Service struct {
	now func() time.Time
}

// NewService creates a festival service using the real clock
func NewService() *Service {
	return &Service{now: time.Now}
}

// SetNow overrides the clock. Used for deterministic tests.
func (s *Service) SetNow(fn func() time.Time) {
	s.now = fn
}

// All returns the full calendar
func (s *Service) All() []core.Festival {
	out := make([]core.Festival, len(calendar))
	copy(out, calendar)
	return out
}

// GetByID returns one festival
func (s *Service) GetByID(id string) (core.Festival, bool) {
	for _, f := range calendar {
		if f.ID == id {
			return f, true
		}
	}
	return core.Festival{}, false
}

// UpcomingWithin returns festivals whose next occurrence falls within
// the given number of days, soonest first.
func (s *Service) UpcomingWithin(days int) []Upcoming {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []Upcoming
	for _, f := range calendar {
		date := f.NextOccurrence(now)
		away := int(date.Sub(today).Hours() / 24)
		if away <= days {
			out = append(out, Upcoming{Festival: f, Date: date, DaysAway: away})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ShoppingEntries expands a festival's suggested items into shopping
// list entries tagged with the festival as source.
func (s *Service) ShoppingEntries(f core.Festival) []core.ShoppingEntry {
	entries := make([]core.ShoppingEntry, 0, len(f.SuggestedItems))
	for _, name := range f.SuggestedItems {
		entries = append(entries, core.ShoppingEntry{
			ID:     uuid.NewString(),
			Name:   name,
			Qty:    1,
			Unit:   "pcs",
			Source: "festival",
		})
	}
	return entries
}
