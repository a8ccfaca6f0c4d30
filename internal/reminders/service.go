// Package reminders implements the background expiry sweep: it
// periodically recalculates the inventory and raises reminders for
// items that turned expired, expiring or low.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantrykit/pantrykit/internal/core"
	"github.com/pantrykit/pantrykit/internal/logging"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
)

// Service runs the sweep loop
type Service struct {
	items  *storage.ItemStore
	store  *storage.ReminderStore
	engine *status.Engine
	log    *logging.Logger

	// onReminder fires for every newly created reminder; the API
	// server hooks this to push over WebSocket
	onReminder func(core.Reminder)

	running bool
	stopCh  chan struct{}
	mu      sync.RWMutex

	config ServiceConfig
	now    func() time.Time
}

// ServiceConfig configures the sweep
type ServiceConfig struct {
	SweepInterval time.Duration

	// Quiet hours suppress sweeps; Start is inclusive, End exclusive
	QuietHoursStart int
	QuietHoursEnd   int

	// Retention for done reminders
	Retention time.Duration
}

// DefaultServiceConfig returns sensible defaults
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		SweepInterval:   30 * time.Minute,
		QuietHoursStart: 22,
		QuietHoursEnd:   7,
		Retention:       30 * 24 * time.Hour,
	}
}

// NewService creates a reminder sweep service
func NewService(items *storage.ItemStore, store *storage.ReminderStore,
	engine *status.Engine, cfg ServiceConfig) *Service {
	return &Service{
		items:  items,
		store:  store,
		engine: engine,
		log:    logging.New("reminders"),
		config: cfg,
		stopCh: make(chan struct{}),
		now:    time.Now,
	}
}

// SetNow overrides the clock. Used for deterministic tests.
func (s *Service) SetNow(fn func() time.Time) {
	s.now = fn
}

// OnReminder sets the new-reminder callback
func (s *Service) OnReminder(fn func(core.Reminder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReminder = fn
}

// Start begins the background sweep loop
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("reminder service already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	go s.runSweepLoop(ctx)

	s.log.Info("reminder service started")
	return nil
}

// Stop stops the service
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
	s.log.Info("reminder service stopped")
}

// IsRunning checks if the service is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Service) runSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	// Run immediately on start
	s.sweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

// sweepOnce is exported through Sweep for the API's manual trigger
func (s *Service) sweepOnce(ctx context.Context) {
	if s.isQuietHours() {
		return
	}

	created, err := s.Sweep(ctx)
	if err != nil {
		s.log.Error("sweep failed: %v", err)
		return
	}
	if created > 0 {
		s.log.Info("sweep created %d reminders", created)
	}

	cutoff := s.now().Add(-s.config.Retention)
	if deleted, err := s.store.DeleteDoneBefore(cutoff); err == nil && deleted > 0 {
		s.log.Debug("pruned %d old reminders", deleted)
	}
}

// Sweep recalculates the inventory and creates reminders for urgent
// items, deduping per item per day. Returns the number created.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	items, err := s.items.GetAll()
	if err != nil {
		return 0, fmt.Errorf("loading inventory: %w", err)
	}

	recalced := s.engine.Recalc(items)

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	created := 0
	for _, item := range recalced {
		if item.Status == core.StatusOK {
			continue
		}

		exists, err := s.store.ExistsForItemSince(item.ID, dayStart)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		reminder := core.Reminder{
			ID:      uuid.NewString(),
			ItemID:  item.ID,
			Title:   reminderTitle(item),
			Message: reminderMessage(item),
			DueAt:   now,
		}
		if err := s.store.Create(&reminder); err != nil {
			return created, err
		}
		created++

		s.mu.RLock()
		cb := s.onReminder
		s.mu.RUnlock()
		if cb != nil {
			cb(reminder)
		}
	}

	return created, nil
}

func (s *Service) isQuietHours() bool {
	hour := s.now().Hour()
	start, end := s.config.QuietHoursStart, s.config.QuietHoursEnd
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	// Window wraps midnight
	return hour >= start || hour < end
}

func reminderTitle(item core.Item) string {
	switch item.Status {
	case core.StatusExpired:
		return fmt.Sprintf("%s %s has expired", item.Emoji, item.Name)
	case core.StatusExpiring:
		return fmt.Sprintf("%s %s is expiring soon", item.Emoji, item.Name)
	default:
		return fmt.Sprintf("%s %s is running low", item.Emoji, item.Name)
	}
}

func reminderMessage(item core.Item) string {
	switch item.Status {
	case core.StatusExpired, core.StatusExpiring:
		return fmt.Sprintf("Expiry %s, %g %s in stock",
			item.Expiry.Format("Jan 2"), item.Qty, item.Unit)
	default:
		return fmt.Sprintf("Only %g %s left", item.Qty, item.Unit)
	}
}
