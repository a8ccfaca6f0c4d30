// Package api provides the HTTP API server for PantryKit.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/pantrykit/pantrykit/internal/actions"
	"github.com/pantrykit/pantrykit/internal/core"
	"github.com/pantrykit/pantrykit/internal/festivals"
	"github.com/pantrykit/pantrykit/internal/reminders"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
)

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	wsHub      *WebSocketHub

	// Stores
	itemStore     *storage.ItemStore
	shoppingStore *storage.ShoppingStore
	reminderStore *storage.ReminderStore
	usageStore    *storage.UsageStore

	// Domain services
	engine          *status.Engine
	dispatcher      *actions.Dispatcher
	reminderService *reminders.Service
	festivalService *festivals.Service
}

// Config for the server
type Config struct {
	Port            int
	DB              *storage.DB
	Engine          *status.Engine
	Dispatcher      *actions.Dispatcher
	ReminderService *reminders.Service
	FestivalService *festivals.Service
}

// New creates a new API server
func New(cfg Config) *Server {
	s := &Server{
		itemStore:       storage.NewItemStore(cfg.DB),
		shoppingStore:   storage.NewShoppingStore(cfg.DB),
		reminderStore:   storage.NewReminderStore(cfg.DB),
		usageStore:      storage.NewUsageStore(cfg.DB),
		engine:          cfg.Engine,
		dispatcher:      cfg.Dispatcher,
		reminderService: cfg.ReminderService,
		festivalService: cfg.FestivalService,
		wsHub:           NewWebSocketHub(),
	}

	// Push sweep reminders to connected clients
	if s.reminderService != nil {
		s.reminderService.OnReminder(func(r core.Reminder) {
			s.Broadcast("reminder.created", r)
		})
	}

	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter configures all routes
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Inventory
		r.Get("/items", s.handleGetItems)
		r.Post("/items", s.handleCreateItem)
		r.Get("/items/{itemID}", s.handleGetItem)
		r.Put("/items/{itemID}", s.handleUpdateItem)
		r.Delete("/items/{itemID}", s.handleDeleteItem)
		r.Post("/items/{itemID}/consume", s.handleConsumeItem)

		// Voice
		r.Post("/voice/command", s.handleVoiceCommand)

		// Shopping list
		r.Get("/shopping", s.handleGetShopping)
		r.Post("/shopping", s.handleCreateShoppingEntry)
		r.Post("/shopping/{entryID}/purchase", s.handlePurchaseEntry)
		r.Delete("/shopping/{entryID}", s.handleDeleteShoppingEntry)

		// Reminders
		r.Get("/reminders", s.handleGetReminders)
		r.Post("/reminders/sweep", s.handleSweepReminders)
		r.Post("/reminders/{reminderID}/done", s.handleReminderDone)

		// Festivals
		r.Get("/festivals", s.handleGetFestivals)
		r.Post("/festivals/{festivalID}/shopping", s.handleFestivalShopping)

		// Stats
		r.Get("/stats", s.handleGetStats)
	})

	// WebSocket
	r.Get("/ws", s.handleWebSocket)

	s.router = r
}

// Start starts the HTTP server (blocks)
func (s *Server) Start() error {
	go s.wsHub.Run()
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.wsHub.Stop()
	return s.httpServer.Shutdown(ctx)
}

// Broadcast sends a message to all WebSocket clients
func (s *Server) Broadcast(msgType string, data interface{}) {
	s.wsHub.Broadcast(WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// --- Inventory handlers ---

func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.itemStore.GetAll()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recalced := s.engine.Recalc(items)

	if sortType := r.URL.Query().Get("sort"); sortType != "" {
		recalced = status.Sort(recalced, core.SortType(sortType))
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": recalced,
		"count": len(recalced),
	})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string  `json:"name"`
		Qty          float64 `json:"qty"`
		Unit         string  `json:"unit"`
		Expiry       string  `json:"expiry"`
		LowThreshold float64 `json:"low_threshold"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" {
		s.respondError(w, http.StatusBadRequest, "Name required")
		return
	}

	item := &core.Item{
		ID:           core.ItemID(uuid.NewString()),
		Name:         input.Name,
		Qty:          input.Qty,
		Unit:         input.Unit,
		LowThreshold: input.LowThreshold,
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}

	// No expiry is allowed; an unparseable one is not
	if input.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339, input.Expiry)
		if err != nil {
			expiry, err = time.Parse("2006-01-02", input.Expiry)
		}
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid expiry date")
			return
		}
		item.Expiry = expiry
	}

	recalced := s.engine.Recalc([]core.Item{*item})[0]
	recalced.ID = item.ID

	if err := s.itemStore.Create(&recalced); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Broadcast("item.created", recalced)
	s.respondJSON(w, http.StatusCreated, recalced)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	item, err := s.itemStore.GetByID(core.ItemID(itemID))
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	recalced := s.engine.Recalc([]core.Item{*item})[0]
	s.respondJSON(w, http.StatusOK, recalced)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	item, err := s.itemStore.GetByID(core.ItemID(itemID))
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	var updates struct {
		Name         *string  `json:"name"`
		Qty          *float64 `json:"qty"`
		Unit         *string  `json:"unit"`
		Expiry       *string  `json:"expiry"`
		LowThreshold *float64 `json:"low_threshold"`
	}

	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if updates.Name != nil {
		item.Name = *updates.Name
	}
	if updates.Qty != nil {
		item.Qty = *updates.Qty
	}
	if updates.Unit != nil {
		item.Unit = *updates.Unit
	}
	if updates.LowThreshold != nil {
		item.LowThreshold = *updates.LowThreshold
	}
	if updates.Expiry != nil {
		expiry, err := time.Parse(time.RFC3339, *updates.Expiry)
		if err != nil {
			expiry, err = time.Parse("2006-01-02", *updates.Expiry)
		}
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid expiry date")
			return
		}
		item.Expiry = expiry
	}

	recalced := s.engine.Recalc([]core.Item{*item})[0]
	recalced.ID = item.ID
	recalced.CreatedAt = item.CreatedAt

	if err := s.itemStore.Update(&recalced); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Broadcast("item.updated", recalced)
	s.respondJSON(w, http.StatusOK, recalced)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.itemStore.Delete(core.ItemID(itemID)); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.Broadcast("item.deleted", map[string]string{"id": itemID})
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleConsumeItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var input struct {
		Qty float64 `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Qty <= 0 {
		input.Qty = 1
	}

	item, err := s.itemStore.AdjustQty(core.ItemID(itemID), -input.Qty)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	recalced := s.engine.Recalc([]core.Item{*item})[0]
	s.Broadcast("item.updated", recalced)
	s.respondJSON(w, http.StatusOK, recalced)
}

// --- Stats ---

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	items, err := s.itemStore.GetAll()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recalced := s.engine.Recalc(items)

	statusCounts := map[core.ItemStatus]int{}
	categoryCounts := map[string]int{}
	for _, item := range recalced {
		statusCounts[item.Status]++
		categoryCounts[item.Category]++
	}

	pending, _ := s.shoppingStore.GetPending()
	remindersList, _ := s.reminderStore.GetPending(100)
	usageCount, _ := s.usageStore.Count()

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_items":       len(recalced),
		"items_by_status":   statusCounts,
		"items_by_category": categoryCounts,
		"shopping_pending":  len(pending),
		"reminders_pending": len(remindersList),
		"usage_events":      usageCount,
	})
}
