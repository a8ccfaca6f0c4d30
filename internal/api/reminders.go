// Package api provides REST API handlers for PantryKit.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetReminders(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	remindersList, err := s.reminderStore.GetPending(limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"reminders": remindersList,
		"count":     len(remindersList),
	})
}

// handleSweepReminders triggers an immediate expiry sweep
func (s *Server) handleSweepReminders(w http.ResponseWriter, r *http.Request) {
	if s.reminderService == nil {
		s.respondError(w, http.StatusServiceUnavailable, "reminder service not running")
		return
	}

	created, err := s.reminderService.Sweep(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
	})
}

func (s *Server) handleReminderDone(w http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if err := s.reminderStore.MarkDone(reminderID); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "done"})
}
