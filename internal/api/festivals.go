// Package api provides REST API handlers for PantryKit.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetFestivals(w http.ResponseWriter, r *http.Request) {
	if s.festivalService == nil {
		s.respondError(w, http.StatusServiceUnavailable, "festivals disabled")
		return
	}

	days := 60
	if d := r.URL.Query().Get("days"); d != "" {
		days, _ = strconv.Atoi(d)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": s.festivalService.UpcomingWithin(days),
	})
}

// handleFestivalShopping pushes a festival's suggested items onto the
// shopping list
func (s *Server) handleFestivalShopping(w http.ResponseWriter, r *http.Request) {
	if s.festivalService == nil {
		s.respondError(w, http.StatusServiceUnavailable, "festivals disabled")
		return
	}

	festivalID := chi.URLParam(r, "festivalID")
	festival, ok := s.festivalService.GetByID(festivalID)
	if !ok {
		s.respondError(w, http.StatusNotFound, "festival not found")
		return
	}

	entries := s.festivalService.ShoppingEntries(festival)
	for i := range entries {
		if err := s.shoppingStore.Create(&entries[i]); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.Broadcast("shopping.created", entries)
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"festival": festival.Name,
		"entries":  entries,
	})
}
