// Package api provides REST API handlers for PantryKit.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pantrykit/pantrykit/internal/core"
)

func (s *Server) handleGetShopping(w http.ResponseWriter, r *http.Request) {
	var entries []core.ShoppingEntry
	var err error

	if r.URL.Query().Get("all") == "true" {
		limit := 100
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, _ = strconv.Atoi(l)
		}
		entries, err = s.shoppingStore.GetAll(limit)
	} else {
		entries, err = s.shoppingStore.GetPending()
	}

	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleCreateShoppingEntry(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string  `json:"name"`
		Qty  float64 `json:"qty"`
		Unit string  `json:"unit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" {
		s.respondError(w, http.StatusBadRequest, "Name required")
		return
	}

	entry := &core.ShoppingEntry{
		ID:     uuid.NewString(),
		Name:   input.Name,
		Qty:    input.Qty,
		Unit:   input.Unit,
		Source: "manual",
	}
	if entry.Unit == "" {
		entry.Unit = "pcs"
	}

	if err := s.shoppingStore.Create(entry); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Broadcast("shopping.created", entry)
	s.respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handlePurchaseEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if err := s.shoppingStore.MarkPurchased(entryID); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.Broadcast("shopping.purchased", map[string]string{"id": entryID})
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "purchased"})
}

func (s *Server) handleDeleteShoppingEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if err := s.shoppingStore.Delete(entryID); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
