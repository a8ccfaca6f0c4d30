// Package api provides REST API handlers for PantryKit.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/pantrykit/pantrykit/internal/voice"
)

// handleVoiceCommand parses an utterance and optionally executes it.
// With execute=false the response carries only the parsed command and
// suggestions, which is what the UI uses for its live preview.
func (s *Server) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text    string `json:"text"`
		Execute bool   `json:"execute"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Text == "" {
		s.respondError(w, http.StatusBadRequest, "Text required")
		return
	}

	cmd := voice.Parse(input.Text)

	if !input.Execute {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"command":     cmd,
			"level":       voice.Level(cmd.Confidence),
			"suggestions": voice.Suggestions(cmd),
		})
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.Executed {
		s.Broadcast("voice.executed", result)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"level":  voice.Level(cmd.Confidence),
	})
}
