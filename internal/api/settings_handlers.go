package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"farmkeep/backend/internal/model"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"currency":   s.currency(),
		"customIcon": s.store.LoadString(model.KeyCustomIcon),
		"farmName":   s.profile.FarmName,
		"manager":    s.profile.Manager,
		"location":   s.profile.Location,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Currency   *string `json:"currency"`
		CustomIcon *string `json:"customIcon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if in.Currency != nil {
		v := strings.TrimSpace(*in.Currency)
		if v == "" {
			respondError(w, http.StatusBadRequest, "currency cannot be empty")
			return
		}
		s.store.SaveString(model.KeyCurrency, v)
	}
	if in.CustomIcon != nil {
		// Data URI for the app icon; empty string clears it.
		s.store.SaveString(model.KeyCustomIcon, strings.TrimSpace(*in.CustomIcon))
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "currency": s.currency()})
}
