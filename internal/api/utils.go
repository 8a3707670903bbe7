package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"farmkeep/backend/internal/model"
)

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

func trimZero(v float64) string {
	if math.Mod(v, 1) == 0 {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// currency returns the stored preference, falling back to the configured
// default when nothing has been saved yet.
func (s *Server) currency() string {
	if v := s.store.LoadString(model.KeyCurrency); v != "" {
		return v
	}
	return s.defaultCurrency
}

func (s *Server) formatAmount(v float64) string {
	return s.currency() + " " + trimZero(v)
}

func parseSearch(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("q"))
}
