package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"farmkeep/backend/internal/insights"
	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/store"
)

// The insight endpoints assemble their inputs from the stored collections,
// hand them to the external text service, and absorb failures into a fixed
// inline error state for the affected UI region only.

func (s *Server) handleProductionInsights(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		respondError(w, http.StatusServiceUnavailable, "AI insights are not configured")
		return
	}

	var in struct {
		LivestockType           string `json:"livestockType"`
		FarmManagementPractices string `json:"farmManagementPractices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	in.LivestockType = strings.TrimSpace(in.LivestockType)
	if in.LivestockType == "" {
		respondError(w, http.StatusBadRequest, "livestockType is required")
		return
	}

	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	metrics := make([]model.ProductionMetric, 0)
	for _, a := range model.AnimalsInCategory(animals, in.LivestockType) {
		metrics = append(metrics, a.ProductionMetrics...)
	}
	metricsJSON, _ := json.Marshal(metrics)

	result := s.insights.ProductionInsights(r.Context(), insights.ProductionInsightsInput{
		LivestockType:           in.LivestockType,
		ProductionMetrics:       string(metricsJSON),
		FarmManagementPractices: in.FarmManagementPractices,
	})
	if result == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"report": nil,
			"error":  "Failed to generate the AI report",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"report": result})
}

func (s *Server) handleProfitSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		respondError(w, http.StatusServiceUnavailable, "AI insights are not configured")
		return
	}

	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	metrics := make([]model.ProductionMetric, 0)
	for _, a := range animals {
		metrics = append(metrics, a.ProductionMetrics...)
	}

	financeJSON, _ := json.Marshal(records)
	metricsJSON, _ := json.Marshal(metrics)

	suggestions := s.insights.ProfitSuggestions(r.Context(), insights.ProfitOptimizationInput{
		FinancialData:              string(financeJSON),
		LivestockProductionMetrics: string(metricsJSON),
	})
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
