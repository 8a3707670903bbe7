package api

import (
	"net/http"
	"time"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/stats"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	activities := store.Load[model.Activity](s.store, model.KeyActivityLog)
	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)

	period := stats.ParsePeriod(r.URL.Query().Get("period"))
	respondJSON(w, http.StatusOK, map[string]any{
		"overview":    stats.BuildOverview(animals, activities, tasks, now),
		"finance":     stats.Summarize(records, period, now),
		"period":      period,
		"todaysTasks": stats.TodaysTasks(tasks, now),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	period := stats.ParsePeriod(r.URL.Query().Get("period"))
	respondJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"summary": stats.Summarize(records, period, time.Now()),
		"monthly": stats.MonthlyBuckets(records),
	})
}

func (s *Server) handleCategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	respondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"report":   stats.BuildCategoryReport(animals, category, time.Now()),
	})
}
