package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"farmkeep/backend/internal/insights"
	"farmkeep/backend/internal/report"
	"farmkeep/backend/internal/store"
)

// Server is the localhost JSON API for the app UI. Single user, no auth:
// it fronts the same machine-local store the CLI commands use.
type Server struct {
	store           *store.Store
	insights        *insights.Requester
	profile         report.Profile
	defaultCurrency string
	log             *zap.Logger
	allowedOrigins  map[string]struct{}
	allowAnyOrigin  bool
}

type Options struct {
	Store           *store.Store
	Insights        *insights.Requester // nil disables the AI endpoints
	Profile         report.Profile
	DefaultCurrency string
	CORSOrigins     []string
	Log             *zap.Logger
}

func NewServer(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(opts.CORSOrigins))
	anyOrigin := false
	for _, origin := range opts.CORSOrigins {
		if origin == "*" {
			anyOrigin = true
			continue
		}
		allowed[origin] = struct{}{}
	}
	return &Server{
		store:           opts.Store,
		insights:        opts.Insights,
		profile:         opts.Profile,
		defaultCurrency: opts.DefaultCurrency,
		log:             log,
		allowedOrigins:  allowed,
		allowAnyOrigin:  anyOrigin,
	}
}

func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/livestock", s.handleAnimals)
	mux.HandleFunc("POST /api/livestock", s.handleCreateAnimal)
	mux.HandleFunc("GET /api/livestock/{id}", s.handleAnimal)
	mux.HandleFunc("PUT /api/livestock/{id}", s.handleUpdateAnimal)
	mux.HandleFunc("DELETE /api/livestock/{id}", s.handleDeleteAnimal)
	mux.HandleFunc("POST /api/livestock/{id}/health-records", s.handleAddHealthRecord)
	mux.HandleFunc("DELETE /api/livestock/{id}/health-records/{recordId}", s.handleDeleteHealthRecord)
	mux.HandleFunc("POST /api/livestock/{id}/production-metrics", s.handleAddProductionMetric)
	mux.HandleFunc("DELETE /api/livestock/{id}/production-metrics/{recordId}", s.handleDeleteProductionMetric)

	mux.HandleFunc("GET /api/activities", s.handleActivities)
	mux.HandleFunc("POST /api/activities", s.handleCreateActivity)
	mux.HandleFunc("DELETE /api/activities/{id}", s.handleDeleteActivity)

	mux.HandleFunc("GET /api/tasks", s.handleTasks)
	mux.HandleFunc("GET /api/tasks/today", s.handleTodaysTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	mux.HandleFunc("GET /api/finance", s.handleFinancialRecords)
	mux.HandleFunc("GET /api/finance/summary", s.handleFinanceSummary)
	mux.HandleFunc("GET /api/finance/monthly", s.handleFinanceMonthly)
	mux.HandleFunc("POST /api/finance", s.handleCreateFinancialRecord)
	mux.HandleFunc("PUT /api/finance/{id}", s.handleUpdateFinancialRecord)
	mux.HandleFunc("DELETE /api/finance/{id}", s.handleDeleteFinancialRecord)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/analytics/{category}", s.handleCategoryAnalytics)

	mux.HandleFunc("GET /api/reports/{category}/download", s.handleDownloadReport)

	mux.HandleFunc("POST /api/insights/production", s.handleProductionInsights)
	mux.HandleFunc("POST /api/insights/profit", s.handleProfitSuggestions)

	mux.HandleFunc("GET /api/settings", s.handleSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	return s.withCORS(mux)
}
