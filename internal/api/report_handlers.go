package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/report"
	"farmkeep/backend/internal/stats"
	"farmkeep/backend/internal/store"
)

// handleDownloadReport streams a category report as a CSV or PDF attachment.
// Both formats read one static snapshot of the collections; mutations made
// while the download is in flight are not reflected.
func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	now := time.Now()
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	rows := report.Rows(animals, category)

	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(category, "csv", now)))
		if err := report.WriteCSV(w, rows); err != nil {
			s.log.Warn("csv export aborted", zap.Error(err))
		}
	case "pdf":
		summary := stats.BuildCategoryReport(animals, category, now)
		pdf := report.BuildPDF(s.profile, category, summary, rows, now)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(category, "pdf", now)))
		if _, err := w.Write(pdf); err != nil {
			s.log.Warn("pdf export aborted", zap.Error(err))
		}
	default:
		respondError(w, http.StatusBadRequest, "format must be csv or pdf")
	}
}
