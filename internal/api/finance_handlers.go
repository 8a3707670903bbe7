package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/stats"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleFinancialRecords(w http.ResponseWriter, r *http.Request) {
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)

	if q := strings.ToLower(parseSearch(r)); q != "" {
		filtered := make([]model.FinancialRecord, 0, len(records))
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Category), q) ||
				strings.Contains(strings.ToLower(rec.Description), q) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"id":          rec.ID,
			"type":        rec.Type,
			"category":    rec.Category,
			"amount":      s.formatAmount(rec.Amount),
			"amountRaw":   rec.Amount,
			"date":        rec.Date,
			"description": rec.Description,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	period := stats.ParsePeriod(r.URL.Query().Get("period"))
	summary := stats.Summarize(records, period, time.Now())
	respondJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"summary": summary,
	})
}

func (s *Server) handleFinanceMonthly(w http.ResponseWriter, r *http.Request) {
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	respondJSON(w, http.StatusOK, map[string]any{"buckets": stats.MonthlyBuckets(records)})
}

type financeInput struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Amounts are stored non-negative; direction comes from the Income/Expense
// flag, never from the sign.
func (in *financeInput) validate() (string, bool) {
	in.Category = strings.TrimSpace(in.Category)
	if in.Type != model.FinanceIncome && in.Type != model.FinanceExpense {
		return "type must be Income or Expense", false
	}
	if in.Category == "" {
		return "category is required", false
	}
	if in.Amount < 0 {
		return "amount cannot be negative", false
	}
	if _, ok := model.ParseDate(in.Date); !ok {
		return "date must be an ISO date", false
	}
	return "", true
}

func (s *Server) handleCreateFinancialRecord(w http.ResponseWriter, r *http.Request) {
	var in financeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	rec := model.FinancialRecord{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	records = append(records, rec)
	s.store.Save(model.KeyFinancial, records)

	respondJSON(w, http.StatusCreated, map[string]any{"record": rec})
}

func (s *Server) handleUpdateFinancialRecord(w http.ResponseWriter, r *http.Request) {
	var in financeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	id := r.PathValue("id")
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records[i].Type = in.Type
		records[i].Category = in.Category
		records[i].Amount = in.Amount
		records[i].Date = in.Date
		records[i].Description = in.Description
		s.store.Save(model.KeyFinancial, records)
		respondJSON(w, http.StatusOK, map[string]any{"record": records[i]})
		return
	}
	respondError(w, http.StatusNotFound, "financial record not found")
}

func (s *Server) handleDeleteFinancialRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	records := store.Load[model.FinancialRecord](s.store, model.KeyFinancial)
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		s.store.Save(model.KeyFinancial, records)
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "financial record not found")
}
