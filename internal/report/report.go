// Package report renders a livestock category's health and production
// records into downloadable documents (CSV and PDF). Exporters read a static
// snapshot of the collections at invocation time.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"farmkeep/backend/internal/model"
)

// Record type labels used in both output formats.
const (
	TypeHealth     = "Health"
	TypeProduction = "Production"
)

// Profile is the farm identity printed in the PDF page header.
type Profile struct {
	FarmName string
	Manager  string
	Location string
}

// Row is one exported record, tagged with its owning animal.
type Row struct {
	AnimalName string
	AnimalTag  string
	RecordType string
	Date       string
	Event      string
	Value      string
	Notes      string
}

// Rows flattens a category's health and production records. Per animal the
// health rows come first, then the production rows, in animal iteration
// order; there is no global date sort in this view.
func Rows(animals []model.Animal, category string) []Row {
	out := make([]Row, 0)
	for _, a := range model.AnimalsInCategory(animals, category) {
		for _, h := range a.HealthRecords {
			out = append(out, Row{
				AnimalName: a.Name,
				AnimalTag:  a.TagID,
				RecordType: TypeHealth,
				Date:       h.Date,
				Event:      h.Event,
				Value:      h.Description,
				Notes:      h.Treatment,
			})
		}
		for _, p := range a.ProductionMetrics {
			out = append(out, Row{
				AnimalName: a.Name,
				AnimalTag:  a.TagID,
				RecordType: TypeProduction,
				Date:       p.Date,
				Event:      p.Type,
				Value:      p.Value,
				Notes:      p.Notes,
			})
		}
	}
	return out
}

// rowsByDateDesc orders rows newest first for the PDF detail table.
// Unparseable dates sink to the end; ties keep input order.
func rowsByDateDesc(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := model.ParseDate(out[i].Date)
		tj, jok := model.ParseDate(out[j].Date)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return out
}

// Filename builds the export name, e.g. cattle_report_2024-06-01.csv.
func Filename(category, ext string, now time.Time) string {
	base := strings.ToLower(strings.TrimSpace(category))
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "livestock"
	}
	return fmt.Sprintf("%s_report_%s.%s", base, now.Format("2006-01-02"), ext)
}
