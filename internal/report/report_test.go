package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/stats"
)

var testNow = time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

func sampleAnimals() []model.Animal {
	return []model.Animal{
		{
			ID: "a1", Name: "Bessie", TagID: "C-001", Category: "Cattle",
			HealthRecords: []model.HealthRecord{
				{ID: "h1", Date: "2026-08-20", Event: "Vaccination", Description: "FMD booster", Treatment: "2ml IM"},
			},
			ProductionMetrics: []model.ProductionMetric{
				{ID: "p1", Date: "2026-08-25", Type: model.MetricMilk, Value: "18", Notes: "morning"},
			},
		},
		{
			ID: "a2", Name: "Daisy", TagID: "C-002", Category: "cattle",
			HealthRecords: []model.HealthRecord{
				{ID: "h2", Date: "2026-07-01", Event: "Checkup", Description: "routine"},
			},
		},
		{ID: "a3", Name: "Hen house", TagID: "P-001", Category: "Poultry"},
	}
}

func TestRowsOrderingPerAnimal(t *testing.T) {
	rows := Rows(sampleAnimals(), "Cattle")
	require.Len(t, rows, 3)

	// Per animal: health rows first, then production, in stored animal order.
	assert.Equal(t, Row{"Bessie", "C-001", TypeHealth, "2026-08-20", "Vaccination", "FMD booster", "2ml IM"}, rows[0])
	assert.Equal(t, Row{"Bessie", "C-001", TypeProduction, "2026-08-25", model.MetricMilk, "18", "morning"}, rows[1])
	assert.Equal(t, "Daisy", rows[2].AnimalName)
}

func TestRowsEmptyCategory(t *testing.T) {
	rows := Rows(sampleAnimals(), "Goats")
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRowsByDateDesc(t *testing.T) {
	in := []Row{
		{AnimalName: "a", Date: "2026-01-01"},
		{AnimalName: "b", Date: "unknown"},
		{AnimalName: "c", Date: "2026-08-01"},
		{AnimalName: "d", Date: "2026-08-01"},
	}
	got := rowsByDateDesc(in)
	assert.Equal(t, "c", got[0].AnimalName)
	assert.Equal(t, "d", got[1].AnimalName) // tie keeps input order
	assert.Equal(t, "a", got[2].AnimalName)
	assert.Equal(t, "b", got[3].AnimalName) // unparseable sinks

	// input untouched
	assert.Equal(t, "a", in[0].AnimalName)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "cattle_report_2026-08-31.csv", Filename("Cattle", "csv", testNow))
	assert.Equal(t, "dairy-goats_report_2026-08-31.pdf", Filename("Dairy Goats", "pdf", testNow))
	assert.Equal(t, "livestock_report_2026-08-31.csv", Filename("!!!", "csv", testNow))
	assert.Equal(t, "livestock_report_2026-08-31.csv", Filename("", "csv", testNow))
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{AnimalName: "Bessie", AnimalTag: "C-001", RecordType: TypeHealth, Date: "2026-08-20", Event: "Vaccination", Value: `He said "ok"`, Notes: "a, b"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Animal Name,Animal Tag ID,Record Type,Date,Event/Type,Value/Description,Notes/Treatment", lines[0])
	assert.Equal(t, `Bessie,C-001,Health,2026-08-20,Vaccination,"He said ""ok""","a, b"`, lines[1])
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestBuildPDFEmptyCategory(t *testing.T) {
	profile := Profile{FarmName: "Green Acres", Manager: "J. Mwangi", Location: "Nakuru"}
	out := BuildPDF(profile, "Goats", stats.CategoryReport{}, nil, testNow)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(doc, "%%EOF"))
	assert.Contains(t, doc, "Goats Report")
	assert.Contains(t, doc, "Green Acres")
	assert.Contains(t, doc, "No records for this category.")
	assert.Contains(t, doc, "Page 1 of 2")
	assert.Contains(t, doc, "Page 2 of 2")
}

func TestBuildPDFPaginatesLongTables(t *testing.T) {
	rows := make([]Row, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, Row{
			AnimalName: fmt.Sprintf("Animal %03d", i),
			RecordType: TypeProduction,
			Date:       "2026-08-01",
			Event:      model.MetricEggs,
			Value:      "12",
		})
	}
	out := string(BuildPDF(Profile{FarmName: "Green Acres"}, "Poultry", stats.CategoryReport{}, rows, testNow))

	assert.Contains(t, out, "Page 1 of 5")
	assert.Contains(t, out, "Page 5 of 5")
	// Every detail page repeats the column header row.
	assert.Equal(t, 4, strings.Count(out, "Details/Value"))
}

func TestBuildPDFEscapesParentheses(t *testing.T) {
	rows := []Row{{AnimalName: "Bessie (old)", RecordType: TypeHealth, Date: "2026-08-01", Event: "Checkup", Value: "fine"}}
	out := string(BuildPDF(Profile{}, "Cattle", stats.CategoryReport{}, rows, testNow))
	assert.Contains(t, out, `Bessie \(old\)`)
	assert.NotContains(t, out, "(Bessie (old))")
}
