package report

import (
	"encoding/csv"
	"io"
)

var csvHeader = []string{
	"Animal Name",
	"Animal Tag ID",
	"Record Type",
	"Date",
	"Event/Type",
	"Value/Description",
	"Notes/Treatment",
}

// WriteCSV emits the fixed header followed by one row per record. encoding/csv
// handles quoting: fields containing the delimiter or quotes are enclosed in
// double quotes with internal quotes doubled.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.AnimalName, r.AnimalTag, r.RecordType, r.Date, r.Event, r.Value, r.Notes}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
