// Package csvexport renders batch results as CSV for spreadsheet review.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"flipgrid/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (13 columns).
var columns = []string{
	"Input",
	"Status",
	"Category",
	"Brand",
	"MRP",
	"Manufacturing Date",
	"Expiry Date",
	"Produce",
	"Freshness Score",
	"Expected Life Span (Days)",
	"Confidence",
	"Committed",
	"Timestamp",
}

// Writer wraps csv.Writer for exporting pipeline results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of pipeline results to CSV rows and writes
// them.
func (w *Writer) WriteResults(results []domain.PipelineResult) error {
	for i := range results {
		if err := w.csv.Write(resultToRow(&results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// resultToRow converts a single result to a 13-element string slice. Error
// results fill only the input and status columns; the record columns depend
// on which record shape the run produced.
func resultToRow(res *domain.PipelineResult) []string {
	row := make([]string, len(columns))

	row[0] = res.InputID
	row[1] = string(res.Status)
	row[11] = formatBool(res.Committed)

	if res.Classification != nil {
		row[10] = strconv.FormatFloat(res.Classification.Confidence, 'f', 2, 64)
	}

	if res.Record == nil {
		return row
	}
	row[2] = string(res.Record.Category)

	switch res.Record.Category {
	case domain.CategoryPackaged:
		p := res.Record.Packaged
		row[3] = p.Brand
		row[4] = deref(p.MRP)
		row[5] = deref(p.ManufacturingDate)
		row[6] = deref(p.ExpiryDate)
		row[9] = strconv.Itoa(p.ExpectedLifeSpanDays)
		row[12] = formatTime(p.Timestamp)
	case domain.CategoryFreshProduce:
		f := res.Record.Fresh
		row[7] = f.Produce
		row[8] = strconv.Itoa(f.FreshnessScore)
		row[9] = strconv.Itoa(f.ExpectedLifeSpanDays)
		row[12] = formatTime(f.Timestamp)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
