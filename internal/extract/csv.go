package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// CSVExtractor reads a CSV file with a header row into a dataset. Cell
// values are inferred in order: empty → missing, integer, float, bool,
// RFC 3339 or date-only timestamp, otherwise string.
type CSVExtractor struct {
	name string
	path string
}

// NewCSVExtractor creates an extractor for the given file path.
func NewCSVExtractor(name, path string) *CSVExtractor {
	return &CSVExtractor{name: name, path: path}
}

// Name implements Extractor.
func (e *CSVExtractor) Name() string { return e.name }

// Extract implements Extractor.
func (e *CSVExtractor) Extract(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}

	f, err := os.Open(e.path)
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: fmt.Errorf("parse %s: %w", e.path, err)}
	}
	if len(records) == 0 {
		return nil, &SourceError{Source: e.name, Err: fmt.Errorf("%s: missing header row", e.path)}
	}

	header := records[0]
	rows := make([]dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataset.Row, len(header))
		for i, col := range header {
			row[col] = inferValue(record[i])
		}
		rows = append(rows, row)
	}

	ds, err := dataset.FromColumns(header, rows)
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}
	return ds, nil
}

// timeLayouts are tried in order when inferring timestamp cells.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// inferValue converts a CSV cell into a typed scalar.
func inferValue(cell string) interface{} {
	if cell == "" {
		return nil
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(cell); err == nil {
		return b
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	return cell
}
