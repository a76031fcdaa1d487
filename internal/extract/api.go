package extract

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// apiSeed makes the mock API deterministic so repeated extractions (and
// tests) see identical data.
const apiSeed = 42

// APIExtractor is a mock API source generating product rows: id, name,
// price, category, created_at. It stands in for a real HTTP connector.
type APIExtractor struct {
	name string
	rows int
}

// NewAPIExtractor creates a mock API source producing n rows (default 100).
func NewAPIExtractor(name string, rows int) *APIExtractor {
	if rows <= 0 {
		rows = 100
	}
	return &APIExtractor{name: name, rows: rows}
}

// Name implements Extractor.
func (e *APIExtractor) Name() string { return e.name }

// Extract implements Extractor.
func (e *APIExtractor) Extract(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}

	rng := rand.New(rand.NewSource(apiSeed))
	categories := []string{"A", "B", "C"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]dataset.Row, e.rows)
	for i := 0; i < e.rows; i++ {
		rows[i] = dataset.Row{
			"id":         int64(i + 1),
			"name":       fmt.Sprintf("Product_%d", i+1),
			"price":      10 + rng.Float64()*990,
			"category":   categories[rng.Intn(len(categories))],
			"created_at": start.AddDate(0, 0, i),
		}
	}

	columns := []string{"id", "name", "price", "category", "created_at"}
	ds, err := dataset.FromColumns(columns, rows)
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}
	return ds, nil
}
