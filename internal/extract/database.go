package extract

import (
	"context"
	"database/sql"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/database"
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// DatabaseExtractor runs a query against a SQL database and converts the
// result set into a dataset. NULL values become the missing marker.
type DatabaseExtractor struct {
	name  string
	cfg   config.SourceConfig
	query string
	db    *sql.DB // injected in tests; opened per extract otherwise
}

// NewDatabaseExtractor creates an extractor that opens its own connection on
// each Extract call.
func NewDatabaseExtractor(cfg config.SourceConfig) *DatabaseExtractor {
	return &DatabaseExtractor{name: cfg.Name, cfg: cfg, query: cfg.Query}
}

// NewDatabaseExtractorWithDB creates an extractor bound to an existing
// connection, used by tests.
func NewDatabaseExtractorWithDB(name, query string, db *sql.DB) *DatabaseExtractor {
	return &DatabaseExtractor{name: name, query: query, db: db}
}

// Name implements Extractor.
func (e *DatabaseExtractor) Name() string { return e.name }

// Extract implements Extractor.
func (e *DatabaseExtractor) Extract(ctx context.Context) (*dataset.Dataset, error) {
	db := e.db
	if db == nil {
		opened, err := database.Open(ctx, e.cfg)
		if err != nil {
			return nil, &SourceError{Source: e.name, Err: err}
		}
		defer opened.Close()
		db = opened
	}

	rows, err := db.QueryContext(ctx, e.query)
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}

	var out []dataset.Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &SourceError{Source: e.name, Err: err}
		}

		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeSQLValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}

	ds, err := dataset.FromColumns(columns, out)
	if err != nil {
		return nil, &SourceError{Source: e.name, Err: err}
	}
	return ds, nil
}

// normalizeSQLValue maps driver values onto the dataset's scalar types.
// Drivers return []byte for text-ish columns; NULL stays the missing marker.
func normalizeSQLValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case time.Time:
		return t
	default:
		return v
	}
}
