// Package extract provides the data source implementations feeding the
// pipeline: CSV files, SQL databases, and a deterministic mock API.
package extract

import (
	"context"
	"fmt"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Extractor yields one raw dataset from a configured source. Failures are
// reported as SourceError and tolerated by the orchestrator as long as at
// least one source succeeds.
type Extractor interface {
	Name() string
	Extract(ctx context.Context) (*dataset.Dataset, error)
}

// SourceError wraps a failure of a single source (I/O, parse, connectivity).
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// FromConfig builds the extractor for one source configuration.
func FromConfig(src config.SourceConfig) (Extractor, error) {
	switch src.Kind {
	case config.KindCSV:
		return NewCSVExtractor(src.Name, src.Path), nil
	case config.KindDatabase:
		return NewDatabaseExtractor(src), nil
	case config.KindAPI:
		return NewAPIExtractor(src.Name, src.Rows), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}
