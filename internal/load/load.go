// Package load provides the sink implementations persisting the final
// dataset: CSV files, JSON files, and SQL tables. Sinks are independent;
// one sink failing never aborts the others.
package load

import (
	"context"
	"fmt"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Loader persists a dataset to one sink and reports the rows written.
type Loader interface {
	Name() string
	Load(ctx context.Context, ds *dataset.Dataset) (int, error)
}

// TargetError wraps a failure of a single sink. The orchestrator records it
// and continues with the remaining sinks.
type TargetError struct {
	Target string
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %q: %v", e.Target, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// FromConfig builds the loader for one target configuration.
func FromConfig(tgt config.TargetConfig) (Loader, error) {
	switch tgt.Kind {
	case config.KindCSV:
		return NewCSVLoader(tgt.Name, tgt.Path), nil
	case config.KindJSON:
		return NewJSONLoader(tgt.Name, tgt.Path), nil
	case config.KindDatabase:
		return NewDatabaseLoader(tgt), nil
	default:
		return nil, fmt.Errorf("unknown target kind %q", tgt.Kind)
	}
}
