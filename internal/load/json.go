package load

import (
	"context"
	"encoding/json"
	"os"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// JSONLoader writes the dataset to a JSON file as an array of row objects
// (records orientation), replacing any existing file.
type JSONLoader struct {
	name string
	path string
}

// NewJSONLoader creates a loader writing to the given file path.
func NewJSONLoader(name, path string) *JSONLoader {
	return &JSONLoader{name: name, path: path}
}

// Name implements Loader.
func (l *JSONLoader) Name() string { return l.name }

// Load implements Loader.
func (l *JSONLoader) Load(ctx context.Context, ds *dataset.Dataset) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	if err := ensureDir(l.path); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}

	data, err := json.MarshalIndent(ds.Rows(), "", "  ")
	if err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	return ds.RowCount(), nil
}
