package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// CSVLoader writes the dataset to a CSV file with a header row, replacing
// any existing file.
type CSVLoader struct {
	name string
	path string
}

// NewCSVLoader creates a loader writing to the given file path.
func NewCSVLoader(name, path string) *CSVLoader {
	return &CSVLoader{name: name, path: path}
}

// Name implements Loader.
func (l *CSVLoader) Name() string { return l.name }

// Load implements Loader.
func (l *CSVLoader) Load(ctx context.Context, ds *dataset.Dataset) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	if err := ensureDir(l.path); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}

	f, err := os.Create(l.path)
	if err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := ds.ColumnNames()
	if err := w.Write(columns); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}

	for _, row := range ds.Rows() {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return 0, &TargetError{Target: l.name, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	return ds.RowCount(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// formatCell renders a scalar for CSV output; missing values become empty
// cells, mirroring how the CSV extractor reads them back.
func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
