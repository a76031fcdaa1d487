package transform

import (
	"fmt"
	"strings"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Deduplicate removes rows that are exact duplicates across all columns,
// keeping the first occurrence in original order. It is idempotent.
type Deduplicate struct{}

// Name implements Stage.
func (Deduplicate) Name() string { return "deduplicate" }

// Apply implements Stage.
func (Deduplicate) Apply(ds *dataset.Dataset) (*dataset.Dataset, StageReport, error) {
	columns := ds.ColumnNames()
	seen := make(map[string]struct{}, ds.RowCount())

	out := ds.FilterRows(func(row dataset.Row) bool {
		key := rowKey(columns, row)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	report := newReport("deduplicate", ds.RowCount(), out.RowCount())
	report.Detail["duplicates_removed"] = ds.RowCount() - out.RowCount()
	return out, report, nil
}

// rowKey builds a stable identity key over every column. Each cell rendering
// is length-prefixed so values containing the separator cannot shift content
// across a column boundary; the key is injective over renderings.
func rowKey(columns []string, row dataset.Row) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		v := row[col]
		if dataset.IsMissing(v) {
			b.WriteByte('\x00')
			continue
		}
		cell := fmt.Sprintf("%T=%v", v, v)
		fmt.Fprintf(&b, "%d:%s", len(cell), cell)
	}
	return b.String()
}
