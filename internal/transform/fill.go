package transform

import (
	"fmt"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// Numeric fill policies. The choice of statistic is configurable per run;
// mean is the default.
const (
	FillMean   = "mean"
	FillMedian = "median"
	FillMode   = "mode"
	FillZero   = "zero"
)

// DefaultSentinel is the fill value for text columns without a configured
// sentinel.
const DefaultSentinel = "unknown"

// FillMissing replaces missing values per column:
//
//   - numeric columns use the configured statistic computed over the
//     column's non-missing values before any filling happened;
//   - text columns use the sentinel;
//   - other columns (bool, timestamp) use the most frequent non-missing
//     value.
//
// A numeric column with zero non-missing values is filled with 0 and flagged
// as degenerate in the report instead of failing the stage.
type FillMissing struct {
	// NumericPolicy is one of FillMean, FillMedian, FillMode, FillZero.
	NumericPolicy string

	// Sentinel is the fill value for text columns. Empty means
	// DefaultSentinel.
	Sentinel string
}

// Name implements Stage.
func (FillMissing) Name() string { return "fill_missing" }

// Apply implements Stage.
func (f FillMissing) Apply(ds *dataset.Dataset) (*dataset.Dataset, StageReport, error) {
	policy := f.NumericPolicy
	if policy == "" {
		policy = FillMean
	}
	sentinel := f.Sentinel
	if sentinel == "" {
		sentinel = DefaultSentinel
	}

	fillValues := make(map[string]interface{})
	var degenerate []string

	out := ds
	for _, col := range ds.ColumnNames() {
		values, err := ds.Column(col)
		if err != nil {
			return ds, StageReport{}, &StageError{Stage: f.Name(), Err: err}
		}

		missing := 0
		for _, v := range values {
			if dataset.IsMissing(v) {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		var fill interface{}
		switch {
		case missing == len(values) || dataset.IsNumericColumn(values):
			var ok bool
			fill, ok = numericFill(values, policy)
			if !ok {
				// Degenerate column: nothing to compute a statistic from.
				fill = float64(0)
				degenerate = append(degenerate, col)
			}
		case dataset.IsTextColumn(values):
			fill = sentinel
		default:
			fill = mostFrequent(values)
		}

		fillValues[col] = fill
		out = out.WithColumn(col, func(row dataset.Row) interface{} {
			if dataset.IsMissing(row[col]) {
				return fill
			}
			return row[col]
		})
	}

	report := newReport(f.Name(), ds.RowCount(), out.RowCount())
	report.Detail["fill_values"] = fillValues
	if len(degenerate) > 0 {
		report.Detail["degenerate_columns"] = degenerate
	}
	return out, report, nil
}

// numericFill computes the fill statistic over the non-missing values.
// Returns ok=false when no non-missing numeric values exist.
func numericFill(values []interface{}, policy string) (float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		if n, ok := dataset.AsFloat(v); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}

	switch policy {
	case FillMedian:
		return median(nums), true
	case FillMode:
		return mode(nums), true
	case FillZero:
		return 0, true
	default:
		return mean(nums), true
	}
}

// mostFrequent returns the most common non-missing value; ties break toward
// the value whose rendering sorts first so results are deterministic.
func mostFrequent(values []interface{}) interface{} {
	counts := make(map[string]int)
	byKey := make(map[string]interface{})
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		key := fmt.Sprintf("%T=%v", v, v)
		counts[key]++
		byKey[key] = v
	}

	bestKey := ""
	bestCount := 0
	for key, c := range counts {
		if c > bestCount || (c == bestCount && key < bestKey) {
			bestKey = key
			bestCount = c
		}
	}
	return byKey[bestKey]
}
