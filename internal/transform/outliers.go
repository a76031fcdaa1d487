package transform

import (
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// RemoveOutliers drops rows whose value in any designated numeric column
// falls outside the Tukey fences [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Quartiles use
// linear rank interpolation (see quantile). A column with IQR == 0 excludes
// nothing; designated columns that are absent or non-numeric are skipped and
// noted in the report rather than failing the stage.
type RemoveOutliers struct {
	// Columns are the numeric columns to check. A row survives only if it is
	// within bounds on every checked column.
	Columns []string
}

// Name implements Stage.
func (RemoveOutliers) Name() string { return "remove_outliers" }

type fence struct {
	lower float64
	upper float64
}

// Apply implements Stage.
func (r RemoveOutliers) Apply(ds *dataset.Dataset) (*dataset.Dataset, StageReport, error) {
	fences := make(map[string]fence, len(r.Columns))
	bounds := make(map[string][]float64, len(r.Columns))
	var skipped []string

	for _, col := range r.Columns {
		if !ds.HasColumn(col) {
			skipped = append(skipped, col)
			continue
		}
		values, err := ds.Column(col)
		if err != nil {
			return ds, StageReport{}, &StageError{Stage: r.Name(), Err: err}
		}
		if !dataset.IsNumericColumn(values) {
			skipped = append(skipped, col)
			continue
		}

		nums := make([]float64, 0, len(values))
		for _, v := range values {
			if n, ok := dataset.AsFloat(v); ok {
				nums = append(nums, n)
			}
		}

		q1 := quantile(nums, 0.25)
		q3 := quantile(nums, 0.75)
		iqr := q3 - q1
		if iqr == 0 {
			// Constant column: no basis for exclusion.
			continue
		}
		f := fence{lower: q1 - 1.5*iqr, upper: q3 + 1.5*iqr}
		fences[col] = f
		bounds[col] = []float64{f.lower, f.upper}
	}

	out := ds.FilterRows(func(row dataset.Row) bool {
		for col, f := range fences {
			v, ok := dataset.AsFloat(row[col])
			if !ok {
				// Missing or non-numeric cell cannot flag the row.
				continue
			}
			if v < f.lower || v > f.upper {
				return false
			}
		}
		return true
	})

	report := newReport(r.Name(), ds.RowCount(), out.RowCount())
	report.Detail["outliers_removed"] = ds.RowCount() - out.RowCount()
	report.Detail["bounds"] = bounds
	if len(skipped) > 0 {
		report.Detail["skipped_columns"] = skipped
	}
	return out, report, nil
}
