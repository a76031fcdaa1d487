// Package transform implements the cleaning and enrichment stages applied to
// a dataset between extraction and loading. The four stages run in a fixed
// order: deduplicate, fill missing values, remove outliers, derive columns.
// Later stages assume earlier cleanup has run.
//
// Every stage is a pure function from one dataset to a new dataset plus a
// StageReport; stages never mutate their input and are independently
// invocable for testing.
package transform

// StageReport describes what a single transform stage did to the dataset.
type StageReport struct {
	Stage   string
	RowsIn  int
	RowsOut int
	Detail  map[string]interface{}
}

func newReport(stage string, rowsIn, rowsOut int) StageReport {
	return StageReport{
		Stage:   stage,
		RowsIn:  rowsIn,
		RowsOut: rowsOut,
		Detail:  make(map[string]interface{}),
	}
}
