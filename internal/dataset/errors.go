package dataset

import (
	"fmt"
	"strings"
)

// SchemaError reports rows or datasets that disagree on their column set.
// It is fatal for the run: datasets with mismatched schemas cannot be merged
// or transformed.
type SchemaError struct {
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch: expected columns [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

// UnknownColumnError reports a projection on a column that does not exist.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}
