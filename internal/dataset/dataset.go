// Package dataset provides the in-memory tabular data model shared by the
// extract, transform, and load stages. A Dataset is an ordered set of named
// columns with row-aligned scalar values; nil marks a missing value.
//
// Datasets are immutable once built: every operation returns a new Dataset
// and defensively copies rows at construction boundaries, so stages can hand
// datasets to each other without aliasing concerns.
package dataset

import (
	"fmt"
	"sort"
)

// Row maps a column name to a scalar value. Supported value types are
// float64, int64, int, string, bool, time.Time, and nil for missing.
type Row map[string]interface{}

// Dataset is an immutable, ordered collection of rows sharing one column set.
type Dataset struct {
	columns []string
	rows    []Row
}

// FromRows builds a Dataset from an ordered sequence of rows. Column order is
// taken from the first row (sorted for determinism, since Go maps carry no
// order) and every subsequent row must carry exactly the same column set.
func FromRows(rows []Row) (*Dataset, error) {
	if len(rows) == 0 {
		return &Dataset{}, nil
	}

	columns := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	return fromRowsWithColumns(columns, rows)
}

// FromColumns builds a Dataset with an explicit column order. Every row must
// carry exactly the given column set.
func FromColumns(columns []string, rows []Row) (*Dataset, error) {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return fromRowsWithColumns(cols, rows)
}

func fromRowsWithColumns(columns []string, rows []Row) (*Dataset, error) {
	copied := make([]Row, len(rows))
	for i, row := range rows {
		if err := checkSchema(columns, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		copied[i] = copyRow(row)
	}
	return &Dataset{columns: columns, rows: copied}, nil
}

// checkSchema verifies that a row carries exactly the expected column set.
func checkSchema(columns []string, row Row) error {
	if len(row) != len(columns) {
		return &SchemaError{Expected: columns, Got: rowColumns(row)}
	}
	for _, name := range columns {
		if _, ok := row[name]; !ok {
			return &SchemaError{Expected: columns, Got: rowColumns(row)}
		}
	}
	return nil
}

func rowColumns(row Row) []string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyRow(row Row) Row {
	c := make(Row, len(row))
	for k, v := range row {
		c[k] = v
	}
	return c
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// ColumnNames returns the column names in stable order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	copy(names, d.columns)
	return names
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of the named column in row order.
func (d *Dataset) Column(name string) ([]interface{}, error) {
	if !d.HasColumn(name) {
		return nil, &UnknownColumnError{Column: name}
	}
	values := make([]interface{}, len(d.rows))
	for i, row := range d.rows {
		values[i] = row[name]
	}
	return values, nil
}

// Row returns a copy of the row at index i.
func (d *Dataset) Row(i int) Row {
	return copyRow(d.rows[i])
}

// Rows returns copies of all rows in order.
func (d *Dataset) Rows() []Row {
	rows := make([]Row, len(d.rows))
	for i, row := range d.rows {
		rows[i] = copyRow(row)
	}
	return rows
}

// WithColumn returns a new Dataset with the named column set positionally
// from fn, which receives each existing row. An existing column is replaced
// in place; a new column is appended to the column order.
func (d *Dataset) WithColumn(name string, fn func(Row) interface{}) *Dataset {
	columns := d.columns
	if !d.HasColumn(name) {
		columns = append(d.ColumnNames(), name)
	}
	rows := make([]Row, len(d.rows))
	for i, row := range d.rows {
		next := copyRow(row)
		next[name] = fn(copyRow(row))
		rows[i] = next
	}
	return &Dataset{columns: columns, rows: rows}
}

// WithColumnValues returns a new Dataset with the named column set from a
// value slice that must match the row count.
func (d *Dataset) WithColumnValues(name string, values []interface{}) (*Dataset, error) {
	if len(values) != len(d.rows) {
		return nil, fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(d.rows))
	}
	i := -1
	return d.WithColumn(name, func(Row) interface{} {
		i++
		return values[i]
	}), nil
}

// FilterRows returns a new Dataset containing the rows for which the
// predicate holds, preserving relative order.
func (d *Dataset) FilterRows(pred func(Row) bool) *Dataset {
	rows := make([]Row, 0, len(d.rows))
	for _, row := range d.rows {
		if pred(copyRow(row)) {
			rows = append(rows, copyRow(row))
		}
	}
	return &Dataset{columns: d.columns, rows: rows}
}

// Concat appends the rows of other to d and returns the combined Dataset.
// Both datasets must share an identical column set; column order follows d.
func (d *Dataset) Concat(other *Dataset) (*Dataset, error) {
	if d.RowCount() == 0 {
		return &Dataset{columns: other.columns, rows: other.Rows()}, nil
	}
	if other.RowCount() == 0 {
		return &Dataset{columns: d.columns, rows: d.Rows()}, nil
	}
	if !sameColumnSet(d.columns, other.columns) {
		return nil, &SchemaError{Expected: d.ColumnNames(), Got: other.ColumnNames()}
	}
	rows := d.Rows()
	rows = append(rows, other.Rows()...)
	return &Dataset{columns: d.columns, rows: rows}, nil
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, name := range a {
		set[name] = struct{}{}
	}
	for _, name := range b {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}
