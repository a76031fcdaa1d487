package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/database"
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
	"github.com/galafis/Modern-ETL-Pipeline/internal/sqlutil"
)

// insertBatchSize limits the number of rows per INSERT statement.
const insertBatchSize = 500

// DatabaseLoader replaces a SQL table with the dataset: drop, create with
// inferred column types, batched inserts, then a row-count check so a silent
// short write surfaces as a load failure.
type DatabaseLoader struct {
	name   string
	cfg    config.TargetConfig
	driver string
	table  string
	db     *sql.DB // injected in tests; opened per load otherwise
}

// NewDatabaseLoader creates a loader that opens its own connection on each
// Load call.
func NewDatabaseLoader(cfg config.TargetConfig) *DatabaseLoader {
	return &DatabaseLoader{name: cfg.Name, cfg: cfg, driver: cfg.Driver, table: cfg.Table}
}

// NewDatabaseLoaderWithDB creates a loader bound to an existing connection,
// used by tests.
func NewDatabaseLoaderWithDB(name, driver, table string, db *sql.DB) *DatabaseLoader {
	return &DatabaseLoader{name: name, driver: driver, table: table, db: db}
}

// Name implements Loader.
func (l *DatabaseLoader) Name() string { return l.name }

// Load implements Loader.
func (l *DatabaseLoader) Load(ctx context.Context, ds *dataset.Dataset) (int, error) {
	db := l.db
	if db == nil {
		opened, err := database.OpenTarget(ctx, l.cfg)
		if err != nil {
			return 0, &TargetError{Target: l.name, Err: err}
		}
		defer opened.Close()
		db = opened
	}

	table, err := sqlutil.QuoteIdentifierSafe(l.driver, l.table)
	if err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	columns := ds.ColumnNames()
	if len(columns) == 0 {
		return 0, &TargetError{Target: l.name, Err: fmt.Errorf("dataset has no columns")}
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i], err = sqlutil.QuoteIdentifierSafe(l.driver, col)
		if err != nil {
			return 0, &TargetError{Target: l.name, Err: err}
		}
	}

	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	if _, err := db.ExecContext(ctx, l.createStatement(table, columns, quoted, ds)); err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}

	rows := ds.Rows()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := l.insertBatch(ctx, db, table, columns, quoted, rows[start:end]); err != nil {
			return 0, &TargetError{Target: l.name, Err: err}
		}
	}

	written, err := l.countRows(ctx, db, table)
	if err != nil {
		return 0, &TargetError{Target: l.name, Err: err}
	}
	if written != ds.RowCount() {
		return written, &TargetError{
			Target: l.name,
			Err:    fmt.Errorf("wrote %d rows, table holds %d", ds.RowCount(), written),
		}
	}
	return written, nil
}

// createStatement builds CREATE TABLE with column types inferred from the
// dataset values.
func (l *DatabaseLoader) createStatement(table string, columns, quoted []string, ds *dataset.Dataset) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		values, _ := ds.Column(col)
		defs[i] = quoted[i] + " " + l.sqlType(values)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

// sqlType infers a column type from the values it will hold.
func (l *DatabaseLoader) sqlType(values []interface{}) string {
	allInt := true
	allBool := true
	allTime := true
	numeric := true
	seen := false
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		seen = true
		if _, ok := v.(int64); !ok {
			allInt = false
		}
		if _, ok := v.(bool); !ok {
			allBool = false
		}
		if !dataset.IsTime(v) {
			allTime = false
		}
		if _, ok := dataset.AsFloat(v); !ok {
			numeric = false
		}
	}
	if !seen {
		// No value to infer from; TEXT accepts anything a later write sends.
		return "TEXT"
	}

	switch {
	case allBool:
		return "BOOLEAN"
	case allInt:
		return "INTEGER"
	case allTime:
		if l.driver == "mysql" {
			return "DATETIME"
		}
		return "TIMESTAMP"
	case numeric:
		if l.driver == "mysql" {
			return "DOUBLE"
		}
		return "REAL"
	default:
		return "TEXT"
	}
}

func (l *DatabaseLoader) insertBatch(ctx context.Context, db *sql.DB, table string, columns, quoted []string, rows []dataset.Row) error {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	placeholders := make([]string, len(rows))
	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, row := range rows {
		placeholders[i] = placeholder
		for _, col := range columns {
			args = append(args, row[col])
		}
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	_, err := db.ExecContext(ctx, stmt, args...)
	return err
}

func (l *DatabaseLoader) countRows(ctx context.Context, db *sql.DB, table string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}
