package load

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

func newLoaderMock(t *testing.T) (*DatabaseLoader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDatabaseLoaderWithDB("warehouse", "sqlite", "products", db), mock
}

func twoProducts(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromColumns([]string{"id", "name"}, []dataset.Row{
		{"id": int64(1), "name": "a"},
		{"id": int64(2), "name": "b"},
	})
	require.NoError(t, err)
	return ds
}

func TestDatabaseLoader_ReplacesTable(t *testing.T) {
	loader, mock := newLoaderMock(t)

	mock.ExpectExec(`DROP TABLE IF EXISTS "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE "products" ("id" INTEGER, "name" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "products" ("id", "name") VALUES (?, ?), (?, ?)`).
		WithArgs(int64(1), "a", int64(2), "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows, err := loader.Load(context.Background(), twoProducts(t))
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseLoader_CountMismatch(t *testing.T) {
	loader, mock := newLoaderMock(t)

	mock.ExpectExec(`DROP TABLE IF EXISTS "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE "products" ("id" INTEGER, "name" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "products" ("id", "name") VALUES (?, ?), (?, ?)`).
		WithArgs(int64(1), "a", int64(2), "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := loader.Load(context.Background(), twoProducts(t))
	require.Error(t, err)

	var tgtErr *TargetError
	require.ErrorAs(t, err, &tgtErr)
	assert.Contains(t, err.Error(), "wrote 2 rows, table holds 1")
}

func TestDatabaseLoader_RejectsUnsafeTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	loader := NewDatabaseLoaderWithDB("warehouse", "sqlite", "products; DROP TABLE users", db)
	_, err = loader.Load(context.Background(), twoProducts(t))

	var tgtErr *TargetError
	require.ErrorAs(t, err, &tgtErr)
	assert.Contains(t, err.Error(), "invalid identifier")
}

func TestDatabaseLoader_EmptyRunStillCreatesTable(t *testing.T) {
	loader, mock := newLoaderMock(t)

	ds, err := dataset.FromColumns([]string{"id", "name"}, nil)
	require.NoError(t, err)

	mock.ExpectExec(`DROP TABLE IF EXISTS "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE "products" ("id" TEXT, "name" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rows, err := loader.Load(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseLoader_RejectsColumnlessDataset(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds, err := dataset.FromRows(nil)
	require.NoError(t, err)

	loader := NewDatabaseLoaderWithDB("warehouse", "sqlite", "products", db)
	_, err = loader.Load(context.Background(), ds)

	var tgtErr *TargetError
	require.ErrorAs(t, err, &tgtErr)
	assert.Contains(t, err.Error(), "no columns")
}

func TestDatabaseLoader_SQLTypeInference(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		driver string
		values []interface{}
		want   string
	}{
		{"integers", "sqlite", []interface{}{int64(1), nil, int64(2)}, "INTEGER"},
		{"bools", "sqlite", []interface{}{true, false}, "BOOLEAN"},
		{"floats sqlite", "sqlite", []interface{}{1.5, int64(2)}, "REAL"},
		{"floats mysql", "mysql", []interface{}{1.5}, "DOUBLE"},
		{"times sqlite", "sqlite", []interface{}{now}, "TIMESTAMP"},
		{"times mysql", "mysql", []interface{}{now}, "DATETIME"},
		{"strings", "sqlite", []interface{}{"a"}, "TEXT"},
		{"mixed", "sqlite", []interface{}{"a", int64(1)}, "TEXT"},
		{"all missing", "sqlite", []interface{}{nil, nil}, "TEXT"},
		{"no rows", "sqlite", nil, "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &DatabaseLoader{driver: tt.driver}
			assert.Equal(t, tt.want, l.sqlType(tt.values))
		})
	}
}
