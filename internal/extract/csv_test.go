package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVExtractor_TypedValues(t *testing.T) {
	path := writeCSV(t, "id,name,price,active,created\n"+
		"1,widget,9.99,true,2024-03-01\n"+
		"2,gadget,,false,2024-03-02 10:30:00\n")

	ex := NewCSVExtractor("products", path)
	ds, err := ex.Extract(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "price", "active", "created"}, ds.ColumnNames())
	require.Equal(t, 2, ds.RowCount())

	first := ds.Row(0)
	assert.Equal(t, int64(1), first["id"])
	assert.Equal(t, "widget", first["name"])
	assert.Equal(t, 9.99, first["price"])
	assert.Equal(t, true, first["active"])
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), first["created"])

	second := ds.Row(1)
	assert.Nil(t, second["price"])
	assert.Equal(t, time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC), second["created"])
}

func TestCSVExtractor_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "id,name\n")

	ds, err := NewCSVExtractor("empty", path).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RowCount())
	assert.Equal(t, []string{"id", "name"}, ds.ColumnNames())
}

func TestCSVExtractor_MissingFile(t *testing.T) {
	ex := NewCSVExtractor("nope", filepath.Join(t.TempDir(), "absent.csv"))

	_, err := ex.Extract(context.Background())
	require.Error(t, err)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "nope", srcErr.Source)
}

func TestCSVExtractor_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := NewCSVExtractor("empty", path).Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")
}

func TestCSVExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVExtractor("src", "anywhere.csv").Extract(ctx)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInferValue(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want interface{}
	}{
		{"empty is missing", "", nil},
		{"integer", "42", int64(42)},
		{"negative integer", "-7", int64(-7)},
		{"float", "3.14", 3.14},
		{"bool", "true", true},
		{"date", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"text", "hello world", "hello world"},
		{"numeric-ish text", "v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferValue(tt.cell))
		})
	}
}
