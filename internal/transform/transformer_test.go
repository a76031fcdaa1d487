package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

func TestNew_ValidatesOptions(t *testing.T) {
	_, err := New(Options{NumericFill: "average"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "average")

	_, err = New(Options{Rules: []Rule{
		suffixRule{in: "b", out: "a"},
		suffixRule{in: "a", out: "b"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "derivation rules")
}

func TestNew_StageOrder(t *testing.T) {
	tr, err := New(Options{})
	require.NoError(t, err)

	stages := tr.Stages()
	require.Len(t, stages, 4)
	assert.Equal(t, "deduplicate", stages[0].Name())
	assert.Equal(t, "fill_missing", stages[1].Name())
	assert.Equal(t, "remove_outliers", stages[2].Name())
	assert.Equal(t, "derive_columns", stages[3].Name())
}

func TestTransformer_Apply(t *testing.T) {
	ds, err := dataset.FromColumns([]string{"id", "name", "price"}, []dataset.Row{
		{"id": int64(1), "name": "a", "price": 10.0},
		{"id": int64(1), "name": "a", "price": 10.0},
		{"id": int64(2), "name": "b", "price": nil},
		{"id": int64(3), "name": "c", "price": 11.0},
		{"id": int64(4), "name": "d", "price": 12.0},
		{"id": int64(5), "name": "e", "price": 13.0},
		{"id": int64(6), "name": "f", "price": 1000.0},
	})
	require.NoError(t, err)

	tr, err := New(Options{OutlierColumns: []string{"price"}})
	require.NoError(t, err)

	out, reports, err := tr.Apply(ds)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	// One duplicate removed, the missing price filled with the mean, and the
	// extreme price dropped by the fences.
	assert.Equal(t, 6, reports[0].RowsOut)
	assert.Equal(t, 6, reports[1].RowsOut)
	assert.Equal(t, 5, reports[2].RowsOut)
	assert.Equal(t, 5, out.RowCount())

	assert.True(t, out.HasColumn("price_category"))
	assert.True(t, out.HasColumn("processed_at"))
	for _, row := range out.Rows() {
		assert.False(t, dataset.IsMissing(row["price"]))
		assert.False(t, dataset.IsMissing(row["price_category"]))
	}
}

func TestTransformer_ApplyEmptyDataset(t *testing.T) {
	ds, err := dataset.FromRows(nil)
	require.NoError(t, err)

	tr, err := New(Options{OutlierColumns: []string{"price"}})
	require.NoError(t, err)

	out, reports, err := tr.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, 0, out.RowCount())
	assert.Len(t, reports, 4)
}
