package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleDataset(t *testing.T) {
	ds := SampleDataset(25)

	assert.Equal(t, 25, ds.RowCount())
	assert.Equal(t,
		[]string{"id", "product_name", "price", "category", "stock_quantity", "created_date"},
		ds.ColumnNames())

	// Deterministic across calls so the sample command is reproducible.
	assert.Equal(t, ds.Rows(), SampleDataset(25).Rows())
}

func TestSampleDataset_Empty(t *testing.T) {
	assert.Equal(t, 0, SampleDataset(0).RowCount())
}
