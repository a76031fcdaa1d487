package extract

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
)

// SampleDataset builds n demonstration product rows for seeding the sample
// sources: id, product_name, price, category, stock_quantity, created_date.
// Deterministic for a given n.
func SampleDataset(n int) *dataset.Dataset {
	rng := rand.New(rand.NewSource(apiSeed))
	categories := []string{"Electronics", "Clothing", "Books", "Home"}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]dataset.Row, n)
	for i := 0; i < n; i++ {
		rows[i] = dataset.Row{
			"id":             int64(i + 1),
			"product_name":   fmt.Sprintf("Product_%d", i+1),
			"price":          5 + rng.Float64()*495,
			"category":       categories[rng.Intn(len(categories))],
			"stock_quantity": int64(rng.Intn(100)),
			"created_date":   start.AddDate(0, 0, i),
		}
	}

	columns := []string{"id", "product_name", "price", "category", "stock_quantity", "created_date"}
	ds, _ := dataset.FromColumns(columns, rows)
	return ds
}
