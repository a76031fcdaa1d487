package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/extract"
	"github.com/galafis/Modern-ETL-Pipeline/internal/load"
)

var sampleRows int

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate demonstration source data",
	Long: `Sample writes a deterministic demonstration dataset to the default
source locations: a CSV file at data/raw/input.csv and a sqlite products
table at data/source.db. Useful for trying the pipeline end to end without
real sources.

Example:
  etl sample --rows 200`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 200,
		"Number of sample rows to generate")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	ds := extract.SampleDataset(sampleRows)
	ctx := context.Background()

	csvLoader := load.NewCSVLoader("sample_csv", "data/raw/input.csv")
	if _, err := csvLoader.Load(ctx, ds); err != nil {
		return fmt.Errorf("failed to write sample CSV: %w", err)
	}

	dbLoader := load.NewDatabaseLoader(config.TargetConfig{
		Name:   "sample_db",
		Kind:   config.KindDatabase,
		Driver: "sqlite",
		DSN:    "data/source.db",
		Table:  "products",
	})
	if _, err := dbLoader.Load(ctx, ds); err != nil {
		return fmt.Errorf("failed to write sample database: %w", err)
	}

	fmt.Fprintf(outputWriter, "Wrote %d sample rows to data/raw/input.csv and data/source.db\n", ds.RowCount())
	return nil
}
