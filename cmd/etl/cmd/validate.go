package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate loads the configuration, applies CLI overrides, and checks it
for missing fields and invalid values without running the pipeline.

Example:
  etl validate --config pipeline.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.IntervalMinutes, overrides.MetricsPath)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(outputWriter, color.Red.Sprint("Configuration is invalid:"))
		fmt.Fprintln(outputWriter, err.Error())
		return fmt.Errorf("invalid configuration")
	}

	fmt.Fprintln(outputWriter, color.Green.Sprint("Configuration is valid"))
	fmt.Fprintf(outputWriter, "  sources: %d\n", len(cfg.Sources))
	fmt.Fprintf(outputWriter, "  targets: %d\n", len(cfg.Targets))
	fmt.Fprintf(outputWriter, "  outlier columns: %v\n", cfg.Transform.OutlierColumns)
	return nil
}
