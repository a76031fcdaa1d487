package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	intervalMinutes int
	metricsPath     string
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Batch ETL pipeline for tabular data",
	Long: `A batch data-processing pipeline that extracts tabular records from
CSV files, SQL databases, and APIs, cleans and enriches them, and persists
the result to multiple sinks while recording run metrics.

Transform stages (fixed order):
  1. Deduplicate      - drop exact duplicate rows, keep first occurrence
  2. Fill missing     - impute numeric columns, sentinel for text columns
  3. Remove outliers  - IQR fences on designated numeric columns
  4. Derive columns   - business buckets and processing timestamp`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "pipeline.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Run overrides
	rootCmd.PersistentFlags().IntVar(&intervalMinutes, "interval", 0,
		"Override schedule interval in minutes")
	rootCmd.PersistentFlags().StringVar(&metricsPath, "metrics-path", "",
		"Override metrics file path")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	IntervalMinutes int
	MetricsPath     string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		IntervalMinutes: intervalMinutes,
		MetricsPath:     metricsPath,
	}
}
