// Package config provides configuration structures and loading for the ETL
// pipeline.
package config

// Config represents the complete application configuration.
type Config struct {
	Sources   []SourceConfig  `yaml:"sources" mapstructure:"sources"`
	Targets   []TargetConfig  `yaml:"targets" mapstructure:"targets"`
	Transform TransformConfig `yaml:"transform" mapstructure:"transform"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
	Schedule  ScheduleConfig  `yaml:"schedule" mapstructure:"schedule"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// Source and target kinds.
const (
	KindCSV      = "csv"
	KindJSON     = "json"
	KindDatabase = "database"
	KindAPI      = "api"
)

// SourceConfig describes one data source.
type SourceConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Kind string `yaml:"kind" mapstructure:"kind"` // csv, database, api

	// Path is the input file for csv sources.
	Path string `yaml:"path" mapstructure:"path"`

	// Driver and DSN identify the database for database sources
	// (mysql or sqlite).
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
	Query  string `yaml:"query" mapstructure:"query"`

	// Rows is the number of rows the mock api source generates.
	Rows int `yaml:"rows" mapstructure:"rows"`
}

// TargetConfig describes one data sink.
type TargetConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Kind string `yaml:"kind" mapstructure:"kind"` // csv, json, database

	// Path is the output file for csv and json targets.
	Path string `yaml:"path" mapstructure:"path"`

	// Driver, DSN and Table identify the destination for database targets.
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
	Table  string `yaml:"table" mapstructure:"table"`
}

// TransformConfig represents cleaning and enrichment settings.
type TransformConfig struct {
	OutlierColumns []string `yaml:"outlier_columns" mapstructure:"outlier_columns"`
	NumericFill    string   `yaml:"numeric_fill" mapstructure:"numeric_fill"` // mean, median, mode, zero
	TextFill       string   `yaml:"text_fill" mapstructure:"text_fill"`
	NormalizeText  bool     `yaml:"normalize_text" mapstructure:"normalize_text"`
}

// MetricsConfig represents run metrics persistence settings.
type MetricsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScheduleConfig represents the interval scheduler settings.
type ScheduleConfig struct {
	Enabled         bool `yaml:"enabled" mapstructure:"enabled"`
	IntervalMinutes int  `yaml:"interval_minutes" mapstructure:"interval_minutes"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values, mirroring the
// layout the sample command generates.
func DefaultConfig() *Config {
	return &Config{
		Sources: []SourceConfig{
			{Name: "products_csv", Kind: KindCSV, Path: "data/raw/input.csv"},
			{Name: "products_api", Kind: KindAPI, Rows: 100},
		},
		Targets: []TargetConfig{
			{Name: "warehouse", Kind: KindDatabase, Driver: "sqlite",
				DSN: "data/output/warehouse.db", Table: "processed_products"},
			{Name: "csv_out", Kind: KindCSV, Path: "data/output/processed_data.csv"},
			{Name: "json_out", Kind: KindJSON, Path: "data/output/processed_data.json"},
		},
		Transform: TransformConfig{
			OutlierColumns: []string{"price"},
			NumericFill:    "mean",
			TextFill:       "unknown",
			NormalizeText:  true,
		},
		Metrics: MetricsConfig{
			Path: "data/output/pipeline_metrics.json",
		},
		Schedule: ScheduleConfig{
			Enabled:         false,
			IntervalMinutes: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, intervalMinutes int, metricsPath string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if intervalMinutes > 0 {
		c.Schedule.IntervalMinutes = intervalMinutes
	}
	if metricsPath != "" {
		c.Metrics.Path = metricsPath
	}
}
