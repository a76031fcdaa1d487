package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/logger"
	"github.com/galafis/Modern-ETL-Pipeline/internal/metrics"
	"github.com/galafis/Modern-ETL-Pipeline/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the pipeline once",
	Long: `Run executes one complete extract -> transform -> load pass over all
configured sources and targets, then prints a run summary.

The run always completes with a terminal status:
  success - every source, stage, and target completed cleanly
  partial - some sources or targets failed, or a transform stage was skipped
  failed  - no source yielded data, or every target failed

Example:
  etl run --config pipeline.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sink := metrics.NewFileSink(cfg.Metrics.Path)
	orch, err := pipeline.New(cfg, sink, log)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	run := orch.Run(ctx)
	printRunSummary(outputWriter, run)

	if run.Status == metrics.StatusFailed {
		return fmt.Errorf("pipeline run %d failed", run.ID)
	}
	return nil
}

// loadConfigAndLogger is the shared setup for run/schedule: load config,
// validate, apply CLI overrides, build the logger.
func loadConfigAndLogger() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.IntervalMinutes, overrides.MetricsPath)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
