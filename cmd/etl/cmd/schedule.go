package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/galafis/Modern-ETL-Pipeline/internal/metrics"
	"github.com/galafis/Modern-ETL-Pipeline/internal/pipeline"
	"github.com/galafis/Modern-ETL-Pipeline/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline repeatedly on the configured interval",
	Long: `Schedule runs the pipeline immediately and then on every interval tick
until interrupted (SIGINT/SIGTERM). Overlapping runs are skipped.

The interval comes from schedule.interval_minutes in the configuration and
can be overridden with --interval.

Example:
  etl schedule --config pipeline.yaml --interval 60`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cfg.Schedule.Enabled && GetCLIOverrides().IntervalMinutes == 0 {
		return fmt.Errorf("scheduling is disabled in configuration (set schedule.enabled or pass --interval)")
	}

	sink := metrics.NewFileSink(cfg.Metrics.Path)
	orch, err := pipeline.New(cfg, sink, log)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	interval := time.Duration(cfg.Schedule.IntervalMinutes) * time.Minute
	sched, err := schedule.New(interval, func(ctx context.Context) {
		run := orch.Run(ctx)
		printRunSummary(outputWriter, run)
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
