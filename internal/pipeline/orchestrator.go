// Package pipeline provides the orchestration state machine driving one
// extract -> transform -> load run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
	"github.com/galafis/Modern-ETL-Pipeline/internal/dataset"
	"github.com/galafis/Modern-ETL-Pipeline/internal/extract"
	"github.com/galafis/Modern-ETL-Pipeline/internal/load"
	"github.com/galafis/Modern-ETL-Pipeline/internal/logger"
	"github.com/galafis/Modern-ETL-Pipeline/internal/metrics"
	"github.com/galafis/Modern-ETL-Pipeline/internal/transform"
)

// Transformer supplies the transform stages in execution order. Satisfied by
// *transform.Transformer.
type Transformer interface {
	Stages() []transform.Stage
}

// Orchestrator drives the pipeline stages in order and classifies the
// terminal status. Errors inside a run are caught at the stage boundary they
// occur in and recorded; Run always returns a completed run record. Only
// construction can fail, on caller contract violations such as an empty
// source list.
type Orchestrator struct {
	extractors  []extract.Extractor
	loaders     []load.Loader
	transformer Transformer
	sink        metrics.Sink
	logger      *logger.Logger
	state       State
}

// New builds an orchestrator with all collaborators constructed from
// configuration.
func New(cfg *config.Config, sink metrics.Sink, log *logger.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	extractors := make([]extract.Extractor, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		ex, err := extract.FromConfig(src)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		extractors = append(extractors, ex)
	}

	loaders := make([]load.Loader, 0, len(cfg.Targets))
	for _, tgt := range cfg.Targets {
		ld, err := load.FromConfig(tgt)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", tgt.Name, err)
		}
		loaders = append(loaders, ld)
	}

	transformer, err := transform.New(transform.Options{
		OutlierColumns: cfg.Transform.OutlierColumns,
		NumericFill:    cfg.Transform.NumericFill,
		TextFill:       cfg.Transform.TextFill,
		NormalizeText:  cfg.Transform.NormalizeText,
	})
	if err != nil {
		return nil, fmt.Errorf("transform config: %w", err)
	}

	return NewWithCollaborators(extractors, loaders, transformer, sink, log)
}

// NewWithCollaborators builds an orchestrator from explicit collaborators.
// At least one extractor and one loader are required.
func NewWithCollaborators(extractors []extract.Extractor, loaders []load.Loader,
	transformer Transformer, sink metrics.Sink, log *logger.Logger) (*Orchestrator, error) {
	if len(extractors) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	if len(loaders) == 0 {
		return nil, fmt.Errorf("no targets configured")
	}
	if transformer == nil {
		return nil, fmt.Errorf("transformer is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Orchestrator{
		extractors:  extractors,
		loaders:     loaders,
		transformer: transformer,
		sink:        sink,
		logger:      log,
		state:       StateInit,
	}, nil
}

// State returns the orchestrator's current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes one complete pipeline run and returns its finalized record.
// The record's status classifies everything that went wrong inside the run;
// Run itself never propagates stage errors.
func (o *Orchestrator) Run(ctx context.Context) *metrics.Run {
	startedAt := time.Now().UTC()
	recorder := metrics.NewRecorder(startedAt)
	log := o.logger.WithRun(startedAt.UnixMilli())

	log.Infow("Starting pipeline run",
		"sources", len(o.extractors),
		"targets", len(o.loaders),
	)

	degraded := false

	// Extract from all sources; individual failures are tolerated while at
	// least one source yields data.
	o.state = StateExtracting
	combined, extractOK := o.extractAll(ctx, recorder, log)
	if !extractOK {
		return o.finish(recorder, log, metrics.StatusFailed)
	}
	if len(recorder.Snapshot().Errors) > 0 {
		degraded = true
	}
	recorder.SetRowCounts(combined.RowCount(), 0, 0)

	// Transform; a stage failure downgrades the run and the last good
	// dataset proceeds to load.
	o.state = StateTransforming
	final, transformOK := o.transformAll(recorder, log, combined)
	if !transformOK {
		degraded = true
	}
	recorder.SetRowCounts(combined.RowCount(), final.RowCount(), 0)

	// Load into every sink regardless of other sinks' failures.
	o.state = StateLoading
	loaded, failed := o.loadAll(ctx, recorder, log, final)
	if loaded == 0 {
		return o.finish(recorder, log, metrics.StatusFailed)
	}
	recorder.SetRowCounts(combined.RowCount(), final.RowCount(), final.RowCount())

	status := metrics.StatusSuccess
	if degraded || failed > 0 {
		status = metrics.StatusPartial
	}
	return o.finish(recorder, log, status)
}

// extractAll runs every extractor and concatenates the yielded datasets.
// Returns ok=false when no source produced data or the sources disagree on
// schema.
func (o *Orchestrator) extractAll(ctx context.Context, recorder *metrics.Recorder, log *logger.Logger) (*dataset.Dataset, bool) {
	var combined *dataset.Dataset
	succeeded := 0

	for _, ex := range o.extractors {
		ds, err := ex.Extract(ctx)
		if err != nil {
			log.WithSource(ex.Name()).Warnw("Extraction failed", "error", err)
			recorder.RecordSource(ex.Name(), 0, err)
			continue
		}
		log.WithSource(ex.Name()).Infow("Extracted dataset", "rows", ds.RowCount())
		recorder.RecordSource(ex.Name(), ds.RowCount(), nil)
		succeeded++

		if combined == nil {
			combined = ds
			continue
		}
		merged, err := combined.Concat(ds)
		if err != nil {
			// Schema disagreement across sources is fatal for the run.
			log.Errorw("Schema mismatch across sources", "source", ex.Name(), "error", err)
			recorder.RecordError(err)
			return nil, false
		}
		combined = merged
	}

	if succeeded == 0 {
		log.Errorw("All sources failed")
		recorder.SetRowCounts(0, 0, 0)
		return nil, false
	}
	return combined, true
}

// transformAll drives the transform stages in order, timing each. On a stage
// failure it records the error and returns the last good dataset.
func (o *Orchestrator) transformAll(recorder *metrics.Recorder, log *logger.Logger, ds *dataset.Dataset) (*dataset.Dataset, bool) {
	current := ds
	for _, stage := range o.transformer.Stages() {
		stageStart := time.Now()
		next, report, err := stage.Apply(current)
		elapsed := time.Since(stageStart)

		if err != nil {
			stageErr := &transform.StageError{Stage: stage.Name(), Err: err}
			log.WithStage(stage.Name()).Errorw("Transform stage failed - skipping remaining stages", "error", err)
			recorder.RecordError(stageErr)
			return current, false
		}

		recorder.RecordStage(stage.Name(), elapsed, report.RowsIn, report.RowsOut, report.Detail)
		log.WithStage(stage.Name()).Infow("Stage completed",
			"rows_in", report.RowsIn,
			"rows_out", report.RowsOut,
			"duration", elapsed,
		)
		current = next
	}
	return current, true
}

// loadAll invokes every loader and returns the success and failure counts.
func (o *Orchestrator) loadAll(ctx context.Context, recorder *metrics.Recorder, log *logger.Logger, ds *dataset.Dataset) (succeeded, failed int) {
	for _, ld := range o.loaders {
		rows, err := ld.Load(ctx, ds)
		if err != nil {
			log.WithTarget(ld.Name()).Warnw("Load failed", "error", err)
			recorder.RecordTarget(ld.Name(), rows, err)
			failed++
			continue
		}
		log.WithTarget(ld.Name()).Infow("Loaded dataset", "rows", rows)
		recorder.RecordTarget(ld.Name(), rows, nil)
		succeeded++
	}
	return succeeded, failed
}

// finish finalizes the run record, hands it to the metrics sink, and marks
// the state machine terminal.
func (o *Orchestrator) finish(recorder *metrics.Recorder, log *logger.Logger, status metrics.Status) *metrics.Run {
	run := recorder.Finalize(status, time.Now().UTC())
	o.state = StateDone

	log.Infow("Pipeline run completed",
		"status", run.Status,
		"duration", run.Duration,
		"rows_extracted", run.RowsExtracted,
		"rows_transformed", run.RowsTransformed,
		"rows_loaded", run.RowsLoaded,
	)

	if o.sink != nil {
		if err := o.sink.Persist(run); err != nil {
			log.Warnw("Failed to persist run metrics", "error", err)
		}
	}
	return run
}
