// Package metrics accumulates per-stage counters and timings for a pipeline
// run into a structured record. The recorder itself performs no I/O;
// persistence is a sink's job.
package metrics

import "time"

// Status is the terminal outcome of a pipeline run.
type Status string

const (
	// StatusSuccess means every source, stage, and target completed cleanly.
	StatusSuccess Status = "success"
	// StatusPartial means the run completed with degraded results: some
	// sources or targets failed, or a transform stage was short-circuited.
	StatusPartial Status = "partial"
	// StatusFailed means the run produced nothing usable.
	StatusFailed Status = "failed"
)

// StageMetrics holds the measurements for one transform stage.
type StageMetrics struct {
	Name     string                 `json:"name"`
	Duration time.Duration          `json:"duration_ns"`
	RowsIn   int                    `json:"rows_in"`
	RowsOut  int                    `json:"rows_out"`
	Detail   map[string]interface{} `json:"detail,omitempty"`
}

// SourceResult records the outcome of one extractor.
type SourceResult struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// TargetResult records the outcome of one loader.
type TargetResult struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// Run is the immutable record of one pipeline execution. It is mutated only
// through a Recorder while the run is live and frozen by Finalize.
type Run struct {
	ID              int64          `json:"run_id"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at"`
	Duration        time.Duration  `json:"duration_ns"`
	Status          Status         `json:"status"`
	RowsExtracted   int            `json:"rows_extracted"`
	RowsTransformed int            `json:"rows_transformed"`
	RowsLoaded      int            `json:"rows_loaded"`
	Sources         []SourceResult `json:"sources,omitempty"`
	Stages          []StageMetrics `json:"stages,omitempty"`
	Targets         []TargetResult `json:"targets,omitempty"`
	Errors          []string       `json:"errors,omitempty"`
}

// Sink persists a finalized run record, e.g. to a metrics file.
type Sink interface {
	Persist(run *Run) error
}
