package metrics

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// Recorder accumulates measurements for one pipeline run. It is not safe for
// concurrent use; the orchestrator owns it for the run's lifetime. Stage
// reports keep their execution order.
type Recorder struct {
	run       Run
	stages    *orderedmap.OrderedMap[string, StageMetrics]
	finalized bool
}

// NewRecorder starts a run record. The run ID is the start timestamp in
// milliseconds, which is monotonically increasing across sequential runs.
func NewRecorder(startedAt time.Time) *Recorder {
	return &Recorder{
		run: Run{
			ID:        startedAt.UnixMilli(),
			StartedAt: startedAt,
		},
		stages: orderedmap.NewOrderedMap[string, StageMetrics](),
	}
}

// RecordSource records the outcome of one extractor.
func (r *Recorder) RecordSource(name string, rows int, err error) {
	if r.finalized {
		return
	}
	res := SourceResult{Name: name, Rows: rows}
	if err != nil {
		res.Error = err.Error()
		r.run.Errors = append(r.run.Errors, err.Error())
	}
	r.run.Sources = append(r.run.Sources, res)
}

// RecordStage records the measurements of one transform stage.
func (r *Recorder) RecordStage(name string, duration time.Duration, rowsIn, rowsOut int, detail map[string]interface{}) {
	if r.finalized {
		return
	}
	r.stages.Set(name, StageMetrics{
		Name:     name,
		Duration: duration,
		RowsIn:   rowsIn,
		RowsOut:  rowsOut,
		Detail:   detail,
	})
}

// RecordTarget records the outcome of one loader.
func (r *Recorder) RecordTarget(name string, rows int, err error) {
	if r.finalized {
		return
	}
	res := TargetResult{Name: name, Rows: rows}
	if err != nil {
		res.Error = err.Error()
		r.run.Errors = append(r.run.Errors, err.Error())
	}
	r.run.Targets = append(r.run.Targets, res)
}

// RecordError records a run-level error that is not tied to a single source
// or target, e.g. a schema mismatch or a transform stage failure.
func (r *Recorder) RecordError(err error) {
	if r.finalized || err == nil {
		return
	}
	r.run.Errors = append(r.run.Errors, err.Error())
}

// SetRowCounts records the dataset size at each pipeline boundary.
func (r *Recorder) SetRowCounts(extracted, transformed, loaded int) {
	if r.finalized {
		return
	}
	r.run.RowsExtracted = extracted
	r.run.RowsTransformed = transformed
	r.run.RowsLoaded = loaded
}

// Snapshot returns a copy of the run record as accumulated so far. It is
// valid at any point, which supports partial reporting when a run fails
// before finalization.
func (r *Recorder) Snapshot() *Run {
	snap := r.run
	snap.Sources = append([]SourceResult(nil), r.run.Sources...)
	snap.Targets = append([]TargetResult(nil), r.run.Targets...)
	snap.Errors = append([]string(nil), r.run.Errors...)
	snap.Stages = r.stageSlice()
	return &snap
}

// Finalize freezes the record with the terminal status and returns it.
// Further recording calls are no-ops.
func (r *Recorder) Finalize(status Status, completedAt time.Time) *Run {
	if !r.finalized {
		r.run.Status = status
		r.run.CompletedAt = completedAt
		r.run.Duration = completedAt.Sub(r.run.StartedAt)
		r.run.Stages = r.stageSlice()
		r.finalized = true
	}
	return r.Snapshot()
}

func (r *Recorder) stageSlice() []StageMetrics {
	stages := make([]StageMetrics, 0, r.stages.Len())
	for el := r.stages.Front(); el != nil; el = el.Next() {
		stages = append(stages, el.Value)
	}
	return stages
}
