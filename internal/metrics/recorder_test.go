package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RunIDFromStart(t *testing.T) {
	startedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	r := NewRecorder(startedAt)

	run := r.Snapshot()
	assert.Equal(t, startedAt.UnixMilli(), run.ID)
	assert.Equal(t, startedAt, run.StartedAt)
}

func TestRecorder_StagesKeepExecutionOrder(t *testing.T) {
	r := NewRecorder(time.Now())
	r.RecordStage("deduplicate", time.Millisecond, 10, 8, nil)
	r.RecordStage("fill_missing", time.Millisecond, 8, 8, nil)
	r.RecordStage("remove_outliers", time.Millisecond, 8, 7, nil)
	r.RecordStage("derive_columns", time.Millisecond, 7, 7, nil)

	run := r.Finalize(StatusSuccess, time.Now())
	require.Len(t, run.Stages, 4)
	assert.Equal(t, "deduplicate", run.Stages[0].Name)
	assert.Equal(t, "fill_missing", run.Stages[1].Name)
	assert.Equal(t, "remove_outliers", run.Stages[2].Name)
	assert.Equal(t, "derive_columns", run.Stages[3].Name)
}

func TestRecorder_SourceAndTargetErrors(t *testing.T) {
	r := NewRecorder(time.Now())
	r.RecordSource("csv", 100, nil)
	r.RecordSource("api", 0, errors.New("connection refused"))
	r.RecordTarget("warehouse", 0, errors.New("disk full"))
	r.RecordTarget("json_out", 95, nil)
	r.RecordError(errors.New("stage blew up"))

	run := r.Snapshot()
	require.Len(t, run.Sources, 2)
	assert.Equal(t, 100, run.Sources[0].Rows)
	assert.Empty(t, run.Sources[0].Error)
	assert.Equal(t, "connection refused", run.Sources[1].Error)

	require.Len(t, run.Targets, 2)
	assert.Equal(t, "disk full", run.Targets[0].Error)

	assert.Len(t, run.Errors, 3)
}

func TestRecorder_SnapshotBeforeFinalize(t *testing.T) {
	r := NewRecorder(time.Now())
	r.RecordSource("csv", 10, nil)
	r.SetRowCounts(10, 0, 0)

	run := r.Snapshot()
	assert.Equal(t, 10, run.RowsExtracted)
	assert.Empty(t, run.Status)

	// Mutating the snapshot must not affect the recorder.
	run.Sources[0].Rows = 999
	assert.Equal(t, 10, r.Snapshot().Sources[0].Rows)
}

func TestRecorder_FinalizeFreezes(t *testing.T) {
	startedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(3 * time.Second)

	r := NewRecorder(startedAt)
	run := r.Finalize(StatusPartial, completedAt)

	assert.Equal(t, StatusPartial, run.Status)
	assert.Equal(t, 3*time.Second, run.Duration)

	// Everything after Finalize is a no-op.
	r.RecordSource("late", 5, nil)
	r.RecordStage("late", time.Second, 1, 1, nil)
	r.RecordTarget("late", 5, nil)
	r.RecordError(errors.New("late"))
	r.SetRowCounts(99, 99, 99)
	r.Finalize(StatusSuccess, completedAt.Add(time.Hour))

	again := r.Snapshot()
	assert.Equal(t, StatusPartial, again.Status)
	assert.Empty(t, again.Sources)
	assert.Empty(t, again.Stages)
	assert.Equal(t, 0, again.RowsExtracted)
}
