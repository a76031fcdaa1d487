package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_AppendsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics", "runs.json")
	sink := NewFileSink(path)

	first := NewRecorder(time.Now()).Finalize(StatusSuccess, time.Now())
	require.NoError(t, sink.Persist(first))

	second := NewRecorder(time.Now().Add(time.Minute)).Finalize(StatusPartial, time.Now().Add(time.Minute))
	require.NoError(t, sink.Persist(second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var runs []Run
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, StatusSuccess, runs[0].Status)
	assert.Equal(t, StatusPartial, runs[1].Status)
}

func TestFileSink_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	sink := NewFileSink(path)
	run := NewRecorder(time.Now()).Finalize(StatusFailed, time.Now())
	require.NoError(t, sink.Persist(run))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var runs []Run
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFailed, runs[0].Status)
}
