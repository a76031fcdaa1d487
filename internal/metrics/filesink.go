package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink appends finalized run records to a JSON file holding an array of
// runs. Reads the existing array, appends, and rewrites the file; a missing
// or corrupt file starts a fresh array.
type FileSink struct {
	Path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Persist implements Sink.
func (s *FileSink) Persist(run *Run) error {
	var runs []*Run
	if data, err := os.ReadFile(s.Path); err == nil {
		if err := json.Unmarshal(data, &runs); err != nil {
			runs = nil
		}
	}
	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
