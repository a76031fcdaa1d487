package transform

import "fmt"

// StageError wraps a failure inside a named transform stage. The orchestrator
// treats it as recoverable: the run is downgraded, remaining stages are
// skipped, and the last successfully produced dataset proceeds to load.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("transform stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
