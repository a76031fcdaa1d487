package pipeline

// State is the orchestrator's position in the run lifecycle. Terminal
// outcomes are represented by metrics.Status; once a run reaches one, the
// state machine has no outgoing transitions.
type State string

const (
	StateInit         State = "init"
	StateExtracting   State = "extracting"
	StateTransforming State = "transforming"
	StateLoading      State = "loading"
	StateDone         State = "done"
)
