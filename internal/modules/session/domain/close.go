package domain

// CloseDecision is the outcome of asking the operator whether closing the
// guide window should end the active run.
type CloseDecision string

const (
	// DecisionStop confirms the close: the run stops and tears down.
	DecisionStop CloseDecision = "stop"
	// DecisionResume vetoes the close: the run continues and the guide
	// window reopens.
	DecisionResume CloseDecision = "resume"
)
