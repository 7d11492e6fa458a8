package domain

// Affordance names a host control the measurement controller enables or
// disables as the run moves between states.
type Affordance string

const (
	AffordanceGeneratePlan     Affordance = "generate_plan"
	AffordanceStartRun         Affordance = "start_run"
	AffordanceStopRun          Affordance = "stop_run"
	AffordanceRecordFrame      Affordance = "record_frame"
	AffordanceNextPosition     Affordance = "next_position"
	AffordancePreviousPosition Affordance = "previous_position"
	AffordanceAnalyze          Affordance = "analyze"
	AffordanceExport           Affordance = "export"
)

// Affordances maps the full control surface for one state. The table is the
// single source of truth: every transition applies a complete row, so no
// control is ever left in a stale enabled state from a previous transition.
func Affordances(status Status, hasPlan, hasSamples bool) map[Affordance]bool {
	if status == StatusActive {
		return map[Affordance]bool{
			AffordanceGeneratePlan:     false,
			AffordanceStartRun:         false,
			AffordanceStopRun:          true,
			AffordanceRecordFrame:      true,
			AffordanceNextPosition:     true,
			AffordancePreviousPosition: true,
			AffordanceAnalyze:          false,
			AffordanceExport:           false,
		}
	}
	// Idle and both terminal states share a row: a finished run hands the
	// controls back and exposes analysis only when data was recorded.
	return map[Affordance]bool{
		AffordanceGeneratePlan:     true,
		AffordanceStartRun:         hasPlan,
		AffordanceStopRun:          false,
		AffordanceRecordFrame:      false,
		AffordanceNextPosition:     false,
		AffordancePreviousPosition: false,
		AffordanceAnalyze:          hasSamples,
		AffordanceExport:           hasSamples,
	}
}
