package domain

// RunState is the lifecycle state of the sync orchestrator.
type RunState int

// Orchestrator states. A run moves from Idle to Exporting or Importing
// and ends in Done or Failed.
const (
	RunIdle RunState = iota
	RunExporting
	RunImporting
	RunDone
	RunFailed
)

// String returns the string representation.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunExporting:
		return "exporting"
	case RunImporting:
		return "importing"
	case RunDone:
		return "done"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}
