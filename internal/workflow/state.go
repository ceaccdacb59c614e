package workflow

// Phase is the coarse position of the coordinator's state machine
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseConverting      Phase = "converting"
	PhaseCommitting      Phase = "committing"
	PhaseDone            Phase = "done"
	PhasePartiallyFailed Phase = "partially_failed"
	PhaseFailed          Phase = "failed"
)

// Operation names the last operation the coordinator started
type Operation string

const (
	OperationNone    Operation = ""
	OperationConvert Operation = "convert"
	OperationCommit  Operation = "commit"
)

// IsRunning returns true while an operation is in flight
func (p Phase) IsRunning() bool {
	return p == PhaseConverting || p == PhaseCommitting
}

// State is a snapshot of the coordinator handed to observers
type State struct {
	OutputDir string
	DestDir   string
	Selected  int
	Phase     Phase
	Status    string
	Done      int // conversions resolved so far, success or failure
	Total     int

	// Operation is the last operation started; the counts below belong to it
	Operation Operation
	Succeeded int // conversions that produced output, set when a batch ends
	Committed int // tracks written by the last successful commit
}

// Progress returns Done/Total in the 0..1 range
func (s State) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total)
}

// FileFailure describes one input that could not be converted
type FileFailure struct {
	Path string
	Err  error
}

// BatchResult summarizes a conversion pass
type BatchResult struct {
	Total     int
	Succeeded int
	Failures  []FileFailure
}

// Failed returns the number of inputs that could not be converted
func (r BatchResult) Failed() int {
	return len(r.Failures)
}
