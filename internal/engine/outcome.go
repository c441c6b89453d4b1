package engine

import "time"

// TaskStatus classifies the terminal state of one write task.
type TaskStatus string

const (
	// StatusApplied means exiftool accepted the write.
	StatusApplied TaskStatus = "applied"
	// StatusFailed means the write was attempted and rejected, or every
	// retry of its payload was exhausted.
	StatusFailed TaskStatus = "failed"
	// StatusSkipped means the task never ran, typically because the run
	// was cancelled before its payload was dispatched.
	StatusSkipped TaskStatus = "skipped"
)

// TaskOutcome is the terminal record for a single photo.
type TaskOutcome struct {
	Path    string
	Status  TaskStatus
	Detail  string
	Retries int
}

// Outcome summarizes a completed run.
type Outcome struct {
	RunID    string
	Tasks    []TaskOutcome
	Applied  int
	Failed   int
	Skipped  int
	Payloads int
	Duration time.Duration
}

// Failures returns the failed subset of the run in task order.
func (o *Outcome) Failures() []TaskOutcome {
	var failed []TaskOutcome
	for _, task := range o.Tasks {
		if task.Status == StatusFailed {
			failed = append(failed, task)
		}
	}
	return failed
}
