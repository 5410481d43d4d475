package domain

// SubmissionState is the life-cycle position of one form's submission
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether the state is terminal for the current attempt
func (s SubmissionState) Settled() bool {
	return s == StateSucceeded || s == StateFailed
}
