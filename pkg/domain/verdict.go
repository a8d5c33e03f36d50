package domain

import "time"

// Verdict is the stored outcome of evaluating one input.
// A search that ran out of steps is a verdict with GaveUp set, not an error.
type Verdict struct {
	RunID     string     `json:"run_id"`
	Input     string     `json:"input"`
	Accepted  bool       `json:"accepted"`
	GaveUp    bool       `json:"gave_up,omitempty"`
	StepLimit int        `json:"step_limit,omitempty"`
	Steps     int        `json:"steps"`
	Branch    string     `json:"branch,omitempty"`
	Path      []Snapshot `json:"path,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Cached    bool       `json:"cached,omitempty"`
}

// Status returns "accepted", "rejected" or "gave_up".
func (v *Verdict) Status() string {
	switch {
	case v.GaveUp:
		return "gave_up"
	case v.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}
