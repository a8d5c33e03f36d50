package domain

import "fmt"

// Snapshot is the printable view of one configuration.
type Snapshot struct {
	State State  `json:"state"`
	Stack string `json:"stack"`           // Top of stack is the last symbol
	Input string `json:"remaining_input"` // Input not yet consumed
}

func (s Snapshot) String() string {
	return fmt.Sprintf("state=%s stack='%s' input='%s'", s.State, s.Stack, s.Input)
}

// Outcome says what happened to a branch after one of its configurations was visited.
type Outcome string

const (
	OutcomeAccept   Outcome = "accept"   // Configuration is accepting; the search stops
	OutcomeDeadEnd  Outcome = "dead_end" // No transition applies; the branch dies
	OutcomeContinue Outcome = "continue" // Exactly one successor, same branch
	OutcomeSplit    Outcome = "split"    // Several successors, one new branch each
)

// VisitEvent is emitted once per dequeued configuration, in dequeue order.
type VisitEvent struct {
	Step     int      `json:"step"`   // 0-based dequeue index
	Branch   string   `json:"branch"` // "" for the root branch
	Config   Snapshot `json:"config"`
	Outcome  Outcome  `json:"outcome"`
	Branches []string `json:"branches,omitempty"` // New labels when Outcome is OutcomeSplit
}

// AcceptEvent is emitted once, when the first accepting configuration is found.
type AcceptEvent struct {
	Step   int        `json:"step"`
	Branch string     `json:"branch"`
	Path   []Snapshot `json:"path"` // Start configuration first, accepting one last
}

// SearchHooks receives the trace of a search. Nil callbacks are skipped.
type SearchHooks struct {
	OnVisit  func(*VisitEvent)
	OnAccept func(*AcceptEvent)
}
