package workflow

import "strings"

// State represents one node in the fixed work-item lifecycle graph.
type State string

const (
	StateFound      State = "found"
	StateTriaged    State = "triaged"
	StateToDo       State = "to_do"
	StateInProgress State = "in_progress"
	StateInReview   State = "in_review"
	StateBlocked    State = "blocked"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"
)

var allStates = []State{
	StateFound,
	StateTriaged,
	StateToDo,
	StateInProgress,
	StateInReview,
	StateBlocked,
	StateDone,
	StateCancelled,
}

var stateSet = func() map[State]struct{} {
	set := make(map[State]struct{}, len(allStates))
	for _, state := range allStates {
		set[state] = struct{}{}
	}
	return set
}()

var terminalStates = map[State]struct{}{
	StateDone:      {},
	StateCancelled: {},
}

// AllStates returns the ordered list of known states.
func AllStates() []State {
	cp := make([]State, len(allStates))
	copy(cp, allStates)
	return cp
}

// ParseState converts a string into a known State.
func ParseState(value string) (State, bool) {
	normalized := State(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stateSet[normalized]
	return normalized, ok
}

// KnownState reports whether the state is part of the lifecycle graph.
func KnownState(state State) bool {
	_, ok := stateSet[state]
	return ok
}

// IsTerminal reports whether a state accepts no outgoing edges besides reopen.
func IsTerminal(state State) bool {
	_, ok := terminalStates[state]
	return ok
}
