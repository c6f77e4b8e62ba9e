package workflow

// The lifecycle graph is fixed at build time. Forward edges drive normal
// progress, blocked bounces back to in_progress, and every non-terminal
// state may be cancelled. Reopen edges are held separately so reopening a
// finished item stays an intentional, auditable action rather than a
// back-edge in the main graph.
var transitions = map[State][]State{
	StateFound:      {StateTriaged},
	StateTriaged:    {StateToDo},
	StateToDo:       {StateInProgress},
	StateInProgress: {StateInReview, StateBlocked},
	StateBlocked:    {StateInProgress},
	StateInReview:   {StateDone},
	StateDone:       {},
	StateCancelled:  {},
}

var reopenTransitions = map[State]State{
	StateDone:      StateToDo,
	StateCancelled: StateToDo,
}

// IsLegal reports whether the edge from -> to exists in the lifecycle graph.
// Self-transitions are never legal; reopen edges count as legal.
func IsLegal(from, to State) bool {
	if from == to {
		return false
	}
	if !KnownState(from) || !KnownState(to) {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	if !IsTerminal(from) && to == StateCancelled {
		return true
	}
	return IsReopen(from, to)
}

// IsReopen reports whether the edge from -> to is an explicit reopen of a
// terminal state.
func IsReopen(from, to State) bool {
	target, ok := reopenTransitions[from]
	return ok && target == to
}

// AllowedTransitions returns the set of states reachable from the given
// state, reopen targets included. Unknown states yield nil.
func AllowedTransitions(from State) []State {
	if !KnownState(from) {
		return nil
	}
	var out []State
	out = append(out, transitions[from]...)
	if !IsTerminal(from) && from != StateCancelled {
		out = append(out, StateCancelled)
	}
	if target, ok := reopenTransitions[from]; ok {
		out = append(out, target)
	}
	return out
}
