package item

import (
	"strings"
	"time"

	"rinna/internal/workflow"
)

// Type classifies a work item.
type Type string

const (
	TypeBug     Type = "bug"
	TypeFeature Type = "feature"
	TypeChore   Type = "chore"
	TypeTask    Type = "task"
)

// Priority orders work items by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var allTypes = []Type{TypeBug, TypeFeature, TypeChore, TypeTask}

var allPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var typeSet = func() map[Type]struct{} {
	set := make(map[Type]struct{}, len(allTypes))
	for _, t := range allTypes {
		set[t] = struct{}{}
	}
	return set
}()

var prioritySet = func() map[Priority]struct{} {
	set := make(map[Priority]struct{}, len(allPriorities))
	for _, p := range allPriorities {
		set[p] = struct{}{}
	}
	return set
}()

// AllTypes returns the ordered list of known work-item types.
func AllTypes() []Type {
	cp := make([]Type, len(allTypes))
	copy(cp, allTypes)
	return cp
}

// AllPriorities returns the ordered list of known priorities.
func AllPriorities() []Priority {
	cp := make([]Priority, len(allPriorities))
	copy(cp, allPriorities)
	return cp
}

// ParseType converts a string into a known work-item Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := typeSet[normalized]
	return normalized, ok
}

// ParsePriority converts a string into a known Priority.
func ParsePriority(value string) (Priority, bool) {
	normalized := Priority(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := prioritySet[normalized]
	return normalized, ok
}

// InitialState returns the lifecycle entry point for a work-item type.
// Bugs start at found so they pass through triage; planned work starts
// directly at to_do.
func InitialState(typ Type) workflow.State {
	if typ == TypeBug {
		return workflow.StateFound
	}
	return workflow.StateToDo
}

// WorkItem is an immutable snapshot of one trackable unit of work. State
// changes never mutate in place: the With* transforms return a copy and the
// store bumps Version by exactly one per persisted mutation.
type WorkItem struct {
	ID          string
	Title       string
	Type        Type
	Status      workflow.State
	Priority    Priority
	Description string
	Assignee    string
	ParentID    string
	Watchers    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}

func (w WorkItem) clone(now time.Time) WorkItem {
	cp := w
	cp.Watchers = append([]string(nil), w.Watchers...)
	cp.UpdatedAt = now.UTC()
	return cp
}

// WithStatus returns a copy of the item in the given state.
func (w WorkItem) WithStatus(state workflow.State, now time.Time) WorkItem {
	cp := w.clone(now)
	cp.Status = state
	return cp
}

// WithAssignee returns a copy of the item assigned to the given user.
// An empty assignee clears the assignment.
func (w WorkItem) WithAssignee(assignee string, now time.Time) WorkItem {
	cp := w.clone(now)
	cp.Assignee = strings.TrimSpace(assignee)
	return cp
}

// WithPriority returns a copy of the item at the given priority.
func (w WorkItem) WithPriority(priority Priority, now time.Time) WorkItem {
	cp := w.clone(now)
	cp.Priority = priority
	return cp
}

// WithDescription returns a copy of the item with a replaced description.
func (w WorkItem) WithDescription(description string, now time.Time) WorkItem {
	cp := w.clone(now)
	cp.Description = description
	return cp
}

// WithParent returns a copy of the item re-parented under the given item.
// An empty parent detaches the item. Existence and acyclicity of the parent
// chain are repository concerns.
func (w WorkItem) WithParent(parentID string, now time.Time) WorkItem {
	cp := w.clone(now)
	cp.ParentID = strings.TrimSpace(parentID)
	return cp
}

// WithWatcher returns a copy of the item with the user added to its watcher
// set. Adding an existing watcher is a no-op on the set but still advances
// UpdatedAt on persist.
func (w WorkItem) WithWatcher(user string, now time.Time) WorkItem {
	cp := w.clone(now)
	user = strings.TrimSpace(user)
	if user == "" {
		return cp
	}
	for _, existing := range cp.Watchers {
		if existing == user {
			return cp
		}
	}
	cp.Watchers = append(cp.Watchers, user)
	return cp
}

// IsWatchedBy reports whether the user is in the item's watcher set.
func (w WorkItem) IsWatchedBy(user string) bool {
	for _, existing := range w.Watchers {
		if existing == user {
			return true
		}
	}
	return false
}

// Recipients returns the distinct users interested in lifecycle events for
// this item: the assignee plus all watchers, excluding the given actor.
func (w WorkItem) Recipients(actor string) []string {
	seen := make(map[string]struct{}, len(w.Watchers)+1)
	var out []string
	add := func(user string) {
		user = strings.TrimSpace(user)
		if user == "" || user == actor {
			return
		}
		if _, ok := seen[user]; ok {
			return
		}
		seen[user] = struct{}{}
		out = append(out, user)
	}
	add(w.Assignee)
	for _, watcher := range w.Watchers {
		add(watcher)
	}
	return out
}
