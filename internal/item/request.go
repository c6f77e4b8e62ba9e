package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports a malformed create or update request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrorKind classifies the error for status mapping at the CLI edge.
func (e *ValidationError) ErrorKind() string { return "validation" }

// CreateRequest carries the caller-supplied fields for a new work item.
// Title and Type are required; everything else defaults.
type CreateRequest struct {
	Title       string
	Type        Type
	Description string
	Priority    Priority
	Assignee    string
	ParentID    string
}

// Validate checks the request without touching storage. Parent existence and
// acyclicity are repository concerns checked at creation time.
func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, ok := typeSet[r.Type]; !ok {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", string(r.Type))}
	}
	if r.Priority != "" {
		if _, ok := prioritySet[r.Priority]; !ok {
			return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", string(r.Priority))}
		}
	}
	return nil
}

// New materializes a work item from a validated create request. The item
// starts at version 0 in the initial state for its type.
func New(req CreateRequest, now time.Time) (WorkItem, error) {
	if err := req.Validate(); err != nil {
		return WorkItem{}, err
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	ts := now.UTC()
	return WorkItem{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Type:        req.Type,
		Status:      InitialState(req.Type),
		Priority:    priority,
		Description: req.Description,
		Assignee:    strings.TrimSpace(req.Assignee),
		ParentID:    strings.TrimSpace(req.ParentID),
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Version:     0,
	}, nil
}
