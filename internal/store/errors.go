package store

import (
	"errors"
	"fmt"
)

// ErrorClassifier allows errors to declare their classification for exit-code
// mapping at the CLI edge. Known kinds: "validation", "not_found", "conflict".
type ErrorClassifier interface {
	ErrorKind() string
}

// Classify returns the error's declared kind, or "internal" when the error
// carries no classification.
func Classify(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return "internal"
}

// NotFoundError reports that a referenced id does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ErrorKind classifies the error for status mapping at the CLI edge.
func (e *NotFoundError) ErrorKind() string { return "not_found" }

// ConflictError reports an optimistic-concurrency failure: the item changed
// since the caller read it. Stored carries the current persisted version so
// the caller can reload and decide whether to retry.
type ConflictError struct {
	ID       string
	Expected int64
	Stored   int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("work item %s changed since read: have version %d, stored version is %d",
		e.ID, e.Expected, e.Stored)
}

// ErrorKind classifies the error for status mapping at the CLI edge.
func (e *ConflictError) ErrorKind() string { return "conflict" }
