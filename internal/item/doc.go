// Package item holds the work-item and release domain models.
//
// WorkItem is a value: transforms return copies, never mutate the receiver,
// and the store is the only place Version advances. Type, Priority, and the
// lifecycle State (from package workflow) are closed string enumerations
// with Parse helpers mirroring how statuses are handled elsewhere in the
// codebase.
package item
