// Package store persists work items and releases in SQLite.
//
// The Store is the single source of truth for item state. Writes to existing
// items go through Save, which performs a version-checked UPDATE: the row is
// touched only when the stored version matches the one the caller read, and
// a successful write advances it by exactly one. Losing a race yields
// ConflictError carrying the currently stored version so the caller can
// reload and decide whether to retry. No lock spans the read-validate-write
// window.
//
// Schema changes bump schemaVersion in schema.go; the embedded schema.sql is
// applied transactionally on first open.
package store
