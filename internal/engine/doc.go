// Package engine orchestrates work-item lifecycle operations. Every mutation
// follows the same shape: load the current snapshot, validate against the
// state machine, persist through the store's version check, then fan out
// notifications best-effort. Concurrent writers race on the version column;
// the loser receives a ConflictError and decides for itself whether to
// reload and retry.
package engine
