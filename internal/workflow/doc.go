// Package workflow defines the work-item lifecycle graph.
//
// The state set and legal-edge table are fixed at build time and exposed as
// pure functions with no side effects or I/O: IsLegal validates a single
// edge, AllowedTransitions enumerates the outgoing set, and IsReopen flags
// the explicit reopen edges out of the terminal states. The engine package
// consults these rules before persisting any status change.
package workflow
