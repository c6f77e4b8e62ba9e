// Package main hosts the Rinna CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into work-item
// lifecycle operations: creating and transitioning items, managing releases,
// and reading per-user notification logs. It centralizes configuration
// resolution, actor identity, and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
