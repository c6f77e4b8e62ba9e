// Package api is the operation layer behind the CLI. Each exported function
// takes a configuration, opens the stores it needs, performs exactly one
// operation through the engine, and closes before returning. Internal models
// are translated into transport-friendly views with camelCase JSON tags so
// command output can be rendered as tables or machine-readable JSON without
// coupling to internal types.
package api
