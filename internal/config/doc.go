// Package config loads, validates, and normalizes Rinna configuration.
//
// Configuration is stored as TOML (default ~/.config/rinna/config.toml, with
// a project-local rinna.toml fallback). Load applies defaults for missing
// values, expands ~ in path fields, and validates the result so downstream
// packages never see a partially-populated Config.
package config
