// Package logging builds slog loggers for Rinna commands and services.
//
// New constructs a logger from explicit options; NewFromConfig derives them
// from application config, writing to stderr plus rinna.log in the log
// directory. The console handler renders a compact human format, the json
// handler emits one object per line for machine consumption. Attr helpers
// keep field names consistent across components.
package logging
