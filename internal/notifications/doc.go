// Package notifications delivers lifecycle notifications to per-user durable
// logs. Each user owns one JSON log file; writes are atomic and serialized
// with a per-user mutex plus a file lock so concurrent processes never lose
// entries. The Service routes workflow events to recipients according to
// configuration; the Store exposes the read, mark-read, and prune surface.
package notifications
