// Package runlog persists a journal of completed tagging runs in SQLite.
// It records outcome summaries and per-file failures after a run finishes
// so they stay inspectable across invocations; it plays no part in
// scheduling or resuming work.
package runlog
