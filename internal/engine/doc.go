// Package engine runs planned payloads against exiftool with a bounded
// worker pool. Each payload is written to an argfile, executed with a
// per-payload deadline, and retried with exponential backoff when the
// failure is transient. Outcomes from all workers are merged by a
// collector keyed on photo path, so re-delivery of a payload result
// never double-counts a file.
package engine
