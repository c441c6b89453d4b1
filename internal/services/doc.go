// Package services defines the shared error taxonomy and context plumbing
// used by the filmtag pipeline packages.
//
// Errors produced by parsing, matching, batching, and execution are tagged
// with the sentinel markers declared here so callers can classify a failure
// without string inspection. Context helpers carry the run correlation ID
// and pipeline stage so loggers can annotate lines uniformly.
package services
