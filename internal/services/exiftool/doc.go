// Package exiftool wraps the external metadata tool's batch argfile mode.
//
// A payload is applied with a single subprocess invocation (-@ argfile)
// rather than one process per file; the tool's stdout is parsed back into
// per-file results. Because each file in the argfile is terminated by its
// own -execute directive, one summary line is emitted per file and results
// correlate positionally even when an error line does not name its file.
package exiftool
