// Package match aligns shoot-log records with photo files.
//
// Neither capture-device clocks nor filenames are fully reliable in manual
// logging workflows, so three strategies are offered: timestamp-window
// matching with a greedy global minimum-delta assignment, strictly
// positional sequence matching (the default), and a hybrid that prefers
// timestamps but falls back to sequence when the timestamp match rate is
// low enough to suggest the clocks cannot be trusted for the batch.
//
// Matching is pure and synchronous: no shared mutable state, safe to call
// from any goroutine.
package match
