// Package main hosts the filmtag CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into shoot
// log parsing, photo matching, payload planning, and tagging runs. It
// centralizes configuration resolution, run locking, and structured logging
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
