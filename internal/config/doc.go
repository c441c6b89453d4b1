// Package config loads, normalizes, and validates filmtag configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the CLI needs:
// exiftool invocation settings, execution concurrency, payload sizing, and
// matching defaults.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical values, and clear validation errors.
package config
