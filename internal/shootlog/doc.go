// Package shootlog parses external shoot-log exports into ordered records.
//
// Companion logging apps export rolls in three shapes: tagged JSON objects,
// tabular CSV with a header row, and delimited text with a fixed field order.
// The parser normalizes all three into the same Record type, resolving field
// name synonyms through priority-ordered tables and tolerating missing
// fields. A record without a parseable timestamp is valid; only structurally
// undecodable input is an error.
package shootlog
