// Package preflight verifies the environment before a tagging run:
// exiftool availability, directory permissions, and free disk space for
// argfiles and the run journal.
package preflight
