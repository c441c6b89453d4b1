// Package photo models the image files a batch run operates on.
//
// A Ref is a read-only view of one managed file: its path, its position in
// the caller-sorted file list, and an optional previously-known capture
// timestamp. Scan builds an ordered Ref list from a directory, normalizing
// file names to NFC so names written by macOS compare cleanly against log
// text.
package photo
