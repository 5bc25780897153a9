// Package history provides SQLite-based storage of past usertab runs.
//
// Every rendered file is recorded with its row/column counts, the display
// format used, and the computed statistics as JSON. The database lives in
// the XDG data directory and uses the pure-Go modernc.org/sqlite driver, so
// no cgo toolchain is needed.
//
// The store is strictly ancillary: the tool works without it, and the CLI
// degrades to a warning when the database cannot be opened.
package history
