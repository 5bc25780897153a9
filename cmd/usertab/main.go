// Package main provides the entry point for the usertab CLI.
//
// usertab reads a delimited text file into an in-memory table, optionally
// coerces one column to a numeric type, computes per-column statistics on
// request, and renders the result as an aligned text table.
//
// Usage:
//
//	usertab show username.csv
//	usertab show --format github --stats data.csv
//
// See --help for all available options.
package main

// main is the entry point for usertab.
func main() {
	Execute()
}
