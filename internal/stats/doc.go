// Package stats computes per-column summary statistics for a Dataset.
//
// Describe is a pure function: it never mutates the Dataset and has no
// failure modes. An empty Dataset (header only) yields a Statistics value
// with zero counts for every column.
package stats
