// Package model defines the core data structures used throughout usertab.
//
// This package contains the following main types:
//   - Cell: A single field value, optionally carrying a coerced number
//   - Record: One row of tabular data as a column-name-to-cell mapping
//   - Dataset: The full in-memory table loaded from one input file
//   - Statistics: Per-column aggregate summary computed from a Dataset
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (loader, stats, render, report, history)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// history storage.
package model
