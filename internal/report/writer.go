package report

import (
	"io"
	"time"

	"github.com/usertab/usertab/internal/model"
	"github.com/usertab/usertab/internal/render"
)

// Result bundles everything a writer needs to report on one input file:
// the loaded Dataset, the requested display format, the optional statistics,
// and how long the load took.
type Result struct {
	// Dataset is the table loaded from one input file.
	Dataset *model.Dataset

	// Format is the display format the table is rendered in.
	Format render.DisplayFormat

	// Stats holds the Describe output, or nil when not requested.
	Stats *model.Statistics

	// Elapsed is the wall-clock duration of the load.
	Elapsed time.Duration
}

// Writer defines the interface for report output.
// Implementations write one Result in their format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the
// same API.
type Writer interface {
	// Write outputs the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *Result) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
