package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/usertab/usertab/internal/model"
	"github.com/usertab/usertab/internal/render"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: the rendered table, a row
// count, the statistics section when requested, and any load warnings.
//
// Design decision: We use plain text with ASCII section separators rather
// than ANSI colors because it works in all terminals and pipes cleanly to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
// Nothing is written when table rendering fails, so an unsupported format
// produces no partial output.
func (w *SimpleWriter) Write(result *Result) (int, error) {
	table, err := render.Render(result.Dataset, result.Format)
	if err != nil {
		return 0, err
	}

	var sb strings.Builder
	w.writeTable(&sb, result, table)
	w.writeStats(&sb, result.Stats)
	w.writeWarnings(&sb, result.Dataset)

	return w.output.Write([]byte(sb.String()))
}

// writeTable writes the rendered table and the row count line.
func (w *SimpleWriter) writeTable(sb *strings.Builder, result *Result, table string) {
	if result.Dataset.Empty() {
		sb.WriteString("No data to display.\n")
		sb.WriteString(table)
		return
	}
	sb.WriteString(table)
	sb.WriteString(fmt.Sprintf("\nTotal rows: %d\n", result.Dataset.Rows()))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("Loaded %s in %s\n",
			result.Dataset.Source, result.Elapsed.Round(time.Microsecond)))
	}
}

// writeStats writes the per-column statistics section when present.
func (w *SimpleWriter) writeStats(sb *strings.Builder, stats *model.Statistics) {
	if stats == nil {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("STATISTICS\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	for _, cs := range stats.Columns {
		if cs.Numeric {
			sb.WriteString(fmt.Sprintf("  %s: count=%d min=%s max=%s mean=%s std=%s\n",
				cs.Column, cs.Count,
				formatNumber(cs.Min), formatNumber(cs.Max),
				formatNumber(cs.Mean), formatNumber(cs.Std)))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: distinct=%d\n", cs.Column, cs.Distinct))
	}
}

// writeWarnings reports skipped lines and coercion failures.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, ds *model.Dataset) {
	if ds.Skipped == 0 && len(ds.Warnings) == 0 {
		return
	}

	sb.WriteString("\n")
	if ds.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped %d malformed line(s).\n", ds.Skipped))
	}
	if len(ds.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("%d cell(s) in column %q could not be parsed as numbers (marked with '?').\n",
			len(ds.Warnings), ds.NumericColumn))
		if w.verbose {
			for _, warn := range ds.Warnings {
				sb.WriteString(fmt.Sprintf("  line %d: %q\n", warn.Line, warn.Value))
			}
		}
	}
}

// formatNumber renders a float compactly: integers without a decimal point,
// everything else with up to four significant decimals. The integer
// fast-path is limited to magnitudes that fit int64 exactly.
func formatNumber(f float64) string {
	if math.Abs(f) < 1e15 && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}
