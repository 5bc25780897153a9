package report

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/usertab/usertab/internal/model"
	"github.com/usertab/usertab/internal/render"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, lists, and GitHub-flavored
// alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format: an info header, the data
// table, the statistics table when present, and load warnings.
func (w *MarkdownWriter) Write(result *Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeData(md, result.Dataset)
	w.writeStats(md, result.Stats)
	w.writeWarnings(md, result.Dataset)

	return len(md.String()), md.Build()
}

// writeHeader writes the document title and the file info table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *Result) {
	md.H1("Tabular Data Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + filepath.Base(result.Dataset.Source) + "`"},
			{"Rows", strconv.Itoa(result.Dataset.Rows())},
			{"Columns", strconv.Itoa(len(result.Dataset.Columns))},
		},
	})
	md.PlainText("")
}

// writeData writes the dataset itself as a markdown table.
func (w *MarkdownWriter) writeData(md *markdown.Markdown, ds *model.Dataset) {
	md.H2("Data")
	md.PlainText("")

	if ds.Empty() {
		md.PlainText("No data to display.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, ds.Rows())
	for _, rec := range ds.Records {
		row := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			row[i] = render.CellText(ds, rec, col)
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{
		Header: ds.Columns,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeStats writes the per-column statistics table when present.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, stats *model.Statistics) {
	if stats == nil {
		return
	}

	md.H2("Statistics")
	md.PlainText("")

	rows := make([][]string, 0, len(stats.Columns))
	for _, cs := range stats.Columns {
		if cs.Numeric {
			rows = append(rows, []string{
				cs.Column,
				strconv.Itoa(cs.Count),
				formatNumber(cs.Min),
				formatNumber(cs.Max),
				formatNumber(cs.Mean),
				formatNumber(cs.Std),
			})
			continue
		}
		rows = append(rows, []string{cs.Column, "-", "-", "-", "-", "-", strconv.Itoa(cs.Distinct)})
	}

	// Pad numeric rows so every row has the distinct column too.
	for i, row := range rows {
		if len(row) == 6 {
			rows[i] = append(row, "-")
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Column", "Count", "Min", "Max", "Mean", "Std", "Distinct"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWarnings emits alerts for skipped lines and coercion failures.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, ds *model.Dataset) {
	switch {
	case ds.Skipped > 0 && len(ds.Warnings) > 0:
		md.Warningf("%d malformed line(s) skipped; %d cell(s) in column %q left as text.",
			ds.Skipped, len(ds.Warnings), ds.NumericColumn)
	case ds.Skipped > 0:
		md.Warningf("%d malformed line(s) skipped.", ds.Skipped)
	case len(ds.Warnings) > 0:
		md.Notef("%d cell(s) in column %q could not be parsed as numbers and were left as text.",
			len(ds.Warnings), ds.NumericColumn)
	}
}
