package report

import (
	"encoding/json"
	"io"

	"github.com/usertab/usertab/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it is sufficient for this output and behaves
// consistently across Go versions.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonReport is the serialized shape of one Result. Rows are emitted as
// arrays in Dataset column order because Record maps would lose ordering;
// coerced numeric cells are emitted as JSON numbers, everything else as
// strings.
type jsonReport struct {
	Source        string                  `json:"source"`
	Columns       []string                `json:"columns"`
	NumericColumn string                  `json:"numericColumn,omitempty"`
	Rows          [][]any                 `json:"rows"`
	Skipped       int                     `json:"skipped,omitempty"`
	Warnings      []model.CoercionWarning `json:"warnings,omitempty"`
	Stats         *model.Statistics       `json:"stats,omitempty"`
	ElapsedMS     int64                   `json:"elapsedMs"`
}

// newJSONReport flattens a Result into its serialized shape.
func newJSONReport(result *Result) *jsonReport {
	ds := result.Dataset
	rows := make([][]any, 0, ds.Rows())
	for _, rec := range ds.Records {
		row := make([]any, len(ds.Columns))
		for i, col := range ds.Columns {
			cell := rec.Get(col)
			if cell.Numeric {
				row[i] = cell.Number
			} else {
				row[i] = cell.Text
			}
		}
		rows = append(rows, row)
	}

	return &jsonReport{
		Source:        ds.Source,
		Columns:       ds.Columns,
		NumericColumn: ds.NumericColumn,
		Rows:          rows,
		Skipped:       ds.Skipped,
		Warnings:      ds.Warnings,
		Stats:         result.Stats,
		ElapsedMS:     result.Elapsed.Milliseconds(),
	}
}

// Write outputs the result in JSON format.
func (w *JSONWriter) Write(result *Result) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(newJSONReport(result), w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(newJSONReport(result))
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
