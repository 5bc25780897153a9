package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/usertab/usertab/internal/model"
)

// Options controls how Load reads a delimited text file.
type Options struct {
	// Delimiter is the single-character field separator.
	Delimiter rune

	// NumericColumn names zero or one column whose cells are coerced to
	// numbers. The name is ignored when the header has no such column.
	NumericColumn string

	// Encoding is the input charset: EncodingUTF8 (default) or EncodingLatin1.
	Encoding string

	// SkipMalformed excludes data lines whose field count differs from the
	// header instead of failing the whole load. Excluded lines are counted
	// in Dataset.Skipped.
	SkipMalformed bool
}

// DefaultOptions returns the options matching the tool's defaults:
// semicolon delimiter, UTF-8 input, "Identifier" as the numeric column,
// and strict handling of malformed lines.
func DefaultOptions() Options {
	return Options{
		Delimiter:     ';',
		NumericColumn: "Identifier",
		Encoding:      EncodingUTF8,
	}
}

// Load reads the file at path fully and builds a Dataset.
//
// The first line supplies the column names (whitespace-trimmed, matching the
// original data source which padded header cells). Each following non-blank
// line becomes one Record, in input order. Rows whose cells are all empty
// are dropped. The returned Dataset always satisfies Dataset.Validate.
func Load(path string, opts Options) (*model.Dataset, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}

	f, err := os.Open(path) //nolint:gosec // User-provided input path is the point of the tool
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := decodeReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	delim := string(opts.Delimiter)

	// Header line. A leading BOM is stripped so the first column name
	// compares equal regardless of how the file was exported.
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	header := strings.TrimPrefix(scanner.Text(), "\uFEFF")
	columns := splitAndTrim(header, delim)

	ds := model.NewDataset(path, columns)
	if opts.NumericColumn != "" && ds.HasColumn(opts.NumericColumn) {
		ds.NumericColumn = opts.NumericColumn
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, delim)
		if len(fields) != len(columns) {
			if opts.SkipMalformed {
				ds.Skipped++
				continue
			}
			return nil, fmt.Errorf("%s line %d: %w: got %d fields, want %d",
				path, lineNo, ErrMalformedInput, len(fields), len(columns))
		}

		if allEmpty(fields) {
			continue
		}

		ds.Records = append(ds.Records, buildRecord(ds, lineNo, fields))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%s: dataset invariant violated: %w", path, err)
	}
	return ds, nil
}

// buildRecord turns one line's fields into a Record, coercing the designated
// numeric column. A non-empty cell that fails coercion keeps its text and is
// recorded as a CoercionWarning on the Dataset; empty cells are simply
// missing values and produce no warning.
func buildRecord(ds *model.Dataset, lineNo int, fields []string) model.Record {
	rec := model.Record{Line: lineNo, Cells: make(map[string]model.Cell, len(ds.Columns))}
	for i, col := range ds.Columns {
		cell := model.Cell{Text: fields[i]}
		if col == ds.NumericColumn {
			trimmed := strings.TrimSpace(fields[i])
			if n, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != "" {
				cell.Number = n
				cell.Numeric = true
			} else if trimmed != "" {
				ds.Warnings = append(ds.Warnings, model.CoercionWarning{
					Line:   lineNo,
					Column: col,
					Value:  fields[i],
				})
			}
		}
		rec.Cells[col] = cell
	}
	return rec
}

// splitAndTrim splits the header line and trims whitespace from each name.
func splitAndTrim(line, delim string) []string {
	parts := strings.Split(line, delim)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// allEmpty reports whether every field is blank after trimming.
func allEmpty(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
