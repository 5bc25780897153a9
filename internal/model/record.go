package model

import "fmt"

// Cell is a single field value of a Record.
//
// Cells are read as text. When the cell belongs to the Dataset's designated
// numeric column and the text parses as a number, Number holds the parsed
// value and Numeric is true. A cell that fails coercion keeps its raw text
// so it remains visible in rendered output.
type Cell struct {
	// Text is the raw field text as read from the input file.
	Text string `json:"text"`

	// Number is the coerced numeric value. Only meaningful when Numeric is true.
	Number float64 `json:"number,omitempty"`

	// Numeric reports whether Text was successfully coerced to a number.
	Numeric bool `json:"numeric,omitempty"`
}

// Record is one row of tabular data: a mapping from column name to Cell.
// Field order is defined by the owning Dataset's Columns sequence, not by
// the map itself.
type Record struct {
	// Line is the 1-based line number of this record in the input file.
	Line int `json:"line"`

	// Cells maps column names to field values.
	Cells map[string]Cell `json:"cells"`
}

// Get returns the cell for the given column.
// A missing column yields a zero Cell; Load guarantees this never happens
// for validated Datasets.
func (r Record) Get(column string) Cell {
	return r.Cells[column]
}

// CoercionWarning describes a cell in the designated numeric column that
// could not be parsed as a number. The cell keeps its raw text; the warning
// lets callers surface the failure to the user.
type CoercionWarning struct {
	// Line is the 1-based input line the cell came from.
	Line int `json:"line"`

	// Column is the designated numeric column name.
	Column string `json:"column"`

	// Value is the raw cell text that failed to parse.
	Value string `json:"value"`
}

// Dataset is the full in-memory table loaded from one input file.
//
// A Dataset is exclusively owned by the invocation that loaded it and is
// never mutated after Load returns. Invariant: every Record's cell keys
// equal Columns, verified by Validate.
type Dataset struct {
	// Source is the path of the input file the Dataset was loaded from.
	Source string `json:"source"`

	// Columns is the ordered column-name sequence from the header line.
	Columns []string `json:"columns"`

	// NumericColumn names the column whose cells were coerced to numbers.
	// Empty when no coercion was requested or the column does not exist.
	NumericColumn string `json:"numericColumn,omitempty"`

	// Records holds the rows in input order.
	Records []Record `json:"records"`

	// Skipped counts malformed lines excluded under the skip policy.
	Skipped int `json:"skipped,omitempty"`

	// Warnings lists numeric coercion failures in input order.
	Warnings []CoercionWarning `json:"warnings,omitempty"`
}

// NewDataset creates an empty Dataset with the given column sequence.
func NewDataset(source string, columns []string) *Dataset {
	return &Dataset{
		Source:  source,
		Columns: columns,
		Records: make([]Record, 0),
	}
}

// Rows returns the number of records in the Dataset.
func (d *Dataset) Rows() int {
	return len(d.Records)
}

// Empty reports whether the Dataset holds no records.
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// HasColumn reports whether the Dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Validate checks the Dataset invariant: every Record's cell keys equal the
// Columns sequence. It returns a descriptive error for the first violation.
//
// Design decision: Load calls Validate before returning so callers can rely
// on the invariant instead of defensively re-checking it per record.
func (d *Dataset) Validate() error {
	for i, rec := range d.Records {
		if len(rec.Cells) != len(d.Columns) {
			return fmt.Errorf("record %d (line %d): has %d cells, dataset has %d columns",
				i, rec.Line, len(rec.Cells), len(d.Columns))
		}
		for _, col := range d.Columns {
			if _, ok := rec.Cells[col]; !ok {
				return fmt.Errorf("record %d (line %d): missing column %q", i, rec.Line, col)
			}
		}
	}
	return nil
}
