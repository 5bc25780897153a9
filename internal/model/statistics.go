package model

// ColumnStats holds the aggregate summary for a single column.
//
// Numeric columns carry count, min, max, mean, and population standard
// deviation over the successfully coerced cells. Non-numeric columns are
// reported only by their distinct-value count.
type ColumnStats struct {
	// Column is the column name.
	Column string `json:"column"`

	// Numeric reports whether this column holds coerced numeric values.
	Numeric bool `json:"numeric"`

	// Count is the number of successfully coerced cells for numeric columns.
	Count int `json:"count"`

	// Distinct is the number of distinct cell values for non-numeric columns.
	Distinct int `json:"distinct,omitempty"`

	// Min is the smallest coerced value. Zero when Count is zero.
	Min float64 `json:"min"`

	// Max is the largest coerced value. Zero when Count is zero.
	Max float64 `json:"max"`

	// Mean is the arithmetic mean of the coerced values. Zero when Count is zero.
	Mean float64 `json:"mean"`

	// Std is the population standard deviation. Zero when Count is zero.
	Std float64 `json:"std"`
}

// Statistics is the per-column summary computed from one Dataset.
// It is a pure function of the Dataset: same input, same output.
type Statistics struct {
	// Source is the input file the summarized Dataset was loaded from.
	Source string `json:"source"`

	// Rows is the total number of records in the Dataset.
	Rows int `json:"rows"`

	// Columns holds one entry per Dataset column, in Dataset column order.
	Columns []ColumnStats `json:"columns"`
}

// ByColumn returns the stats entry for the named column.
// The second return value reports whether the column exists.
func (s *Statistics) ByColumn(name string) (ColumnStats, bool) {
	for _, cs := range s.Columns {
		if cs.Column == name {
			return cs, true
		}
	}
	return ColumnStats{}, false
}
