package stats

import (
	"math"

	"github.com/usertab/usertab/internal/model"
)

// Describe summarizes a Dataset column by column.
//
// The designated numeric column is summarized by count, min, max, arithmetic
// mean, and population standard deviation over its successfully coerced
// cells. Every other column is summarized by its distinct-value count.
// Column order in the result matches the Dataset's column order.
func Describe(ds *model.Dataset) *model.Statistics {
	s := &model.Statistics{
		Source:  ds.Source,
		Rows:    ds.Rows(),
		Columns: make([]model.ColumnStats, 0, len(ds.Columns)),
	}

	for _, col := range ds.Columns {
		if col == ds.NumericColumn && ds.NumericColumn != "" {
			s.Columns = append(s.Columns, describeNumeric(ds, col))
			continue
		}
		s.Columns = append(s.Columns, describeText(ds, col))
	}
	return s
}

// describeNumeric aggregates the coerced cells of the numeric column using
// Welford's online algorithm, so a single pass yields mean and variance
// without accumulating the raw values.
func describeNumeric(ds *model.Dataset, col string) model.ColumnStats {
	cs := model.ColumnStats{Column: col, Numeric: true}

	var mean, m2 float64
	minV := math.Inf(1)
	maxV := math.Inf(-1)

	for _, rec := range ds.Records {
		cell := rec.Get(col)
		if !cell.Numeric {
			continue
		}
		cs.Count++
		x := cell.Number
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
		delta := x - mean
		mean += delta / float64(cs.Count)
		m2 += delta * (x - mean)
	}

	if cs.Count > 0 {
		cs.Min = minV
		cs.Max = maxV
		cs.Mean = mean
		cs.Std = math.Sqrt(m2 / float64(cs.Count))
	}
	return cs
}

// describeText counts distinct raw cell values, empty cells included once
// they occur; the count is of values actually present in the column.
func describeText(ds *model.Dataset, col string) model.ColumnStats {
	cs := model.ColumnStats{Column: col}

	seen := make(map[string]struct{})
	for _, rec := range ds.Records {
		text := rec.Get(col).Text
		if text == "" {
			continue
		}
		if _, ok := seen[text]; !ok {
			seen[text] = struct{}{}
		}
	}
	cs.Distinct = len(seen)
	return cs
}
