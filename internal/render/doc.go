// Package render turns a Dataset into an aligned text table.
//
// Each DisplayFormat is a pure rendering-style tag: same Dataset, same
// format, same output. Row order and column order of the Dataset are
// preserved exactly. Column widths are computed with display-width-aware
// measurement (mattn/go-runewidth) so East Asian wide characters align.
//
// The "github" format is delimiter-preserving: splitting its data rows on
// '|' and trimming padding recovers the original cell values.
package render
