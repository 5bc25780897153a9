package render

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nao1215/markdown"

	"github.com/usertab/usertab/internal/model"
)

// Render produces the aligned text table for a Dataset in the given format.
//
// The header row comes first, followed by one row per Record in Dataset
// order. Cells of the designated numeric column that failed coercion are
// rendered with a trailing '?' so the unparsed value stays visible.
// An unrecognized format returns ErrUnsupportedFormat and no output.
func Render(ds *model.Dataset, format DisplayFormat) (string, error) {
	header, rows := tableCells(ds)

	switch format {
	case FormatPlain:
		return renderPadded(ds, header, rows, nil), nil
	case FormatSimple:
		return renderPadded(ds, header, rows, func(w int) string {
			return strings.Repeat("-", w)
		}), nil
	case FormatGrid:
		return renderBordered(ds, header, rows, gridStyle), nil
	case FormatFancyGrid:
		return renderBordered(ds, header, rows, fancyGridStyle), nil
	case FormatGitHub:
		return renderBordered(ds, header, rows, githubStyle), nil
	case FormatMarkdown:
		return renderMarkdown(header, rows)
	default:
		_, err := ParseFormat(string(format))
		if err == nil {
			// A known tag missing from this switch is a programming error.
			err = ErrUnsupportedFormat
		}
		return "", err
	}
}

// tableCells flattens the Dataset into header names and row cell texts.
func tableCells(ds *model.Dataset) ([]string, [][]string) {
	rows := make([][]string, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			row[i] = CellText(ds, rec, col)
		}
		rows = append(rows, row)
	}
	return ds.Columns, rows
}

// CellText returns the display text for one cell, flagging unparsed cells
// of the numeric column with a trailing '?'. Report writers that build
// their own tables use it so the flag policy stays uniform across outputs.
func CellText(ds *model.Dataset, rec model.Record, col string) string {
	cell := rec.Get(col)
	if col == ds.NumericColumn && !cell.Numeric && strings.TrimSpace(cell.Text) != "" {
		return cell.Text + "?"
	}
	return cell.Text
}

// columnWidths computes the display width of each column over header and rows.
func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// pad aligns a cell within its column: the numeric column is right-aligned,
// everything else left-aligned.
func pad(s string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

// numericIndex returns the column index of the Dataset's numeric column,
// or -1 when no column is designated.
func numericIndex(ds *model.Dataset) int {
	for i, col := range ds.Columns {
		if col != "" && col == ds.NumericColumn {
			return i
		}
	}
	return -1
}

// renderPadded implements the border-less formats (plain, simple). Columns
// are joined by two spaces; headerRule, when non-nil, yields the underline
// drawn below the header.
func renderPadded(ds *model.Dataset, header []string, rows [][]string, headerRule func(int) string) string {
	widths := columnWidths(header, rows)
	numIdx := numericIndex(ds)

	var sb strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = pad(cell, widths[i], i == numIdx)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	writeRow(header)
	if headerRule != nil {
		rules := make([]string, len(widths))
		for i, w := range widths {
			rules[i] = headerRule(w)
		}
		sb.WriteString(strings.Join(rules, "  "))
		sb.WriteString("\n")
	}
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// rule describes one horizontal border line.
type rule struct {
	left, fill, junction, right string
}

// borderStyle describes a bordered table format. Nil rules are skipped.
type borderStyle struct {
	// top, belowHeader, between, bottom are the horizontal lines.
	top, belowHeader, between, bottom *rule

	// left, sep, right frame the cells of a data or header row.
	left, sep, right string
}

var gridStyle = borderStyle{
	top:         &rule{"+", "-", "+", "+"},
	belowHeader: &rule{"+", "=", "+", "+"},
	between:     &rule{"+", "-", "+", "+"},
	bottom:      &rule{"+", "-", "+", "+"},
	left:        "| ",
	sep:         " | ",
	right:       " |",
}

var fancyGridStyle = borderStyle{
	top:         &rule{"╒", "═", "╤", "╕"},
	belowHeader: &rule{"╞", "═", "╪", "╡"},
	between:     &rule{"├", "─", "┼", "┤"},
	bottom:      &rule{"╘", "═", "╧", "╛"},
	left:        "│ ",
	sep:         " │ ",
	right:       " │",
}

var githubStyle = borderStyle{
	belowHeader: &rule{"|", "-", "|", "|"},
	left:        "| ",
	sep:         " | ",
	right:       " |",
}

// renderBordered implements the framed formats (grid, fancy_grid, github).
func renderBordered(ds *model.Dataset, header []string, rows [][]string, style borderStyle) string {
	widths := columnWidths(header, rows)
	numIdx := numericIndex(ds)

	var sb strings.Builder
	writeRule := func(r *rule) {
		if r == nil {
			return
		}
		sb.WriteString(r.left)
		for i, w := range widths {
			if i > 0 {
				sb.WriteString(r.junction)
			}
			sb.WriteString(strings.Repeat(r.fill, w+2))
		}
		sb.WriteString(r.right)
		sb.WriteString("\n")
	}
	writeRow := func(cells []string) {
		sb.WriteString(style.left)
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString(style.sep)
			}
			sb.WriteString(pad(cell, widths[i], i == numIdx))
		}
		sb.WriteString(style.right)
		sb.WriteString("\n")
	}

	writeRule(style.top)
	writeRow(header)
	writeRule(style.belowHeader)
	for i, row := range rows {
		if i > 0 {
			writeRule(style.between)
		}
		writeRow(row)
	}
	writeRule(style.bottom)
	return sb.String()
}

// renderMarkdown emits the table through the markdown library, the same way
// report writers build their document tables.
func renderMarkdown(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	if err := md.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
