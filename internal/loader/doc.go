// Package loader reads delimited text files into model.Dataset values.
//
// The input format is deliberately simple: the first line holds column
// names, every following line holds one record, and fields are separated
// by a single configurable delimiter character (default ';'). There are
// no quoting or escaping rules; a field cannot contain the delimiter.
//
// Error handling policy:
//   - A missing or unreadable file wraps ErrFileNotFound.
//   - A line whose field count differs from the header wraps
//     ErrMalformedInput and fails the whole load, unless
//     Options.SkipMalformed excludes the line and keeps the rest.
//   - A cell in the designated numeric column that does not parse is never
//     an error: the cell keeps its raw text, is excluded from statistics,
//     and a CoercionWarning is recorded on the Dataset.
package loader
