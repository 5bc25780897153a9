package loader

import "errors"

// Load failure kinds.
// These errors are wrapped with file and line context by Load; callers use
// errors.Is() for programmatic handling while messages stay human-readable.
var (
	// ErrFileNotFound is returned when the input path does not resolve to a
	// readable file. The load is terminal; nothing is retried.
	ErrFileNotFound = errors.New("input file not found")

	// ErrMalformedInput is returned when a data line's field count does not
	// match the header's field count. Under the default policy the whole
	// load fails; under Options.SkipMalformed the line is excluded instead.
	ErrMalformedInput = errors.New("malformed input line")

	// ErrEmptyInput is returned when the file contains no header line at all.
	// A header-only file is valid and yields an empty Dataset; a zero-byte
	// file has no column sequence to build a Dataset from.
	ErrEmptyInput = errors.New("input file has no header line")

	// ErrUnsupportedEncoding is returned when Options.Encoding names a
	// charset this tool cannot decode.
	ErrUnsupportedEncoding = errors.New("unsupported input encoding")
)
