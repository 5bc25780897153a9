package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file is configured.
	// The CLI falls back to the default input file, so this only occurs
	// when a caller builds a Config by hand.
	ErrNoInput = errors.New("no input file specified")

	// ErrInvalidDelimiter is returned when the delimiter is not exactly one
	// character. The input format supports single-character separators only.
	ErrInvalidDelimiter = errors.New("invalid delimiter: must be a single character")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no files get processed.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")
)

// ErrConfigNotFound is returned when the profile file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
