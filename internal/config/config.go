package config

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The input file, delimiter, and numeric column defaults match the dataset
// shape this tool was originally built around.
const (
	// DefaultInputFile is the input path used when no argument is given.
	DefaultInputFile = "username.csv"

	// DefaultDelimiter is the field separator. Semicolon-separated exports
	// are the common case for the source data.
	DefaultDelimiter = ";"

	// DefaultNumericColumn is the column coerced to a numeric type when it
	// exists in the input. Files without the column are unaffected.
	DefaultNumericColumn = "Identifier"

	// DefaultFormat is the display format used when --format is not given.
	DefaultFormat = "grid"

	// DefaultEncoding is the input charset.
	DefaultEncoding = "utf-8"

	// DefaultBatchSize is the number of files processed concurrently when
	// several inputs are given. Loads are short; a small limit keeps file
	// descriptors bounded without serializing everything.
	DefaultBatchSize = 4

	// DefaultHistoryLimit is how many runs the history command lists.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "usertab"

	// DefaultConfigFile is the default profile file name.
	DefaultConfigFile = ".usertab"
)

// Config holds all configuration options for usertab.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Inputs is the list of input file paths to load and render.
	Inputs []string

	// Delimiter is the single-character field separator.
	Delimiter string

	// NumericColumn names the column coerced to a numeric type.
	// An empty string disables coercion.
	NumericColumn string

	// Format is the display format name. Validated by render.ParseFormat at
	// the point of use so the error surfaces as an unsupported-format kind.
	Format string

	// Encoding is the input charset name.
	Encoding string

	// ShowStats appends the per-column statistics after the rendered table.
	ShowStats bool

	// SkipMalformed excludes malformed lines instead of failing the load.
	SkipMalformed bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the text table.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the text
	// table. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// BatchSize is the number of files processed concurrently when multiple
	// inputs are given.
	BatchSize int

	// ConfigFilePath is the path to the profile file. If empty, the tool
	// searches for .usertab in the current directory and then in the user's
	// home directory.
	ConfigFilePath string

	// Profiles holds per-file settings loaded from the profile file.
	Profiles *File

	// SaveHistory records each rendered file in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/usertab on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (delimiter, format,
// batch size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Delimiter:     DefaultDelimiter,
		NumericColumn: DefaultNumericColumn,
		Format:        DefaultFormat,
		Encoding:      DefaultEncoding,
		BatchSize:     DefaultBatchSize,
		SaveHistory:   true,
	}
}

// XDGDataDir returns the XDG data directory for usertab.
// On Linux: ~/.local/share/usertab
// On macOS: ~/Library/Application Support/usertab
// On Windows: %LOCALAPPDATA%\usertab
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for usertab.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing, before any file is
// read, to fail fast with clear messages. The first error found is returned
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return ErrInvalidDelimiter
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}
