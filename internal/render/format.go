package render

import (
	"errors"
	"fmt"
	"strings"
)

// DisplayFormat selects a text-rendering style for tabular output.
// It carries no state; the tag alone determines padding, separator
// characters, and border drawing.
type DisplayFormat string

// Supported display formats. The names match the ones accepted by the
// --format flag and by the "format" key in .usertab profiles.
const (
	// FormatPlain pads columns with spaces and draws no separators.
	FormatPlain DisplayFormat = "plain"

	// FormatSimple underlines the header with dashes, no borders.
	FormatSimple DisplayFormat = "simple"

	// FormatGrid draws ASCII borders around every row. Default.
	FormatGrid DisplayFormat = "grid"

	// FormatFancyGrid draws Unicode box-drawing borders.
	FormatFancyGrid DisplayFormat = "fancy_grid"

	// FormatGitHub emits a GitHub-flavored pipe table.
	FormatGitHub DisplayFormat = "github"

	// FormatMarkdown emits a pipe table through the markdown library.
	FormatMarkdown DisplayFormat = "markdown"
)

// ErrUnsupportedFormat is returned when an unrecognized DisplayFormat tag is
// requested. No partial output is produced.
var ErrUnsupportedFormat = errors.New("unsupported display format")

// formats lists the supported tags in the order they are presented to users.
var formats = []DisplayFormat{
	FormatPlain,
	FormatSimple,
	FormatGrid,
	FormatFancyGrid,
	FormatGitHub,
	FormatMarkdown,
}

// descriptions gives a one-line summary per format for the formats command.
var descriptions = map[DisplayFormat]string{
	FormatPlain:     "space-padded columns, no separators",
	FormatSimple:    "header underlined with dashes",
	FormatGrid:      "ASCII borders around every row (default)",
	FormatFancyGrid: "Unicode box-drawing borders",
	FormatGitHub:    "GitHub-flavored pipe table",
	FormatMarkdown:  "pipe table via the markdown library",
}

// Formats returns the supported display formats in presentation order.
func Formats() []DisplayFormat {
	out := make([]DisplayFormat, len(formats))
	copy(out, formats)
	return out
}

// String returns the tag name.
func (f DisplayFormat) String() string {
	return string(f)
}

// Description returns a one-line summary of the format's style.
func (f DisplayFormat) Description() string {
	return descriptions[f]
}

// ParseFormat resolves a format name to its DisplayFormat tag.
// Unknown names wrap ErrUnsupportedFormat and list the valid tags.
func ParseFormat(name string) (DisplayFormat, error) {
	f := DisplayFormat(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, name, formatNames())
}

// formatNames joins the supported tags for error messages.
func formatNames() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
