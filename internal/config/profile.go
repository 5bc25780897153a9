package config

import "path/filepath"

// Profile holds per-file settings for a single input file.
// Zero values mean "not set"; merge order is built-in defaults, then the
// profile file's defaults, then the per-file profile, then explicit CLI
// flags.
type Profile struct {
	// Delimiter is the single-character field separator for this file.
	Delimiter string `yaml:"delimiter,omitempty"`

	// NumericColumn names the column coerced to a numeric type.
	NumericColumn string `yaml:"numericColumn,omitempty"`

	// Format is the display format name for this file.
	Format string `yaml:"format,omitempty"`

	// Encoding is the input charset for this file.
	Encoding string `yaml:"encoding,omitempty"`

	// SkipMalformed excludes malformed lines instead of failing the load.
	SkipMalformed bool `yaml:"skipMalformed,omitempty"`
}

// File represents the structure of the .usertab profile file.
type File struct {
	// Defaults contains settings applied to every input file unless
	// overridden in a per-file profile.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Profiles maps input file basenames to their per-file settings.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// ProfileFor returns the effective profile for an input path.
// It merges the file's defaults with the per-file profile keyed by the
// path's basename.
func (cf *File) ProfileFor(path string) Profile {
	result := cf.Defaults

	p, ok := cf.Profiles[filepath.Base(path)]
	if !ok {
		return result
	}

	if p.Delimiter != "" {
		result.Delimiter = p.Delimiter
	}
	if p.NumericColumn != "" {
		result.NumericColumn = p.NumericColumn
	}
	if p.Format != "" {
		result.Format = p.Format
	}
	if p.Encoding != "" {
		result.Encoding = p.Encoding
	}
	if p.SkipMalformed {
		result.SkipMalformed = true
	}

	return result
}
