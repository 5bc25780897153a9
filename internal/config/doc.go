// Package config holds the runtime configuration for usertab.
//
// Config is a flat struct populated from CLI flags and passed through the
// application via dependency injection rather than global state. Per-file
// defaults can also come from a YAML profile file (.usertab) found in the
// current directory or the user's home directory; explicit CLI flags always
// win over profile values.
package config
