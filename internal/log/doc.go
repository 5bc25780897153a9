// Package log provides privacy-aware logging built on the standard slog
// package.
//
// usertab renders user tables, so log lines can carry raw cell contents:
// a numeric coercion warning logs the offending value, and that value may
// come from a column like "Email" or "Password". The MaskHandler redacts
// such values before they reach the underlying handler.
//
// # Masking rules
//
// An attribute is masked when:
//   - its own key names sensitive data (email, password, token, ...), or
//   - it is a "value" attribute of a record that also carries a "column"
//     attribute naming a sensitive column.
//
// Even in verbose mode, sensitive cell contents are masked to prevent
// accidental exposure in logs that may be shared or stored.
//
// # Usage
//
//	logger := log.NewMaskLogger(os.Stderr, verbose)
//	logger.Warn("numeric coercion failed",
//	    "column", "Email",
//	    "value", "alice@example.com", // masked
//	)
//	slog.SetDefault(logger)
package log
