package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// sensitiveColumns contains column and attribute names whose values should
// always be masked. Matching is case-insensitive on the trimmed name.
var sensitiveColumns = map[string]bool{
	// Contact data
	"email":  true,
	"e-mail": true,
	"mail":   true,
	"phone":  true,

	// Credentials
	"password": true,
	"passwd":   true,
	"secret":   true,
	"token":    true,
	"api_key":  true,
	"apikey":   true,
	"api-key":  true,

	// Government and payment identifiers
	"ssn":         true,
	"credit_card": true,
	"creditcard":  true,
	"iban":        true,
}

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***MASKED***"

// MaskHandler wraps an slog.Handler to redact cell contents from
// privacy-sensitive columns. It intercepts log records and masks attribute
// values before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because it integrates seamlessly with standard slog APIs and works with
// any underlying handler (text, JSON, etc.).
type MaskHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewMaskHandler creates a new MaskHandler wrapping the given handler.
// If handler is nil, the returned MaskHandler uses slog.Default().Handler().
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying
// handler. Two passes are needed: the first finds whether the record names
// a sensitive column, the second rebuilds the attribute list.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	sensitiveRecord := false
	r.Attrs(func(a slog.Attr) bool {
		if strings.EqualFold(a.Key, "column") && isSensitiveName(a.Value.String()) {
			sensitiveRecord = true
			return false
		}
		return true
	})

	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a, sensitiveRecord))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a, false)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
// When sensitiveRecord is true, "value" attributes are masked because the
// record's "column" attribute named a sensitive column.
func (h *MaskHandler) maskAttr(a slog.Attr, sensitiveRecord bool) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr, sensitiveRecord)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if isSensitiveName(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if sensitiveRecord && strings.EqualFold(a.Key, "value") {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// isSensitiveName reports whether a column or attribute name refers to
// data that must not appear in logs.
func isSensitiveName(name string) bool {
	return sensitiveColumns[strings.ToLower(strings.TrimSpace(name))]
}

// NewMaskLogger creates a new slog.Logger with privacy masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger suitable for slog.SetDefault() or for passing to
// components that accept *slog.Logger.
func NewMaskLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewMaskHandler(textHandler))
}
