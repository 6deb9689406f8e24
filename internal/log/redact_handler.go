package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// sensitiveParams contains query parameter names whose values should
// never appear in log output. Script URLs routinely embed API keys and
// tokens (e.g. maps.googleapis.com/maps/api/js?key=...), and scan logs
// are often attached to review tickets verbatim.
var sensitiveParams = map[string]bool{
	"key":           true,
	"apikey":        true,
	"api_key":       true,
	"api-key":       true,
	"token":         true,
	"access_token":  true,
	"auth":          true,
	"authorization": true,
	"secret":        true,
	"client_secret": true,
	"signature":     true,
	"sig":           true,
	"password":      true,
	"session":       true,
	"sid":           true,
}

// MaskValue is the string used to replace sensitive parameter values.
const MaskValue = "***REDACTED***"

// RedactHandler wraps an slog.Handler to mask credential-bearing query
// parameters in logged URLs. It intercepts log records and rewrites
// string attribute values that contain a query string before passing
// them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than redacting at
// call sites because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites cannot forget to redact
type RedactHandler struct {
	// handler is the underlying slog handler that receives redacted records.
	handler slog.Handler
}

// NewRedactHandler creates a new RedactHandler wrapping the given handler.
// If handler is nil, the returned RedactHandler uses slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are redacted before being added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redactedAttrs[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(redactedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr redacts a single attribute, recursively handling groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redactedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redactedAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redactedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if masked, changed := RedactURL(a.Value.String()); changed {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// RedactURL masks the values of sensitive query parameters in a URL
// string. The second return value reports whether anything was masked.
// Non-URL strings and URLs without a query string pass through unchanged.
func RedactURL(s string) (string, bool) {
	qIdx := strings.IndexByte(s, '?')
	if qIdx < 0 || qIdx == len(s)-1 {
		return s, false
	}

	base, query := s[:qIdx], s[qIdx+1:]
	values, err := url.ParseQuery(query)
	if err != nil {
		return s, false
	}

	changed := false
	for name := range values {
		if sensitiveParams[strings.ToLower(name)] {
			values[name] = []string{MaskValue}
			changed = true
		}
	}
	if !changed {
		return s, false
	}

	// Rebuild preserving original parameter order.
	parts := strings.Split(query, "&")
	for i, part := range parts {
		name, _, found := strings.Cut(part, "=")
		if found && sensitiveParams[strings.ToLower(name)] {
			parts[i] = name + "=" + MaskValue
		}
	}
	return base + "?" + strings.Join(parts, "&"), true
}

// NewRedactLogger creates a new slog.Logger that masks credentials in
// logged URLs.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewRedactLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewRedactHandler(textHandler))
}
