package log

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/docfetch/internal/secrets"
)

// sensitiveKeys contains attribute keys that are always masked,
// regardless of what the value looks like.
var sensitiveKeys = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"refresh_token": true,
	"private_key":   true,
	"secret_key":    true,
	"credential":    true,
	"credentials":   true,
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***REDACTED***"

// MaskHandler wraps an slog.Handler and masks attribute values whose key
// names or value shapes indicate credentials.
//
// Design decision: We wrap a handler rather than building a custom logger
// because:
//  1. It composes with any underlying handler (text, JSON)
//  2. Call sites keep using plain slog APIs
//  3. Masking applies uniformly, including to attributes added via With
type MaskHandler struct {
	handler  slog.Handler
	patterns []secrets.Pattern
}

// NewMaskHandler creates a MaskHandler wrapping the given handler.
// If handler is nil, slog.Default()'s handler is used.
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{
		handler:  handler,
		patterns: secrets.DefaultPatterns(),
	}
}

// Enabled delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler with the given attributes added, masked.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs), patterns: h.patterns}
}

// WithGroup returns a handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name), patterns: h.patterns}
}

// maskAttr masks a single attribute if needed.
// Group attributes are masked recursively.
func (h *MaskHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		maskedGroup := make([]slog.Attr, len(group))
		for i, ga := range group {
			maskedGroup[i] = h.maskAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedGroup...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		value := a.Value.String()
		for _, p := range h.patterns {
			if p.Regexp.MatchString(value) {
				return slog.String(a.Key, MaskValue)
			}
		}
	}

	return a
}
