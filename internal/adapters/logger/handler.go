package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"go.trai.ch/breakdown/internal/ui/output"
	"go.trai.ch/breakdown/internal/ui/style"
)

// PrettyHandler is a slog.Handler that produces human-readable, colored output.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record. Continuation lines of a
// multi-line message are indented under the text that follows the level icon.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	lines := strings.Split(r.Message, "\n")
	indent := ""
	if icon != "" {
		lines[0] = icon + " " + lines[0]
		indent = strings.Repeat(" ", utf8.RuneCountInString(icon)+1)
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			if line != "" {
				line = indent + line
			}
		}
		b.WriteString(h.out.String(line).Foreground(color).String())
		if i == 0 {
			b.WriteString(h.renderAttrs(r))
		}
	}
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

// levelStyle returns the icon and color of a level. Info has no icon.
func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Iris))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// renderAttrs renders handler and record attributes as " key=value" pairs, dimmed.
func (h *PrettyHandler) renderAttrs(r slog.Record) string {
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		parts = appendAttr(parts, "", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.group, attr)
		return true
	})
	if len(parts) == 0 {
		return ""
	}
	return " " + h.out.String(strings.Join(parts, " ")).Foreground(termenv.RGBColor(string(style.Slate))).Faint().String()
}

// WithAttrs returns a new Handler with the given attributes appended.
// Attributes added under a group keep that group's prefix.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newAttrs := slices.Clip(h.attrs)
	for _, attr := range attrs {
		if h.group != "" {
			attr = slog.Group(h.group, attr)
		}
		newAttrs = append(newAttrs, attr)
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler whose later attributes are nested under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

// appendAttr flattens attr into dotted key=value pairs. Empty attributes are
// dropped and groups without a key are inlined.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}

	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, child := range attr.Value.Group() {
			parts = appendAttr(parts, key, child)
		}
		return parts
	}
	return append(parts, key+"="+attr.Value.String())
}
