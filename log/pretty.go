package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// field is one flattened attribute. Keys of grouped attributes are joined
// with '.'.
type field struct {
	key string
	val slog.Value
}

// styles colors the parts of a record. Colors are dropped when the output
// is not a terminal.
type styles struct {
	key, str, num, yes, no, dur, when lipgloss.Style
	trace, debug, info, warn, error   lipgloss.Style
}

func makeStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return styles{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		when:  fg("4"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		error: fg("1").Bold(true),
	}
}

func (s styles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.error
	case l >= slog.LevelWarn:
		return s.warn
	case l >= slog.LevelInfo:
		return s.info
	case l >= slog.LevelDebug:
		return s.debug
	default:
		return s.trace
	}
}

// prettyHandler writes colorized records, either as key=value pairs on one
// line or as an indented object with one field per line.
type prettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	format Format
	opts   slog.HandlerOptions
	style  styles
	prefix string  // open groups, each followed by '.'
	fields []field // from WithAttrs
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		w:      w,
		mu:     &sync.Mutex{},
		format: format,
		opts:   *opts,
		style:  makeStyles(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.fields = flatten(append([]field(nil), h.fields...), h.prefix, attrs)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix += name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]pair, 0, 4+len(h.fields)+r.NumAttrs())

	if a := h.replace(slog.Time(slog.TimeKey, r.Time)); !r.Time.IsZero() && a.Key != "" {
		parts = append(parts, pair{a.Key, h.value(a.Value)})
	}

	if a := h.replace(slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		parts = append(parts, pair{a.Key, h.style.level(r.Level).Render(a.Value.String())})
	}

	if src := r.Source(); h.opts.AddSource && src != nil {
		parts = append(parts, pair{slog.SourceKey,
			h.style.str.Render(src.File + ":" + strconv.Itoa(src.Line))})
	}

	parts = append(parts, pair{slog.MessageKey, h.style.str.Render(r.Message)})

	fields := append([]field(nil), h.fields...)
	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, []slog.Attr{a})

		return true
	})

	for _, f := range fields {
		parts = append(parts, pair{f.key, h.value(f.val)})
	}

	var buf bytes.Buffer

	if h.format == FormatJSON {
		buf.WriteString("{\n")

		for i, p := range parts {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString("  " + h.style.key.Render(p.key) + ": " + p.val)
		}

		buf.WriteString("\n}\n")
	} else {
		for i, p := range parts {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.style.key.Render(p.key) + "=" + p.val)
		}

		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// pair is a rendered key and value.
type pair struct{ key, val string }

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// value renders v unquoted, colored by kind.
func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.when.Render(v.Time().Format(time.RFC3339))

	default:
		if v.Any() == nil {
			return h.style.key.Render("null")
		}

		return h.style.str.Render(v.String())
	}
}

// flatten appends attrs to fields, resolving [slog.LogValuer] values and
// expanding groups into dotted keys.
func flatten(fields []field, prefix string, attrs []slog.Attr) []field {
	for _, a := range attrs {
		v := a.Value.Resolve()

		if v.Kind() == slog.KindGroup {
			p := prefix
			if a.Key != "" {
				p += a.Key + "."
			}

			fields = flatten(fields, p, v.Group())

			continue
		}

		if a.Key == "" {
			continue
		}

		fields = append(fields, field{prefix + a.Key, v})
	}

	return fields
}
