package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout of a logger built without
// [WithTimeLayout].
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether loggers include the calling file and line by
// default.
const DefaultCaller = false

// DefaultPretty reports whether loggers colorize their output by default.
const DefaultPretty = true

// config is the immutable configuration of a [Logger]. Options return a
// modified copy, so a config is never shared between loggers.
type config struct {
	output io.Writer
	layout string // "" omits timestamps
	level  Level
	format Format
	caller bool
	pretty bool
}

// Option modifies a logger configuration.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	return config{}.with(append([]Option{WithDefaults(w)}, opts...)...)
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// handler builds the slog handler for c.
func (c config) handler() slog.Handler {
	if c.output == nil {
		return slog.DiscardHandler
	}

	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replace,
	}

	switch {
	case c.pretty && (c.format == FormatText || c.format == FormatJSON):
		return newPrettyHandler(c.output, c.format, opts)

	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)

	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)

	default:
		return slog.DiscardHandler
	}
}

// replace renders timestamps with the configured layout and levels with
// their [Level] names.
func (c config) replace(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok {
			return a
		}

		if c.layout == "" {
			return slog.Attr{}
		}

		return slog.String(a.Key, t.Format(c.layout))

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(a.Key, strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

// WithDefaults resets every setting to its default and directs output to w.
// A nil w discards output.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		if w == nil {
			w = io.Discard
		}

		return config{
			output: w,
			layout: DefaultTimeLayout,
			level:  DefaultLevel,
			format: DefaultFormat,
			caller: DefaultCaller,
			pretty: DefaultPretty,
		}
	}
}

// WithOutput directs log records to w. A nil w discards them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel discards records below level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the record layout.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout.
//
// Named layouts from the [time] package are matched ignoring case and
// punctuation ("RFC3339", "rfc-3339-nano", "kitchen"), as are the short
// names "ms", "us" and "ns" for the Stamp layouts. Any other text is used
// verbatim with [time.Time.Format]. An empty layout or "none" omits
// timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.layout = timeLayout(layout)

		return c
	}
}

// WithCaller includes the calling file and line in each record.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty colorizes records when the output is a terminal. Pretty JSON is
// written one field per line.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

var namedLayouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822z":     time.RFC822Z,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"ms":          time.StampMilli,
	"stampmicro":  time.StampMicro,
	"us":          time.StampMicro,
	"stampnano":   time.StampNano,
	"ns":          time.StampNano,
	"none":        "",
}

func timeLayout(layout string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		default:
			return -1
		}
	}, layout)

	if key == "" {
		return ""
	}

	if std, ok := namedLayouts[key]; ok {
		return std
	}

	return layout
}
