package log

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace], used for per-line template events.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a logger built without [WithLevel].
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the names of the named levels, most verbose first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range levels {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// String returns the lower-case level name, or the slog rendering with an
// offset for levels between the named ones.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}

	if off := int(l - LevelTrace); l < LevelDebug {
		if off > 0 {
			return "trace+" + strconv.Itoa(off)
		}

		return "trace" + strconv.Itoa(off)
	}

	return strings.ToLower(slog.Level(l).String())
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// in [Levels], case-insensitively, optionally followed by a signed offset
// as in "info+2".
func (l *Level) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	if rest, ok := cutFold(s, "trace"); ok {
		off := 0

		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return fmt.Errorf("log level %q: %w", s, err)
			}

			off = n
		}

		*l = LevelTrace + Level(off)

		return nil
	}

	var sl slog.Level
	if err := sl.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("log level %q: want one of %s", s,
			strings.Join(slices.Collect(Levels()), ", "))
	}

	*l = Level(sl)

	return nil
}

// cutFold is [strings.CutPrefix] ignoring case.
func cutFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}

	return s[len(prefix):], true
}

// Format selects the layout of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format of a logger built without [WithFormat].
const DefaultFormat = FormatJSON

// Formats yields the names of the supported formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatJSON, FormatText} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "text":
		*f = FormatText
	case "json":
		*f = FormatJSON
	default:
		return fmt.Errorf("log format %q: want text or json", text)
	}

	return nil
}
