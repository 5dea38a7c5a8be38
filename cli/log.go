package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/boil/log"
)

// logLevel configures the package logger's level as a side effect of
// parsing, so that messages logged while kong is still parsing already
// honor --log-level.
type logLevel struct{ log.Level }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	if err := l.Level.UnmarshalText(text); err != nil {
		return err
	}

	log.Config(log.WithLevel(l.Level))

	return nil
}

// logFormat configures the package logger's format as a side effect of
// parsing.
type logFormat struct{ log.Format }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	if err := f.Format.UnmarshalText(text); err != nil {
		return err
	}

	log.Config(log.WithFormat(f.Format))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"    help:"Set log level (${logLevels})."                  placeholder:"LEVEL"`
	Format     logFormat `default:"text"    help:"Set log format (${logFormats})."                placeholder:"FORMAT"`
	TimeLayout string    `default:"RFC3339" help:"Set timestamp format (empty disables it)."`
	Caller     bool      `default:"false"   help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"    help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ", "),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ", "),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logger flag, including those without a text
// unmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(f.Level.Level),
		log.WithFormat(f.Format.Format),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", f.Level.String()),
		slog.String("format", f.Format.String()),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags from args before kong parses them, so that the
// logger is configured regardless of flag position. Boolean flags are
// handled here because they have no text unmarshaler to hook.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		switch name {
		case "--":
			return

		case "--log-level", "--log-format":
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			if name == "--log-level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--no-log-pretty", "--log-caller", "--no-log-caller":
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			if strings.HasPrefix(name, "--no-") {
				enable = !enable
			}

			if strings.HasSuffix(name, "pretty") {
				f.Pretty = enable
				log.Config(log.WithPretty(enable))
			} else {
				f.Caller = enable
				log.Config(log.WithCaller(enable))
			}
		}
	}
}
