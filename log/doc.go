// Package log is the structured logger used throughout boil. It wraps
// [log/slog] with a TRACE level, immutable functional-option configuration,
// and a colorized handler for terminals.
//
// # Loggers
//
// [Make] builds a [Logger] for a writer; [Logger.Wrap] derives one with
// different options and [Logger.With] one that adds attributes to every
// record:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//	logger = logger.With(slog.String("command", "gen"))
//	logger.Info("generated", slog.String("output", "boil_gen.go"))
//
// The zero Logger discards everything, so packages can accept a Logger
// through an option and log unconditionally.
//
// Each level has a method taking a [context.Context] and one that uses
// [DefaultContextProvider] instead.
//
// # Output
//
// [FormatJSON] writes one object per record and [FormatText] writes
// key=value pairs. With [WithPretty] both are colorized with lipgloss when
// the output is a terminal, attribute values are unquoted, and pretty JSON
// is spread over one line per field. Grouped attributes and
// [slog.LogValuer] values are flattened into dotted keys.
//
// # Package Logger
//
// [Config] reconfigures the logger returned by [Default] and used by the
// package functions [Trace], [Debug], [Info], [Warn] and [Error]. [Level]
// and [Format] implement the text marshaling interfaces so they can be set
// from command-line flags and configuration files.
package log
