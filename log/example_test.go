package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/boil/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"))

	logger.Info("generated", slog.String("output", "boil_gen.go"), slog.Int("types", 2))
	logger.Debug("below the default level")
	// Output:
	// level=INFO msg=generated output=boil_gen.go types=2
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""),
		log.WithLevel(log.LevelTrace)).
		With(slog.String("template", "page.html"))

	logger.TraceContext(context.Background(), "line", slog.Int("number", 3))
	// Output:
	// {
	//   level: TRACE,
	//   msg: line,
	//   template: page.html,
	//   number: 3
	// }
}
