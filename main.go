// Command boil compiles line-oriented templates into Go methods.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/boil/cli"
	"github.com/ardnew/boil/cli/cmd"
	"github.com/ardnew/boil/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.Debug("run failed", slog.Any("error", err)) // slog uses LogValue()
		cmd.Diagnose(os.Stderr, err)
		os.Exit(1)
	}
}
