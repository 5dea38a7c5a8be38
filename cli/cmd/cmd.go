package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/natefinch/atomic"

	"github.com/ardnew/boil/log"
)

// stdio is the path naming standard input or output.
const stdio = "-"

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdoutKey overrides the writer used for "-" outputs.
type stdoutKey struct{}

// WithStdout returns a context whose commands print to w instead of
// os.Stdout.
func WithStdout(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

func stdoutFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok {
		return w
	}

	return os.Stdout
}

// writeOutput writes data to path, or to standard output when path is "-".
// Files are replaced atomically so readers never observe partial output.
func writeOutput(ctx context.Context, path string, data []byte) error {
	if path == "" || path == stdio {
		_, err := stdoutFrom(ctx).Write(data)

		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return ErrWriteOutput.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote output",
		slog.String("file", path),
		slog.Int("bytes", len(data)))

	return nil
}

// readInput reads path, or standard input when path is "-".
func readInput(path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
