package cmd

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/boil/log"
	"github.com/ardnew/boil/reload"
	"github.com/ardnew/boil/tmpl"
)

// Render interprets a template without generating code. Edits to the
// template are picked up on every run.
type Render struct {
	Template string            `arg:"" help:"Template file, or '-' for stdin."                          name:"template"`
	Data     string            `help:"YAML or JSON file with the value bound to the receiver." short:"d" type:"existingfile"`
	Set      map[string]string `help:"Set a top-level data field (repeatable)."                short:"s"`
	Receiver string            `default:"self" help:"Name the data value is bound to."`
	Output   string            `default:"-"    help:"Output file, or '-' for stdout."          short:"o"`
	Type     string            `help:"Content type used for escaping (default: from the template suffix)."`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, err := readInput(r.Template)
	if err != nil {
		return ErrReadInput.With(slog.String("file", r.Template)).Wrap(err)
	}

	src := tmpl.NewSource(r.Template, string(text))
	if r.Type != "" {
		src.ContentType = r.Type
	}

	data, err := r.data(ctx)
	if err != nil {
		return err
	}

	res, err := reload.Execute(ctx, src, data,
		reload.WithLogger(log.Default()),
		reload.WithReceiver(r.Receiver),
		reload.WithCompileOptions(tmpl.WithReceiver(r.Receiver)))
	if err != nil {
		return err
	}

	return writeOutput(ctx, r.Output, res.Body)
}

// data decodes the --data file and applies --set overrides.
func (r *Render) data(ctx context.Context) (map[string]any, error) {
	data := make(map[string]any)

	if r.Data != "" {
		raw, err := readInput(r.Data)
		if err != nil {
			return nil, ErrReadInput.With(slog.String("file", r.Data)).Wrap(err)
		}

		if err := yaml.UnmarshalContext(ctx, raw, &data); err != nil {
			return nil, ErrDecodeData.With(slog.String("file", r.Data)).Wrap(err)
		}

		if data == nil {
			data = make(map[string]any)
		}
	}

	for k, v := range r.Set {
		data[k] = v
	}

	log.TraceContext(ctx, "render data",
		slog.Any("keys", slices.Sorted(maps.Keys(data))))

	return data, nil
}
