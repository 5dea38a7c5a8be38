package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/boil/tmpl"
)

// Plan prints the render plan compiled from a template.
type Plan struct {
	Format   string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})."                short:"f"`
	Indent   int    `default:"2"    help:"Indent width (0 selects compact JSON or flow YAML)." short:"i"`
	Template string `arg:""         help:"Template file, or '-' for stdin."                    name:"template"`
}

// Run executes the plan command.
func (p *Plan) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, err := readInput(p.Template)
	if err != nil {
		return ErrReadInput.With(slog.String("file", p.Template)).Wrap(err)
	}

	plan, err := tmpl.Compile(tmpl.NewSource(p.Template, string(text)))
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	switch p.Format {
	case "json":
		err = plan.FormatJSON(&buf, p.Indent)

	case "yaml":
		err = plan.FormatYAML(ctx, &buf, p.Indent)

	case "text":
		err = plan.Format(&buf, p.Indent)

	default:
		err = fmt.Errorf("unknown format %q", p.Format)
	}

	if err != nil {
		return err
	}

	return writeOutput(ctx, stdio, buf.Bytes())
}
