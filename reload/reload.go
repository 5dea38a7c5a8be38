package reload

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ardnew/boil/tmpl"
)

// Result is one rendering. It implements [render.Template], so it can be
// served the same way as a generated context type.
type Result struct {
	Body []byte
	Type string
}

// AppendTemplate appends the rendered body to b.
func (r Result) AppendTemplate(b []byte) []byte { return append(b, r.Body...) }

// ContentType returns the media type resolved from the template's suffix.
func (r Result) ContentType() string { return r.Type }

// String returns the rendered body.
func (r Result) String() string { return string(r.Body) }

// Renderer reads templates from a file system on every call.
type Renderer struct {
	fsys fs.FS
	dir  string
	opts options
}

// New returns a Renderer for the templates in dir of fsys.
func New(fsys fs.FS, dir string, opts ...Option) *Renderer {
	return &Renderer{fsys: fsys, dir: dir, opts: makeOptions(opts...)}
}

// Render loads the template for the context type name and renders it with
// data bound to the receiver name. Edits to the template take effect on the
// next call.
func (r *Renderer) Render(ctx context.Context, name, suffix string, data any) (Result, error) {
	compile := append([]tmpl.Option{tmpl.WithLogger(r.opts.logger)}, r.opts.compile...)

	src, err := tmpl.Load(ctx, r.fsys, r.dir, name, suffix, compile...)
	if err != nil {
		return Result{}, err
	}

	return execute(ctx, src, data, r.opts)
}

// Execute compiles src and renders it with data.
func Execute(ctx context.Context, src tmpl.Source, data any, opts ...Option) (Result, error) {
	return execute(ctx, src, data, makeOptions(opts...))
}

func execute(ctx context.Context, src tmpl.Source, data any, o options) (Result, error) {
	start := time.Now()

	compile := append([]tmpl.Option{tmpl.WithLogger(o.logger)}, o.compile...)

	var (
		plan tmpl.Plan
		err  error
	)

	if o.cache {
		plan, err = tmpl.CompileCached(ctx, src, compile...)
	} else {
		plan, err = tmpl.Compile(src, compile...)
	}

	if err != nil {
		return Result{}, err
	}

	root := newScope(nil)
	root.define(o.receiver, data)

	in := newInterp(ctx, src.Path, plan)
	if _, err := in.run(root, 0, len(plan)); err != nil {
		o.logger.DebugContext(ctx, "render failed",
			slog.String("path", src.Path),
			slog.Any("error", err))

		return Result{}, err
	}

	o.logger.DebugContext(ctx, "template rendered",
		slog.String("path", src.Path),
		slog.Int("bytes", len(in.out)),
		slog.Duration("elapsed", time.Since(start)))

	return Result{Body: in.out, Type: src.ContentType}, nil
}
