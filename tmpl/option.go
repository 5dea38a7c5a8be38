package tmpl

import (
	"github.com/ardnew/boil/log"
)

// options configure the compile pipeline.
type options struct {
	logger        log.Logger
	continuations []string
	escaper       *Escaper
	receiver      string
	lineDirective bool
	imports       bool
	pointer       bool
	output        string
}

// Option configures the compile pipeline.
type Option func(options) options

func makeOptions(opts ...Option) options {
	o := options{
		continuations: DefaultContinuations,
		receiver:      DefaultReceiver,
		lineDirective: true,
		imports:       true,
	}

	for _, opt := range opts {
		o = opt(o)
	}

	if o.escaper == nil {
		o.escaper = DefaultEscaper()
	}

	return o
}

// WithLogger sets the logger used for trace events.
// The zero value [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithContinuations replaces the statement prefixes that chain an opener to
// the construct closed on the previous line.
func WithContinuations(keywords ...string) Option {
	return func(o options) options {
		o.continuations = keywords

		return o
	}
}

// WithEscaper sets the escaper policy table.
func WithEscaper(e *Escaper) Option {
	return func(o options) options {
		o.escaper = e

		return o
	}
}

// WithReceiver sets the receiver name bound in generated methods. Template
// expressions refer to the context through this name.
func WithReceiver(name string) Option {
	return func(o options) options {
		o.receiver = name

		return o
	}
}

// WithLineDirectives controls whether generated code carries //line comments
// mapping each statement back to its template line.
func WithLineDirectives(enable bool) Option {
	return func(o options) options {
		o.lineDirective = enable

		return o
	}
}

// WithImports selects goimports for formatting generated code. When
// disabled, go/format is used and imports are left as generated.
func WithImports(enable bool) Option {
	return func(o options) options {
		o.imports = enable

		return o
	}
}

// WithPointer declares generated methods on pointer receivers.
func WithPointer(enable bool) Option {
	return func(o options) options {
		o.pointer = enable

		return o
	}
}

// WithOutputPath names the file generated code will be written to. It is used
// by goimports to resolve the surrounding package.
func WithOutputPath(path string) Option {
	return func(o options) options {
		o.output = path

		return o
	}
}
