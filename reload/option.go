package reload

import (
	"github.com/ardnew/boil/log"
	"github.com/ardnew/boil/tmpl"
)

type options struct {
	logger   log.Logger
	receiver string
	cache    bool
	compile  []tmpl.Option
}

// Option configures a [Renderer].
type Option func(options) options

func makeOptions(opts ...Option) options {
	o := options{receiver: tmpl.DefaultReceiver}

	for _, opt := range opts {
		o = opt(o)
	}

	return o
}

// WithLogger sets the logger for render events.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithReceiver sets the name the data value is bound to in expressions.
// It should match the receiver of the generated methods.
func WithReceiver(name string) Option {
	return func(o options) options {
		o.receiver = name

		return o
	}
}

// WithCache reuses compiled plans while the template text is unchanged.
func WithCache(enable bool) Option {
	return func(o options) options {
		o.cache = enable

		return o
	}
}

// WithCompileOptions passes options through to the template compiler.
func WithCompileOptions(opts ...tmpl.Option) Option {
	return func(o options) options {
		o.compile = append(o.compile, opts...)

		return o
	}
}
