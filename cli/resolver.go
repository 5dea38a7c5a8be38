package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/boil/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Top-level keys name global flags. A key naming a command holds a mapping
// of that command's flags, which takes precedence over the top level:
//
//	log-level: debug
//	log_pretty: false
//	gen:
//	  dir: views
//	  receiver: v
//
// Keys may use hyphens or underscores. Command-line flags override config
// file values. A file that does not parse is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var c config

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &c); err != nil && err != io.EOF {
			log.WarnContext(ctx, "ignoring config file", slog.Any("error", err))

			return config{}, nil
		}

		return c, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := c.lookup(parent.Command.Name).(map[string]any); ok {
			if v := config(section).lookup(flag.Name); v != nil {
				return normalize(v), nil
			}
		}
	}

	if v := c.lookup(flag.Name); v != nil {
		return normalize(v), nil
	}

	return nil, nil
}

// lookup finds name, or its underscore spelling.
func (c config) lookup(name string) any {
	if v, ok := c[name]; ok {
		return v
	}

	if v, ok := c[strings.ReplaceAll(name, "-", "_")]; ok {
		return v
	}

	return nil
}

// normalize converts YAML scalars into values kong's mappers accept.
// Kong requires numbers as strings for parsing.
func normalize(v any) any {
	switch v := v.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)

	case int64:
		return strconv.FormatInt(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out

	default:
		return v
	}
}
