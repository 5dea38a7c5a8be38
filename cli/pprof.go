//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/boil/log"
	"github.com/ardnew/boil/pkg"
	"github.com/ardnew/boil/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                       type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if configured and returns the function that
// stops it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	cfg := profile.Config{Mode: f.Mode, Dir: f.Dir, Quiet: true}
	if !cfg.Enabled() {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	log.DebugContext(ctx, "profiling started", attrs...)

	p := cfg.Start()

	return func() {
		p.Stop()
		log.InfoContext(ctx, "profile written", attrs...)
	}
}
