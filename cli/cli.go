package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/boil/cli/cmd"
	"github.com/ardnew/boil/pkg"
)

// CLI is the top-level command-line interface for boil.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Gen    cmd.Gen    `cmd:"" help:"Generate template methods for context types."`
	Render cmd.Render `cmd:"" help:"Render a template without generating code."`
	Plan   cmd.Plan   `cmd:"" help:"Print the render plan of a template."`
	Init   cmd.Init   `cmd:"" help:"Initialize configuration file."`
}

// Run executes the boil CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(".yaml")

	vars := kong.Vars{
		"version":              pkg.Version,
		cmd.ConfigIdentifier:   configFilePath,
		cmd.CacheIdentifier:    pkg.CacheDir(),
		cmd.ManifestIdentifier: pkg.ManifestPath(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong parses anything, so flag position
	// does not matter.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
