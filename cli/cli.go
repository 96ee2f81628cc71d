package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envlay/cli/cmd"
	"github.com/ardnew/envlay/pkg"
)

// CLI is the top-level command-line interface for envlay.
type CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit." short:"V"`

	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Doc cmd.Options `embed:"" group:"document"`

	Apply cmd.Apply `cmd:"" default:"withargs" help:"Overlay the environment, write both documents, and start the successor."`
	Diff  cmd.Diff  `cmd:""                    help:"Print the changes the environment makes to each document."`
	Show  cmd.Show  `cmd:""                    help:"Print one overlaid document."`
	Value cmd.Value `cmd:""                    help:"Print the typed interpretation of value literals."`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file."`
}

func documentGroup() kong.Group {
	var group kong.Group

	group.Key = "document"
	group.Title = "Document options"

	return group
}

// Run executes the envlay CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{documentGroup(), cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		vars,
	}

	parser, err := kong.New(&cli, append(opts, configurations()...)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(&cli.Doc)
}
