package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/envlay/handoff"
	"github.com/ardnew/envlay/log"
)

// Apply overlays the environment onto both documents, writes them, and
// replaces the process with the successor command.
type Apply struct {
	DryRun   bool     `help:"Overlay and encode without writing documents or starting the successor." name:"dry-run"`
	NoExec   bool     `help:"Write documents without starting the successor."                          name:"no-exec"`
	ExecPath []string `help:"Directory searched before PATH for the successor."                         name:"exec-path" type:"path"`

	Command []string `arg:"" help:"Successor command line (default: node dist/src/main.js)." optional:"" passthrough:""`
}

// Run executes the apply command.
func (a *Apply) Run(ctx context.Context, opts *Options) error {
	docs, err := opts.load(ctx)
	if err != nil {
		return err
	}

	if _, err := opts.overlay(ctx, docs, sourceFrom(ctx)); err != nil {
		return err
	}

	// Both documents are encoded before either is written.
	outs, err := opts.encode(docs)
	if err != nil {
		return err
	}

	if a.DryRun {
		log.InfoContext(ctx, "dry run, documents not written")

		return nil
	}

	if err := write(ctx, outs); err != nil {
		return err
	}

	if a.NoExec {
		return nil
	}

	s := a.successor()
	log.InfoContext(ctx, "starting successor", slog.Any("successor", s))

	return s.Exec()
}

func (a *Apply) successor() handoff.Successor {
	args := a.Command
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if len(args) == 0 {
		args = handoff.DefaultCommand
	}

	return handoff.Successor{Args: args, Path: a.ExecPath}
}
