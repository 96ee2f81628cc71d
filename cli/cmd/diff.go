package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff prints the changes the environment would make to each document
// without writing any file.
type Diff struct {
	NoColor bool `help:"Disable colorized output." name:"no-color"`
}

// Run executes the diff command.
func (d *Diff) Run(ctx context.Context, opts *Options) error {
	docs, err := opts.load(ctx)
	if err != nil {
		return err
	}

	before, err := opts.encode(docs)
	if err != nil {
		return err
	}

	if _, err := opts.overlay(ctx, docs, sourceFrom(ctx)); err != nil {
		return err
	}

	after, err := opts.encode(docs)
	if err != nil {
		return err
	}

	p := d.printer(stdout(ctx))

	for i := range after {
		if err := p.print(before[i], after[i]); err != nil {
			return ErrOutput.Wrap(err)
		}
	}

	return nil
}

type diffPrinter struct {
	w      io.Writer
	header *color.Color
	insert *color.Color
	delete *color.Color
}

func (d *Diff) printer(w io.Writer) diffPrinter {
	p := diffPrinter{
		w:      w,
		header: color.New(color.Bold),
		insert: color.New(color.FgGreen),
		delete: color.New(color.FgRed),
	}

	if d.NoColor {
		p.header.DisableColor()
		p.insert.DisableColor()
		p.delete.DisableColor()
	}

	return p
}

// print writes a line diff from a to b. Nothing is written when the
// documents are equal.
func (p diffPrinter) print(a, b output) error {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(a.data), string(b.data))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	changed := false

	for _, diff := range diffs {
		if diff.Type != diffmatchpatch.DiffEqual {
			changed = true

			break
		}
	}

	if !changed {
		return nil
	}

	if _, err := p.header.Fprintln(p.w, "--- "+a.from); err != nil {
		return err
	}

	if _, err := p.header.Fprintln(p.w, "+++ "+b.path); err != nil {
		return err
	}

	for _, diff := range diffs {
		prefix, c := " ", (*color.Color)(nil)

		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", p.insert
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", p.delete
		}

		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			var err error
			if c == nil {
				_, err = io.WriteString(p.w, prefix+line+"\n")
			} else {
				_, err = c.Fprintln(p.w, prefix+line)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}
