package cmd

import (
	"bytes"
	"context"
)

// Show prints one overlaid document without writing any file.
type Show struct {
	Format string `arg:"" enum:"yaml,json" help:"Document to print (${enum})."`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context, opts *Options) error {
	docs, err := opts.load(ctx)
	if err != nil {
		return err
	}

	if _, err := opts.overlay(ctx, docs, sourceFrom(ctx)); err != nil {
		return err
	}

	doc := docs.yaml
	if s.Format == "json" {
		doc = docs.json
	}

	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	if _, err := stdout(ctx).Write(data); err != nil {
		return ErrOutput.Wrap(err)
	}

	return nil
}
