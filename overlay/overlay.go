// Package overlay applies prefixed environment variables to a document tree.
//
// A variable named <prefix><k1>_<k2>_..._<kn> assigns its typed value (see
// package literal) at the key path [k1 k2 ... kn]. Variables are applied in
// ascending name order, so the outcome does not depend on the order of the
// source environment.
package overlay

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/envlay/literal"
	"github.com/ardnew/envlay/log"
	"github.com/ardnew/envlay/mutate"
	"github.com/ardnew/envlay/tree"
)

// PathSeparator separates the key path segments of a variable name.
const PathSeparator = "_"

// Target is a document tree and the rules for overlaying it.
type Target struct {
	Root   *tree.Node
	Name   string
	Prefix string
	Policy mutate.Policy
}

// Result records the outcome for one matching variable.
type Result struct {
	Err   error
	Path  []string
	Value literal.Value
	Entry
}

// LogValue implements [slog.LogValuer]. Variable values are omitted.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", r.Name),
		slog.String("path", strings.Join(r.Path, ".")),
	}

	if r.Err != nil {
		attrs = append(attrs, slog.Any("error", r.Err))
	} else {
		attrs = append(attrs, slog.String("kind", r.Value.Kind.String()))
	}

	return slog.GroupValue(attrs...)
}

// Report summarizes an overlay of one [Target].
type Report struct {
	Target  string
	Applied []Result
	Skipped []Result
}

// Err joins the errors of all skipped variables.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		errs = append(errs, s.Err)
	}

	return errors.Join(errs...)
}

// LogValue implements [slog.LogValuer].
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("target", r.Target),
		slog.Int("applied", len(r.Applied)),
		slog.Int("skipped", len(r.Skipped)),
	)
}

// Split returns the key path encoded in name after prefix. Empty segments are
// kept, so "a__b" yields three keys. It reports false if name does not start
// with prefix.
func Split(name, prefix string) ([]string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return nil, false
	}

	return strings.Split(rest, PathSeparator), true
}

// Apply overlays every variable of src whose name starts with t.Prefix onto
// t.Root. A variable that cannot be applied is logged and recorded in the
// report's Skipped results. It never aborts the overlay.
func Apply(ctx context.Context, src Source, t Target) Report {
	report := Report{Target: t.Name}
	logger := log.With(slog.String("target", t.Name))

	for _, e := range sorted(src) {
		if ctx.Err() != nil {
			break
		}

		path, ok := Split(e.Name, t.Prefix)
		if !ok {
			continue
		}

		res := apply(t, e, path)
		if res.Err != nil {
			logger.WarnContext(ctx, "skipping variable", slog.Any("result", res))
			report.Skipped = append(report.Skipped, res)

			continue
		}

		logger.InfoContext(ctx, "updating variable", slog.Any("result", res))
		logger.DebugContext(ctx, "variable value",
			slog.String("name", e.Name), slog.String("value", e.Value))

		if tag, _, found := strings.Cut(e.Value, literal.Delim); found &&
			res.Value.Kind == literal.KindString {
			if hint, ok := literal.Suggest(tag); ok {
				logger.DebugContext(ctx, "unrecognized value tag",
					slog.String("name", e.Name),
					slog.String("tag", tag),
					slog.String("suggest", hint))
			}
		}

		report.Applied = append(report.Applied, res)
	}

	return report
}

func apply(t Target, e Entry, path []string) Result {
	res := Result{Entry: e, Path: path}

	res.Value, res.Err = literal.Parse(e.Value)
	if res.Err != nil {
		return res
	}

	res.Err = mutate.Apply(t.Root, path, res.Value, t.Policy)

	return res
}
