package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/envlay/literal"
)

// Value prints the typed interpretation of each value literal.
type Value struct {
	Literal []string `arg:"" help:"Value literals, such as num:42 or arr:[1,2]." name:"literal"`
}

// Run executes the value command. Every literal is printed; the error joins
// those that fail to parse.
func (v *Value) Run(ctx context.Context) error {
	w := stdout(ctx)

	var errs []error

	for _, raw := range v.Literal {
		val, err := literal.Parse(raw)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s\terror: %v\n", raw, err)
			errs = append(errs, ErrLiteral.With(slog.String("literal", raw)).Wrap(err))

			continue
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\n", raw, val)
	}

	return errors.Join(errs...)
}
