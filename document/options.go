package document

// Options control how a document is decoded and encoded.
type Options struct {
	// Indent is the number of spaces per nesting level. For JSON, a negative
	// indent selects single-line output.
	Indent int
	// PreserveQuotes keeps the quoting style of YAML scalars. When false,
	// quoting is dropped on load and chosen by the encoder on save.
	PreserveQuotes bool
	// EnsureASCII escapes every non-ASCII character in JSON strings.
	EnsureASCII bool
}

// Option modifies [Options].
type Option func(Options) Options

// DefaultIndentYAML and DefaultIndentJSON are the default indents per format.
const (
	DefaultIndentYAML = 2
	DefaultIndentJSON = 4
)

// DefaultOptions returns the default options for f.
func DefaultOptions(f Format) Options {
	o := Options{PreserveQuotes: true, EnsureASCII: true}

	switch f {
	case FormatJSON:
		o.Indent = DefaultIndentJSON
	default:
		o.Indent = DefaultIndentYAML
	}

	return o
}

func makeOptions(f Format, opts ...Option) Options {
	o := DefaultOptions(f)
	for _, opt := range opts {
		if opt != nil {
			o = opt(o)
		}
	}

	return o
}

// WithIndent sets the indent width.
func WithIndent(n int) Option {
	return func(o Options) Options {
		o.Indent = n

		return o
	}
}

// WithPreserveQuotes sets whether YAML scalar quoting is kept.
func WithPreserveQuotes(enable bool) Option {
	return func(o Options) Options {
		o.PreserveQuotes = enable

		return o
	}
}

// WithEnsureASCII sets whether non-ASCII characters in JSON are escaped.
func WithEnsureASCII(enable bool) Option {
	return func(o Options) Options {
		o.EnsureASCII = enable

		return o
	}
}
