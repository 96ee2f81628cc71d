package document

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/envlay/pkg"
	"github.com/ardnew/envlay/tree"
)

var (
	ErrFormat     = pkg.NewError("unsupported document format")
	ErrRead       = pkg.NewError("read document")
	ErrDecode     = pkg.NewError("decode document")
	ErrNotMapping = pkg.NewError("document root is not a mapping")
	ErrEncode     = pkg.NewError("encode document")
	ErrWrite      = pkg.NewError("write document")
)

// Document is a decoded configuration document.
type Document struct {
	Root   *tree.Node
	Path   string // file the document was loaded from, if any
	head   tree.Meta
	opts   Options
	Format Format
}

// New returns a document holding root, encoded as f.
func New(root *tree.Node, f Format, opts ...Option) *Document {
	return &Document{Root: root, Format: f, opts: makeOptions(f, opts...)}
}

// Load reads and decodes the document at path.
func Load(path string, f Format, opts ...Option) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrRead.With(slog.String("path", path)).Wrap(err)
	}
	defer file.Close()

	doc, err := Decode(file, f, opts...)
	if err != nil {
		var perr *pkg.Error
		if errors.As(err, &perr) {
			return nil, perr.With(slog.String("path", path))
		}

		return nil, err
	}

	doc.Path = path

	return doc, nil
}

// Decode decodes a document from r. The root must be a mapping. An empty
// YAML document decodes as an empty mapping.
func Decode(r io.Reader, f Format, opts ...Option) (*Document, error) {
	doc := &Document{Format: f, opts: makeOptions(f, opts...)}

	var err error

	switch f {
	case FormatYAML:
		doc.Root, doc.head, err = decodeYAML(r, doc.opts)
	case FormatJSON:
		doc.Root, err = decodeJSON(r)
	default:
		err = ErrFormat.With(slog.String("format", f.String()))
	}

	if err != nil {
		return nil, err
	}

	if !doc.Root.IsMapping() {
		return nil, ErrNotMapping.With(
			slog.String("format", f.String()),
			slog.String("kind", doc.Root.Kind.String()),
		)
	}

	return doc, nil
}

// Options returns the codec options of d.
func (d *Document) Options() Options { return d.opts }

// Encode writes d to w.
func (d *Document) Encode(w io.Writer) error {
	switch d.Format {
	case FormatYAML:
		return encodeYAML(w, d.Root, d.head, d.opts)
	case FormatJSON:
		return encodeJSON(w, d.Root, d.opts)
	default:
		return ErrFormat.With(slog.String("format", d.Format.String()))
	}
}

// Bytes returns the encoded form of d.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save encodes d and writes it to path, or to the path it was loaded from if
// path is empty.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}

	data, err := d.Bytes()
	if err != nil {
		return err
	}

	return WriteFile(path, data)
}

// WriteFile writes data to path, creating missing parent directories.
// An existing file is truncated in place and keeps its mode.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrWrite.With(slog.String("reason", "empty path"))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ErrWrite.With(slog.String("path", path)).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ErrWrite.With(slog.String("path", path)).Wrap(err)
	}

	return nil
}
