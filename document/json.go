package document

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/ardnew/envlay/tree"
)

func decodeJSON(r io.Reader) (*tree.Node, error) {
	n, err := tree.DecodeJSON(r)
	if err != nil {
		return nil, ErrDecode.With(slog.String("format", "json")).Wrap(err)
	}

	return n, nil
}

// encodeJSON writes root in the layout of Python's json.dump: items on their
// own lines indented by o.Indent spaces, ": " between key and value, "{}" and
// "[]" for empty containers, and no trailing newline. A negative indent
// writes everything on one line with ", " between items.
func encodeJSON(w io.Writer, root *tree.Node, o Options) error {
	bw := bufio.NewWriter(w)
	e := jsonEncoder{w: bw, indent: o.Indent, ascii: o.EnsureASCII}

	if err := e.node(root, 0); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return ErrEncode.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

type jsonEncoder struct {
	w      *bufio.Writer
	indent int
	ascii  bool
}

func (e jsonEncoder) newline(depth int) {
	if e.indent < 0 {
		return
	}

	e.w.WriteByte('\n')
	e.w.WriteString(strings.Repeat(" ", e.indent*depth))
}

func (e jsonEncoder) separator() {
	if e.indent < 0 {
		e.w.WriteString(", ")
	} else {
		e.w.WriteByte(',')
	}
}

func (e jsonEncoder) node(n *tree.Node, depth int) error {
	if n == nil {
		e.w.WriteString("null")

		return nil
	}

	switch n.Kind {
	case tree.KindMapping:
		if n.Mapping.Len() == 0 {
			e.w.WriteString("{}")

			return nil
		}

		e.w.WriteByte('{')

		i := 0
		for key, val := range n.Mapping.All() {
			if i > 0 {
				e.separator()
			}

			i++

			e.newline(depth + 1)
			e.string(key)
			e.w.WriteString(": ")

			if err := e.node(val, depth+1); err != nil {
				return err
			}
		}

		e.newline(depth)
		e.w.WriteByte('}')

	case tree.KindSequence:
		if len(n.Sequence) == 0 {
			e.w.WriteString("[]")

			return nil
		}

		e.w.WriteByte('[')

		for i, item := range n.Sequence {
			if i > 0 {
				e.separator()
			}

			e.newline(depth + 1)

			if err := e.node(item, depth+1); err != nil {
				return err
			}
		}

		e.newline(depth)
		e.w.WriteByte(']')

	case tree.KindScalar:
		e.scalar(n.Scalar)

	default:
		return ErrEncode.With(
			slog.String("format", "json"),
			slog.String("kind", n.Kind.String()),
			slog.String("reason", "no JSON representation"),
		)
	}

	return nil
}

func (e jsonEncoder) scalar(s tree.Scalar) {
	switch s.Type {
	case tree.TypeNull:
		e.w.WriteString("null")

	case tree.TypeBool:
		b, _ := s.Bool()
		e.w.WriteString(strconv.FormatBool(b))

	case tree.TypeInt:
		if i, ok := s.Int(); ok {
			e.w.WriteString(strconv.FormatInt(i, 10))
		} else if json.Valid([]byte(s.Text)) {
			// beyond int64, keep the literal digits
			e.w.WriteString(s.Text)
		} else {
			e.string(s.Text)
		}

	case tree.TypeFloat:
		f, ok := s.Float()

		switch {
		case !ok && json.Valid([]byte(s.Text)):
			e.w.WriteString(s.Text)
		case !ok:
			e.string(s.Text)
		case math.IsNaN(f):
			e.w.WriteString("NaN")
		case math.IsInf(f, 1):
			e.w.WriteString("Infinity")
		case math.IsInf(f, -1):
			e.w.WriteString("-Infinity")
		default:
			e.w.WriteString(formatFloat(f))
		}

	default:
		e.string(s.Text)
	}
}

// string writes s as a JSON string. Characters outside printable ASCII are
// escaped as \uXXXX when ascii is set, using surrogate pairs above U+FFFF.
func (e jsonEncoder) string(s string) {
	e.w.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			e.w.WriteString(`\"`)
		case '\\':
			e.w.WriteString(`\\`)
		case '\n':
			e.w.WriteString(`\n`)
		case '\r':
			e.w.WriteString(`\r`)
		case '\t':
			e.w.WriteString(`\t`)
		case '\b':
			e.w.WriteString(`\b`)
		case '\f':
			e.w.WriteString(`\f`)
		default:
			switch {
			case r < 0x20, e.ascii && r > 0x7e:
				e.escape(r)
			default:
				e.w.WriteRune(r)
			}
		}
	}

	e.w.WriteByte('"')
}

func (e jsonEncoder) escape(r rune) {
	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		e.hex(hi)
		e.hex(lo)

		return
	}

	e.hex(r)
}

func (e jsonEncoder) hex(r rune) {
	const digits = "0123456789abcdef"

	e.w.WriteString(`\u`)
	e.w.WriteByte(digits[r>>12&0xf])
	e.w.WriteByte(digits[r>>8&0xf])
	e.w.WriteByte(digits[r>>4&0xf])
	e.w.WriteByte(digits[r&0xf])
}

// formatFloat formats f as Python's float repr: the shortest digits that
// round-trip, exponent notation outside [1e-4, 1e16), and a ".0" suffix on
// integral values.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
