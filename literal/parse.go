package literal

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/envlay/pkg"
	"github.com/ardnew/envlay/tree"
)

// Delim separates a tag from its payload.
const Delim = ":"

// Recognized tags.
const (
	TagBool = "bool"
	TagNum  = "num"
	TagArr  = "arr"
	TagRaw  = "raw"
)

var (
	// ErrNumber is returned when a num: payload is not a valid integer.
	ErrNumber = pkg.NewError("invalid number")
	// ErrArrayFormat is returned when an arr: payload is not bracketed.
	ErrArrayFormat = pkg.NewError("array must start with '[' and end with ']'")
	// ErrArrayDecode is returned when an arr: payload is not valid JSON.
	ErrArrayDecode = pkg.NewError("invalid array")
)

// Kind identifies the type of a parsed [Value].
type Kind int

const (
	KindString Kind = iota // string
	KindBool               // bool
	KindInt                // int
	KindArray              // array
	KindRaw                // raw
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindArray:
		return "array"
	case KindRaw:
		return "raw"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a parsed typed value.
type Value struct {
	Array *tree.Node // KindArray
	Str   string     // KindString, KindRaw
	Int   int64      // KindInt
	Kind  Kind
	Bool  bool // KindBool
}

// Parse converts raw into a typed [Value].
func Parse(raw string) (Value, error) {
	tag, payload, ok := strings.Cut(raw, Delim)
	if !ok {
		return Value{Kind: KindString, Str: raw}, nil
	}

	switch tag {
	case TagBool:
		return Value{Kind: KindBool, Bool: strings.EqualFold(payload, "true")}, nil

	case TagNum:
		i, err := parseInt(payload)
		if err != nil {
			return Value{}, ErrNumber.With(slog.String("value", raw)).Wrap(err)
		}

		return Value{Kind: KindInt, Int: i}, nil

	case TagArr:
		if !strings.HasPrefix(payload, "[") || !strings.HasSuffix(payload, "]") {
			return Value{}, ErrArrayFormat.With(slog.String("value", raw))
		}

		n, err := tree.ParseJSON(payload)
		if err != nil {
			return Value{}, ErrArrayDecode.With(slog.String("value", raw)).Wrap(err)
		}

		return Value{Kind: KindArray, Array: n}, nil

	case TagRaw:
		return Value{Kind: KindRaw, Str: payload}, nil

	default:
		return Value{Kind: KindString, Str: raw}, nil
	}
}

// parseInt accepts surrounding whitespace, one optional sign, and single
// underscores between decimal digits.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	if s == "" || s[0] == '_' || s[len(s)-1] == '_' ||
		strings.Contains(s, "__") {
		return 0, strconv.ErrSyntax
	}

	for _, r := range s {
		if r != '_' && (r > unicode.MaxASCII || !unicode.IsDigit(r)) {
			return 0, strconv.ErrSyntax
		}
	}

	return strconv.ParseInt(sign+strings.ReplaceAll(s, "_", ""), 10, 64)
}

// Tag returns the tag that selects v's kind, or "" for plain strings.
func (v Value) Tag() string {
	switch v.Kind {
	case KindBool:
		return TagBool
	case KindInt:
		return TagNum
	case KindArray:
		return TagArr
	case KindRaw:
		return TagRaw
	default:
		return ""
	}
}

// Text returns the string content of a string or raw value.
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString, KindRaw:
		return v.Str, true
	default:
		return "", false
	}
}

// Node returns a new document node holding v.
func (v Value) Node() *tree.Node {
	switch v.Kind {
	case KindBool:
		return tree.NewBool(v.Bool)
	case KindInt:
		return tree.NewInt(v.Int)
	case KindArray:
		if v.Array == nil {
			return tree.NewSequence()
		}

		return v.Array.Clone()
	default:
		return tree.NewString(v.Str)
	}
}

// String renders v as kind(value) for diagnostics.
func (v Value) String() string {
	return v.Kind.String() + "(" + v.display() + ")"
}

func (v Value) display() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindArray:
		n := 0
		if v.Array != nil {
			n = len(v.Array.Sequence)
		}

		return strconv.Itoa(n) + " items"
	default:
		return strconv.Quote(v.Str)
	}
}
