package tree

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/envlay/pkg"
)

var (
	// ErrJSONDecode is returned when JSON input cannot be decoded.
	ErrJSONDecode = pkg.NewError("decode JSON")
	// ErrJSONTrailing is returned when JSON input has data after its value.
	ErrJSONTrailing = pkg.NewError("unexpected data after JSON value")
)

// ParseJSON decodes the single JSON value in s.
func ParseJSON(s string) (*Node, error) {
	return DecodeJSON(strings.NewReader(s))
}

// DecodeJSON decodes exactly one JSON value from r, preserving the order of
// object keys and the literal text of numbers. A key repeated within one
// object keeps its first position and its last value.
func DecodeJSON(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, ErrJSONDecode.Wrap(err)
	}

	tok, err := dec.Token()
	if !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, ErrJSONDecode.Wrap(err)
		}

		return nil, ErrJSONTrailing.With(slog.Any("token", tok))
	}

	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, ErrJSONDecode.With(slog.String("delim", t.String()))
		}

	case string:
		return NewString(t), nil

	case json.Number:
		return NewNumber(t.String()), nil

	case bool:
		return NewBool(t), nil

	case nil:
		return NewNull(), nil

	default:
		return nil, ErrJSONDecode.With(slog.Any("token", t))
	}
}

func decodeJSONObject(dec *json.Decoder) (*Node, error) {
	n := NewMapping()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, ErrJSONDecode.With(slog.Any("key", tok))
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		n.Mapping.Set(key, val)
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

func decodeJSONArray(dec *json.Decoder) (*Node, error) {
	n := NewSequence()

	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		n.Sequence = append(n.Sequence, val)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}
