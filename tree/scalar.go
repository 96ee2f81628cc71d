package tree

import (
	"strconv"
	"strings"
)

// ScalarType identifies the resolved type of a scalar.
type ScalarType int

const (
	TypeString ScalarType = iota // str
	TypeNull                     // null
	TypeBool                     // bool
	TypeInt                      // int
	TypeFloat                    // float
)

func (t ScalarType) String() string {
	switch t {
	case TypeString:
		return "str"
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "ScalarType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Scalar is a leaf value. Text holds the source representation, which is
// written back verbatim when the scalar is not modified.
type Scalar struct {
	Text string
	Type ScalarType
}

// Bool returns the boolean value of s.
func (s Scalar) Bool() (bool, bool) {
	if s.Type != TypeBool {
		return false, false
	}

	switch strings.ToLower(s.Text) {
	case "true", "yes", "on", "y":
		return true, true
	case "false", "no", "off", "n":
		return false, true
	}

	return false, false
}

// Int returns the integer value of s. Base prefixes and underscore digit
// separators are accepted.
func (s Scalar) Int() (int64, bool) {
	if s.Type != TypeInt {
		return 0, false
	}

	i, err := strconv.ParseInt(strings.ReplaceAll(s.Text, "_", ""), 0, 64)
	if err != nil {
		return 0, false
	}

	return i, true
}

// Float returns the floating-point value of s. Integer scalars convert.
func (s Scalar) Float() (float64, bool) {
	switch s.Type {
	case TypeInt:
		i, ok := s.Int()

		return float64(i), ok

	case TypeFloat:
		text := strings.ReplaceAll(s.Text, "_", "")

		switch strings.ToLower(strings.TrimLeft(text, "+")) {
		case ".inf", "inf", "infinity":
			text = "+Inf"
		case "-.inf", "-inf", "-infinity":
			text = "-Inf"
		case ".nan", "nan":
			text = "NaN"
		}

		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}

		return f, true

	default:
		return 0, false
	}
}
