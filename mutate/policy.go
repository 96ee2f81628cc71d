package mutate

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/envlay/pkg"
)

// ErrPolicy is returned when parsing an unrecognized policy name.
var ErrPolicy = pkg.NewError("invalid mutation policy")

// Policy selects how [Apply] treats keys missing from the tree.
type Policy int

const (
	// PolicyPermissive creates missing intermediate mappings, replacing any
	// non-mapping value in the way, and adds a missing final key.
	PolicyPermissive Policy = iota // permissive
	// PolicyStrict requires every key on the path to exist, and every
	// intermediate value to be a mapping.
	PolicyStrict // strict
)

// Policies returns the names of all policies.
func Policies() []string {
	return []string{PolicyPermissive.String(), PolicyStrict.String()}
}

func (p Policy) String() string {
	switch p {
	case PolicyPermissive:
		return "permissive"
	case PolicyStrict:
		return "strict"
	default:
		return "Policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permissive":
		return PolicyPermissive, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyPermissive, ErrPolicy.With(slog.String("policy", s))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
