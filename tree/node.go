package tree

import (
	"strconv"
	"strings"
)

// Kind identifies which payload of a [Node] is meaningful.
type Kind int

const (
	KindScalar   Kind = iota // scalar
	KindMapping              // mapping
	KindSequence             // sequence
	KindAlias                // alias
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindAlias:
		return "alias"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a single value in a document tree.
type Node struct {
	Mapping  *Mapping // KindMapping
	Alias    string   // KindAlias: name of the referenced anchor
	Sequence []*Node  // KindSequence
	Scalar   Scalar   // KindScalar
	Meta     Meta
	Kind     Kind
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{Kind: KindMapping, Mapping: &Mapping{}}
}

// NewSequence returns a sequence node holding items.
func NewSequence(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}

	return &Node{Kind: KindSequence, Sequence: items}
}

// NewString returns a string scalar.
func NewString(s string) *Node {
	return &Node{Kind: KindScalar, Scalar: Scalar{Type: TypeString, Text: s}}
}

// NewBool returns a boolean scalar.
func NewBool(b bool) *Node {
	return &Node{
		Kind:   KindScalar,
		Scalar: Scalar{Type: TypeBool, Text: strconv.FormatBool(b)},
	}
}

// NewInt returns an integer scalar.
func NewInt(i int64) *Node {
	return &Node{
		Kind:   KindScalar,
		Scalar: Scalar{Type: TypeInt, Text: strconv.FormatInt(i, 10)},
	}
}

// NewNumber returns a numeric scalar whose text is a JSON number literal.
// The literal is an integer unless it has a fraction or exponent.
func NewNumber(text string) *Node {
	typ := TypeInt
	if strings.ContainsAny(text, ".eE") {
		typ = TypeFloat
	}

	return &Node{Kind: KindScalar, Scalar: Scalar{Type: typ, Text: text}}
}

// NewNull returns a null scalar.
func NewNull() *Node {
	return &Node{Kind: KindScalar, Scalar: Scalar{Type: TypeNull, Text: "null"}}
}

// NewAlias returns a reference to the node anchored as name.
func NewAlias(name string) *Node {
	return &Node{Kind: KindAlias, Alias: name}
}

// IsMapping reports whether n is a non-nil mapping node.
func (n *Node) IsMapping() bool {
	return n != nil && n.Kind == KindMapping && n.Mapping != nil
}

// Lookup descends through nested mappings following path.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	cur := n
	for _, key := range path {
		if !cur.IsMapping() {
			return nil, false
		}

		next, ok := cur.Mapping.Get(key)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, cur != nil
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n

	switch n.Kind {
	case KindMapping:
		c.Mapping = n.Mapping.clone()

	case KindSequence:
		c.Sequence = make([]*Node, len(n.Sequence))
		for i, item := range n.Sequence {
			c.Sequence[i] = item.Clone()
		}
	}

	return &c
}

// Equal reports whether n and o hold the same value. Presentation [Meta] and
// scalar text spelling are ignored where the resolved value is the same.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Kind != o.Kind {
		return false
	}

	switch n.Kind {
	case KindScalar:
		return n.Scalar.equal(o.Scalar)

	case KindMapping:
		return n.Mapping.equal(o.Mapping)

	case KindSequence:
		if len(n.Sequence) != len(o.Sequence) {
			return false
		}

		for i := range n.Sequence {
			if !n.Sequence[i].Equal(o.Sequence[i]) {
				return false
			}
		}

		return true

	case KindAlias:
		return n.Alias == o.Alias

	default:
		return false
	}
}

func (s Scalar) equal(o Scalar) bool {
	if s.Type != o.Type {
		return false
	}

	switch s.Type {
	case TypeNull:
		return true

	case TypeBool:
		a, aok := s.Bool()
		b, bok := o.Bool()

		return aok && bok && a == b

	case TypeInt:
		a, aok := s.Int()
		b, bok := o.Int()

		if aok && bok {
			return a == b
		}

	case TypeFloat:
		a, aok := s.Float()
		b, bok := o.Float()

		if aok && bok {
			return a == b
		}
	}

	return s.Text == o.Text
}

// Native converts n to plain Go values: map[string]any, []any, string, bool,
// int64, float64, or nil. Aliases convert to their "*name" reference text.
func (n *Node) Native() any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindMapping:
		m := make(map[string]any, n.Mapping.Len())
		for key, val := range n.Mapping.All() {
			m[key] = val.Native()
		}

		return m

	case KindSequence:
		s := make([]any, len(n.Sequence))
		for i, item := range n.Sequence {
			s[i] = item.Native()
		}

		return s

	case KindAlias:
		return "*" + n.Alias

	default:
		return n.Scalar.native()
	}
}

func (s Scalar) native() any {
	switch s.Type {
	case TypeNull:
		return nil

	case TypeBool:
		if b, ok := s.Bool(); ok {
			return b
		}

	case TypeInt:
		if i, ok := s.Int(); ok {
			return i
		}

		if f, ok := s.Float(); ok {
			return f
		}

	case TypeFloat:
		if f, ok := s.Float(); ok {
			return f
		}
	}

	return s.Text
}
