package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scalar Scalar
		want   any
	}{
		{"string", Scalar{Type: TypeString, Text: "abc"}, "abc"},
		{"null", Scalar{Type: TypeNull, Text: "~"}, nil},
		{"bool yes", Scalar{Type: TypeBool, Text: "Yes"}, true},
		{"bool false", Scalar{Type: TypeBool, Text: "false"}, false},
		{"int", Scalar{Type: TypeInt, Text: "42"}, int64(42)},
		{"int underscore", Scalar{Type: TypeInt, Text: "1_000"}, int64(1000)},
		{"int hex", Scalar{Type: TypeInt, Text: "0x1F"}, int64(31)},
		{"int octal", Scalar{Type: TypeInt, Text: "0o17"}, int64(15)},
		{"float", Scalar{Type: TypeFloat, Text: "1.5"}, 1.5},
		{"float exp", Scalar{Type: TypeFloat, Text: "1e3"}, 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.scalar.native())
		})
	}
}

func TestNode_Lookup(t *testing.T) {
	t.Parallel()

	root := NewMapping()
	inner := NewMapping()
	inner.Mapping.Set("c", NewInt(1))
	root.Mapping.Set("a", inner)
	root.Mapping.Set("b", NewString("leaf"))

	got, ok := root.Lookup("a", "c")
	require.True(t, ok)
	assert.Equal(t, "1", got.Scalar.Text)

	_, ok = root.Lookup("b", "c")
	assert.False(t, ok, "cannot descend through a scalar")

	_, ok = root.Lookup("missing")
	assert.False(t, ok)

	got, ok = root.Lookup()
	require.True(t, ok)
	assert.Same(t, root, got)
}

func TestNode_CloneIsDeep(t *testing.T) {
	t.Parallel()

	root := NewMapping()
	root.Mapping.Set("list", NewSequence(NewInt(1), NewInt(2)))
	root.Mapping.Set("nested", NewMapping())

	c := root.Clone()
	require.True(t, c.Equal(root))

	list, _ := c.Lookup("list")
	list.Sequence[0] = NewInt(99)

	nested, _ := c.Lookup("nested")
	nested.Mapping.Set("x", NewBool(true))

	assert.False(t, c.Equal(root))

	orig, _ := root.Lookup("list")
	assert.Equal(t, "1", orig.Sequence[0].Scalar.Text)

	orig, _ = root.Lookup("nested")
	assert.Zero(t, orig.Mapping.Len())
}

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	a := &Node{Kind: KindScalar, Scalar: Scalar{Type: TypeInt, Text: "0x10"}}
	b := NewInt(16)
	assert.True(t, a.Equal(b))

	assert.False(t, NewString("1").Equal(NewInt(1)))
	assert.True(t, NewNull().Equal(&Node{Scalar: Scalar{Type: TypeNull, Text: "~"}}))
	assert.True(t, NewAlias("x").Equal(NewAlias("x")))
	assert.False(t, NewSequence(NewInt(1)).Equal(NewSequence()))

	m1, m2 := NewMapping(), NewMapping()
	m1.Mapping.Set("a", NewInt(1))
	m1.Mapping.Set("b", NewInt(2))
	m2.Mapping.Set("b", NewInt(2))
	m2.Mapping.Set("a", NewInt(1))
	assert.True(t, m1.Equal(m2), "mapping equality ignores order")
}

func TestNode_Native(t *testing.T) {
	t.Parallel()

	root := NewMapping()
	root.Mapping.Set("s", NewSequence(NewBool(true), NewNull(), NewNumber("2.5")))
	root.Mapping.Set("a", NewAlias("anchor"))

	assert.Equal(t, map[string]any{
		"s": []any{true, nil, 2.5},
		"a": "*anchor",
	}, root.Native())
}
