package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/envlay/literal"
	"github.com/ardnew/envlay/mutate"
	"github.com/ardnew/envlay/tree"
)

const sampleYAML = `# service settings
server:
  port: 8080 # listen port
  host: "localhost"
  tags: [a, b]
name: 'app'
script: |
  echo one
  echo two
`

func decodeString(t *testing.T, s string, f Format, opts ...Option) *Document {
	t.Helper()

	doc, err := Decode(strings.NewReader(s), f, opts...)
	require.NoError(t, err)

	return doc
}

func encodeString(t *testing.T, doc *Document) string {
	t.Helper()

	b, err := doc.Bytes()
	require.NoError(t, err)

	return string(b)
}

func TestYAML_RoundTripKeepsPresentation(t *testing.T) {
	t.Parallel()

	out := encodeString(t, decodeString(t, sampleYAML, FormatYAML))

	for _, want := range []string{
		"# service settings",
		"port: 8080 # listen port",
		`host: "localhost"`,
		"tags: [a, b]",
		"name: 'app'",
		"script: |",
	} {
		assert.Contains(t, out, want)
	}

	assert.Less(t, strings.Index(out, "server:"), strings.Index(out, "name:"))

	again := encodeString(t, decodeString(t, out, FormatYAML))
	assert.Equal(t, out, again, "encoding is not stable")
}

func TestYAML_MutationKeepsComments(t *testing.T) {
	t.Parallel()

	doc := decodeString(t, sampleYAML, FormatYAML)

	v, err := literal.Parse("num:9090")
	require.NoError(t, err)
	require.NoError(t, mutate.Apply(doc.Root, []string{"server", "port"}, v, mutate.PolicyPermissive))

	v, err = literal.Parse("true")
	require.NoError(t, err)
	require.NoError(t, mutate.Apply(doc.Root, []string{"server", "tls"}, v, mutate.PolicyPermissive))

	out := encodeString(t, doc)
	assert.Contains(t, out, "port: 9090 # listen port")
	assert.Contains(t, out, `tls: "true"`, "string that looks like a bool must be quoted")
	assert.Contains(t, out, "# service settings")
}

func TestYAML_PreserveQuotesOff(t *testing.T) {
	t.Parallel()

	out := encodeString(t, decodeString(t, sampleYAML, FormatYAML, WithPreserveQuotes(false)))

	assert.Contains(t, out, "host: localhost")
	assert.Contains(t, out, "name: app")
}

func TestYAML_Indent(t *testing.T) {
	t.Parallel()

	out := encodeString(t, decodeString(t, "a:\n  b: 1\n", FormatYAML, WithIndent(4)))
	assert.Equal(t, "a:\n    b: 1\n", out)
}

func TestYAML_SequenceIndent(t *testing.T) {
	t.Parallel()

	// block sequences are always indented under their key
	out := encodeString(t, decodeString(t, "key:\n- a\n- b\n", FormatYAML))
	assert.Equal(t, "key:\n  - a\n  - b\n", out)
}

func TestYAML_AnchorsAndAliases(t *testing.T) {
	t.Parallel()

	doc := decodeString(t, "base: &base\n  x: 1\nother: *base\n", FormatYAML)

	other, ok := doc.Root.Lookup("other")
	require.True(t, ok)
	assert.Equal(t, tree.KindAlias, other.Kind)

	out := encodeString(t, doc)
	assert.Contains(t, out, "&base")
	assert.Contains(t, out, "other: *base")

	// replacing the anchored value moves the old value to the alias
	v, err := literal.Parse("num:2")
	require.NoError(t, err)
	require.NoError(t, mutate.Apply(doc.Root, []string{"base"}, v, mutate.PolicyPermissive))

	assert.Equal(t, "base: 2\nother: &base\n  x: 1\n", encodeString(t, doc))
}

func TestYAML_ReplacedAnchorStaysResolvable(t *testing.T) {
	t.Parallel()

	doc := decodeString(t, "a:\n  b: &x 1\nc: *x\nd: *x\n", FormatYAML)

	v, err := literal.Parse("flat")
	require.NoError(t, err)
	require.NoError(t, mutate.Apply(doc.Root, []string{"a"}, v, mutate.PolicyPermissive))

	assert.Equal(t, "a: flat\nc: &x 1\nd: *x\n", encodeString(t, doc))
}

func TestYAML_AliasIntermediate(t *testing.T) {
	t.Parallel()

	doc := decodeString(t, "base: &b {host: h, port: 1}\nsvc: *b\n", FormatYAML)

	v, err := literal.Parse("num:2")
	require.NoError(t, err)
	require.NoError(t, mutate.Apply(doc.Root, []string{"svc", "port"}, v, mutate.PolicyPermissive))

	out := encodeString(t, doc)
	assert.Contains(t, out, "host: h")
	assert.Contains(t, out, "port: 2")
	assert.Contains(t, out, "svc: *b")
	assert.NotContains(t, out, "port: 1")
}

func TestYAML_DanglingAlias(t *testing.T) {
	t.Parallel()

	root := tree.NewMapping()
	root.Mapping.Set("c", tree.NewAlias("x"))

	_, err := New(root, FormatYAML).Bytes()
	require.ErrorIs(t, err, ErrEncode)
}

func TestYAML_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "~\n", "null\n"} {
		doc := decodeString(t, in, FormatYAML)
		assert.Zero(t, doc.Root.Mapping.Len())
		assert.Equal(t, "{}\n", encodeString(t, doc))
	}
}

func TestYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate key", "a: 1\na: 2\n", tree.ErrDuplicateKey},
		{"sequence root", "- a\n- b\n", ErrNotMapping},
		{"scalar root", "hello\n", ErrNotMapping},
		{"syntax", "a: [1, 2\n", ErrDecode},
		{"complex key", "? [a, b]\n: c\n", ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.in), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestYAML_ScalarTypes(t *testing.T) {
	t.Parallel()

	doc := decodeString(t, "i: 1\nf: 1.5\nb: true\nn: ~\ns: text\nq: '1'\n", FormatYAML)

	assert.Equal(t, map[string]any{
		"i": int64(1),
		"f": 1.5,
		"b": true,
		"n": nil,
		"s": "text",
		"q": "1",
	}, doc.Root.Native())
}
