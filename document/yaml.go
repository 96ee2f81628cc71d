package document

import (
	"errors"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/envlay/tree"
)

var styleBits = []struct {
	yaml yaml.Style
	tree tree.Style
}{
	{yaml.TaggedStyle, tree.StyleTagged},
	{yaml.DoubleQuotedStyle, tree.StyleDoubleQuoted},
	{yaml.SingleQuotedStyle, tree.StyleSingleQuoted},
	{yaml.LiteralStyle, tree.StyleLiteral},
	{yaml.FoldedStyle, tree.StyleFolded},
	{yaml.FlowStyle, tree.StyleFlow},
}

var scalarTags = map[string]tree.ScalarType{
	"!!null":  tree.TypeNull,
	"!!bool":  tree.TypeBool,
	"!!int":   tree.TypeInt,
	"!!float": tree.TypeFloat,
	"!!str":   tree.TypeString,
}

func decodeYAML(r io.Reader, o Options) (*tree.Node, tree.Meta, error) {
	var doc yaml.Node

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return tree.NewMapping(), tree.Meta{}, nil
		}

		return nil, tree.Meta{}, ErrDecode.With(slog.String("format", "yaml")).Wrap(err)
	}

	head := tree.Meta{
		HeadComment: doc.HeadComment,
		LineComment: doc.LineComment,
		FootComment: doc.FootComment,
	}

	if len(doc.Content) == 0 {
		return tree.NewMapping(), head, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		n := tree.NewMapping()
		n.Meta = yamlDecoder{o}.meta(root)
		n.Meta.Tag = ""

		return n, head, nil
	}

	n, err := yamlDecoder{o}.node(root)
	if err != nil {
		return nil, tree.Meta{}, err
	}

	return n, head, nil
}

type yamlDecoder struct{ opts Options }

func (d yamlDecoder) meta(n *yaml.Node) tree.Meta {
	m := tree.Meta{
		Tag:         n.Tag,
		Anchor:      n.Anchor,
		HeadComment: n.HeadComment,
		LineComment: n.LineComment,
		FootComment: n.FootComment,
	}

	for _, b := range styleBits {
		if n.Style&b.yaml != 0 {
			m.Style |= b.tree
		}
	}

	if !d.opts.PreserveQuotes {
		m.Style &^= tree.StyleDoubleQuoted | tree.StyleSingleQuoted
	}

	return m
}

func (d yamlDecoder) node(n *yaml.Node) (*tree.Node, error) {
	var out *tree.Node

	switch n.Kind {
	case yaml.ScalarNode:
		typ, ok := scalarTags[n.ShortTag()]
		if !ok {
			typ = tree.TypeString
		}

		out = &tree.Node{Kind: tree.KindScalar, Scalar: tree.Scalar{Type: typ, Text: n.Value}}

	case yaml.MappingNode:
		out = tree.NewMapping()

		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, ErrDecode.With(
					slog.String("format", "yaml"),
					slog.Int("line", key.Line),
					slog.String("reason", "mapping key is not a scalar"),
				)
			}

			v, err := d.node(val)
			if err != nil {
				return nil, err
			}

			err = out.Mapping.Append(&tree.Entry{Key: key.Value, KeyMeta: d.meta(key), Value: v})
			if err != nil {
				return nil, ErrDecode.With(
					slog.String("format", "yaml"),
					slog.Int("line", key.Line),
				).Wrap(err)
			}
		}

	case yaml.SequenceNode:
		out = tree.NewSequence()

		for _, item := range n.Content {
			v, err := d.node(item)
			if err != nil {
				return nil, err
			}

			out.Sequence = append(out.Sequence, v)
		}

	case yaml.AliasNode:
		out = tree.NewAlias(n.Value)

	default:
		return nil, ErrDecode.With(
			slog.String("format", "yaml"),
			slog.Int("line", n.Line),
			slog.Int("kind", int(n.Kind)),
		)
	}

	out.Meta = d.meta(n)

	return out, nil
}

func encodeYAML(w io.Writer, root *tree.Node, head tree.Meta, o Options) error {
	e := yamlEncoder{anchors: make(map[string]*yaml.Node)}

	n, err := e.node(root)
	if err != nil {
		return err
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		Content:     []*yaml.Node{n},
		HeadComment: head.HeadComment,
		LineComment: head.LineComment,
		FootComment: head.FootComment,
	}

	indent := o.Indent
	if indent < 0 {
		indent = DefaultIndentYAML
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)

	if err := enc.Encode(doc); err != nil {
		return ErrEncode.With(slog.String("format", "yaml")).Wrap(err)
	}

	if err := enc.Close(); err != nil {
		return ErrEncode.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}

// yamlEncoder converts trees to yaml.v3 nodes. Anchors are recorded as they
// are emitted so later aliases can refer to them.
type yamlEncoder struct {
	anchors map[string]*yaml.Node
}

func (e yamlEncoder) meta(out *yaml.Node, m tree.Meta) {
	out.Tag = m.Tag
	out.Anchor = m.Anchor
	out.HeadComment = m.HeadComment
	out.LineComment = m.LineComment
	out.FootComment = m.FootComment

	for _, b := range styleBits {
		if m.Style&b.tree != 0 {
			out.Style |= b.yaml
		}
	}
}

func (e yamlEncoder) node(n *tree.Node) (*yaml.Node, error) {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}

	out := &yaml.Node{}
	e.meta(out, n.Meta)

	if out.Anchor != "" {
		e.anchors[out.Anchor] = out
	}

	switch n.Kind {
	case tree.KindScalar:
		out.Kind = yaml.ScalarNode
		out.Value = n.Scalar.Text

		if out.Tag == "" {
			out.Tag = "!!" + n.Scalar.Type.String()
		}

	case tree.KindMapping:
		out.Kind = yaml.MappingNode
		if out.Tag == "" {
			out.Tag = "!!map"
		}

		for entry := range n.Mapping.Entries() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: entry.Key}
			e.meta(key, entry.KeyMeta)

			if key.Tag == "" {
				key.Tag = "!!str"
			}

			val, err := e.node(entry.Value)
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, key, val)
		}

	case tree.KindSequence:
		out.Kind = yaml.SequenceNode
		if out.Tag == "" {
			out.Tag = "!!seq"
		}

		for _, item := range n.Sequence {
			val, err := e.node(item)
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, val)
		}

	case tree.KindAlias:
		target, ok := e.anchors[n.Alias]
		if !ok {
			return nil, ErrEncode.With(
				slog.String("format", "yaml"),
				slog.String("alias", n.Alias),
				slog.String("reason", "alias refers to no anchor"),
			)
		}

		// aliases carry no tag
		*out = yaml.Node{
			Kind:        yaml.AliasNode,
			Value:       n.Alias,
			Alias:       target,
			HeadComment: n.Meta.HeadComment,
			LineComment: n.Meta.LineComment,
			FootComment: n.Meta.FootComment,
		}
	}

	return out, nil
}
