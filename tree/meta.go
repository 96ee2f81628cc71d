package tree

// Style is a bit set of presentation hints for a node.
type Style uint32

const (
	StyleTagged Style = 1 << iota
	StyleDoubleQuoted
	StyleSingleQuoted
	StyleLiteral
	StyleFolded
	StyleFlow
)

// Meta holds the presentation details of a node that do not affect its value.
type Meta struct {
	Tag         string
	Anchor      string
	HeadComment string
	LineComment string
	FootComment string
	Style       Style
}

// HasComments reports whether any comment is attached.
func (m Meta) HasComments() bool {
	return m.HeadComment != "" || m.LineComment != "" || m.FootComment != ""
}

// inherit copies the comments of old into m unless m defines its own.
// Anchors stay with the value that defined them (see [Node.Release]).
func (m Meta) inherit(old Meta) Meta {
	if !m.HasComments() {
		m.HeadComment = old.HeadComment
		m.LineComment = old.LineComment
		m.FootComment = old.FootComment
	}

	return m
}
