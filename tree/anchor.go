package tree

type walkAction int

const (
	walkDescend walkAction = iota
	walkSkip
	walkStop
)

// walk visits n and its descendants in document order. It reports false if
// visit stopped the walk.
func walk(n *Node, visit func(*Node) walkAction) bool {
	if n == nil {
		return true
	}

	switch visit(n) {
	case walkStop:
		return false
	case walkSkip:
		return true
	}

	switch n.Kind {
	case KindMapping:
		for e := range n.Mapping.Entries() {
			if !walk(e.Value, visit) {
				return false
			}
		}

	case KindSequence:
		for _, item := range n.Sequence {
			if !walk(item, visit) {
				return false
			}
		}
	}

	return true
}

// anchors returns the anchors defined by n and its descendants. A name
// defined twice maps to its last definition.
func (n *Node) anchors() map[string]*Node {
	defs := map[string]*Node{}

	walk(n, func(c *Node) walkAction {
		if c.Meta.Anchor != "" {
			defs[c.Meta.Anchor] = c
		}

		return walkDescend
	})

	return defs
}

// Target returns the node that alias refers to within n: the last node
// anchored with its name that precedes alias in document order.
func (n *Node) Target(alias *Node) (*Node, bool) {
	if alias == nil || alias.Kind != KindAlias {
		return nil, false
	}

	var (
		target *Node
		found  bool
	)

	walk(n, func(c *Node) walkAction {
		if c == alias {
			found = target != nil

			return walkStop
		}

		if c.Meta.Anchor == alias.Alias {
			target = c
		}

		return walkDescend
	})

	if !found {
		return nil, false
	}

	return target, true
}

// Release keeps the anchors defined within old resolvable once old is removed
// from the tree rooted at n. The first alias following old that refers to
// such an anchor is replaced by a copy of the anchored node, which later
// aliases then refer to. Aliases preceding old refer to earlier definitions
// and are left alone.
func (n *Node) Release(old *Node) {
	pending := old.anchors()
	if len(pending) == 0 {
		return
	}

	passed := false

	walk(n, func(c *Node) walkAction {
		switch {
		case len(pending) == 0:
			return walkStop

		case c == old:
			passed = true

			return walkSkip

		case !passed:
			return walkDescend
		}

		if c.Meta.Anchor != "" {
			// redefined after old
			delete(pending, c.Meta.Anchor)
		}

		if c.Kind != KindAlias {
			return walkDescend
		}

		anchored, ok := pending[c.Alias]
		if !ok {
			return walkDescend
		}

		c.expand(anchored)

		for name := range c.anchors() {
			delete(pending, name)
		}

		// the copy may hold aliases to other anchors of old
		return walkDescend
	})
}

// expand replaces the alias n with a copy of anchored, keeping the comments
// of n.
func (n *Node) expand(anchored *Node) {
	c := anchored.Clone()
	c.Meta.HeadComment = n.Meta.HeadComment
	c.Meta.LineComment = n.Meta.LineComment
	c.Meta.FootComment = n.Meta.FootComment

	*n = *c
}
