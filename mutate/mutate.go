// Package mutate assigns typed values at key paths within a document tree.
package mutate

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/envlay/literal"
	"github.com/ardnew/envlay/pkg"
	"github.com/ardnew/envlay/tree"
)

var (
	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = pkg.NewError("tree root is not a mapping")
	// ErrEmptyPath is returned for a path with no segments.
	ErrEmptyPath = pkg.NewError("empty path")
	// ErrPathNotFound is returned by [PolicyStrict] when a key is missing.
	ErrPathNotFound = pkg.NewError("path not found")
)

// arrTag marks a text value that is re-read as JSON on assignment.
const arrTag = literal.TagArr + literal.Delim

// Apply assigns v at path within root according to p.
//
// The value is resolved before the tree is touched, and [PolicyStrict] checks
// the whole path before assigning, so a failed Apply leaves root unchanged.
func Apply(root *tree.Node, path []string, v literal.Value, p Policy) error {
	if !root.IsMapping() {
		return ErrNotMapping
	}

	if len(path) == 0 {
		return ErrEmptyPath
	}

	val, err := resolve(v)
	if err != nil {
		return err
	}

	last := len(path) - 1

	parent, err := descend(root, path[:last], p)
	if err != nil {
		return err
	}

	old, ok := parent.Get(path[last])
	if !ok && p == PolicyStrict {
		return notFound(parent, path, last)
	}

	if ok {
		root.Release(old)
	}

	parent.Set(path[last], val)

	return nil
}

// resolve returns the node assigned for v. Text that still carries the
// array tag is decoded as JSON.
func resolve(v literal.Value) (*tree.Node, error) {
	text, ok := v.Text()
	if !ok || !strings.HasPrefix(text, arrTag) {
		return v.Node(), nil
	}

	n, err := tree.ParseJSON(text[len(arrTag):])
	if err != nil {
		return nil, literal.ErrArrayDecode.Wrap(err)
	}

	return n, nil
}

// descend returns the mapping at keys below root. An alias of a mapping is
// followed to its anchored mapping, which is shared with every other alias
// of it. Under [PolicyPermissive], missing keys and values that are not
// mappings are replaced by new mappings.
func descend(root *tree.Node, keys []string, p Policy) (*tree.Mapping, error) {
	m := root.Mapping

	for depth, key := range keys {
		next, ok := m.Get(key)
		if ok && next.Kind == tree.KindAlias {
			if target, found := root.Target(next); found && target.IsMapping() {
				m = target.Mapping

				continue
			}
		}

		if ok && next.IsMapping() {
			m = next.Mapping

			continue
		}

		if p == PolicyStrict {
			return nil, notFound(m, keys, depth)
		}

		if ok {
			root.Release(next)
		}

		child := tree.NewMapping()
		m.Set(key, child)
		m = child.Mapping
	}

	return m, nil
}

func notFound(m *tree.Mapping, path []string, depth int) error {
	attrs := []slog.Attr{
		slog.String("key", path[depth]),
		slog.String("path", strings.Join(path[:depth+1], ".")),
	}

	if _, ok := m.Get(path[depth]); ok {
		attrs = append(attrs, slog.String("reason", "not a mapping"))
	} else if matches := fuzzy.Find(path[depth], m.Keys()); len(matches) > 0 {
		attrs = append(attrs, slog.String("suggest", matches[0].Str))
	}

	return ErrPathNotFound.With(attrs...)
}
