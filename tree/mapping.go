package tree

import (
	"iter"
	"log/slog"

	"github.com/ardnew/envlay/pkg"
)

// ErrDuplicateKey is returned by [Mapping.Append] when the key already exists.
var ErrDuplicateKey = pkg.NewError("duplicate mapping key")

// Entry is a single key-value pair of a [Mapping].
type Entry struct {
	Value   *Node
	Key     string
	KeyMeta Meta
}

// Mapping is an insertion-ordered map of string keys to nodes.
// The zero value is an empty mapping ready to use.
type Mapping struct {
	index   map[string]int
	entries []*Entry
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Lookup returns the entry for key.
func (m *Mapping) Lookup(key string) (*Entry, bool) {
	if m == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i], true
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (*Node, bool) {
	e, ok := m.Lookup(key)
	if !ok {
		return nil, false
	}

	return e.Value, true
}

// Set assigns v to key.
//
// An existing key keeps its position and its own presentation, and v inherits
// the comments of the value it replaces unless it defines its own.
// A new key is appended.
func (m *Mapping) Set(key string, v *Node) {
	if e, ok := m.Lookup(key); ok {
		if e.Value != nil && v != nil {
			v.Meta = v.Meta.inherit(e.Value.Meta)
		}

		e.Value = v

		return
	}

	m.push(&Entry{Key: key, Value: v})
}

// Append adds e as a new entry, failing if its key is already present.
func (m *Mapping) Append(e *Entry) error {
	if _, ok := m.Lookup(e.Key); ok {
		return ErrDuplicateKey.With(slog.String("key", e.Key))
	}

	m.push(e)

	return nil
}

// Keys returns the keys in order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for key := range m.All() {
		keys = append(keys, key)
	}

	return keys
}

// All returns an iterator over the key-value pairs in order.
func (m *Mapping) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if m == nil {
			return
		}

		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Entries returns an iterator over the entries in order.
func (m *Mapping) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		if m == nil {
			return
		}

		for _, e := range m.entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (m *Mapping) push(e *Entry) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	m.index[e.Key] = len(m.entries)
	m.entries = append(m.entries, e)
}

func (m *Mapping) clone() *Mapping {
	c := &Mapping{}
	for e := range m.Entries() {
		c.push(&Entry{Key: e.Key, KeyMeta: e.KeyMeta, Value: e.Value.Clone()})
	}

	return c
}

func (m *Mapping) equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}

	for key, val := range m.All() {
		other, ok := o.Get(key)
		if !ok || !val.Equal(other) {
			return false
		}
	}

	return true
}
