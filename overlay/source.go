package overlay

import (
	"cmp"
	"os"
	"slices"
	"strings"
)

// Entry is a single environment variable.
type Entry struct {
	Name  string
	Value string
}

// Source supplies the environment variables considered for an overlay.
type Source interface {
	Entries() []Entry
}

// Environ returns a [Source] reading the process environment.
func Environ() Source { return environ{} }

type environ struct{}

func (environ) Entries() []Entry {
	return parseEnviron(os.Environ())
}

// Map returns a [Source] holding the given variables.
func Map(m map[string]string) Source { return mapSource(m) }

type mapSource map[string]string

func (m mapSource) Entries() []Entry {
	entries := make([]Entry, 0, len(m))
	for name, value := range m {
		entries = append(entries, Entry{Name: name, Value: value})
	}

	return entries
}

// List is a [Source] of explicit entries, in order.
type List []Entry

func (l List) Entries() []Entry { return l }

// ParseEnviron returns a [Source] parsing "NAME=value" strings as found in
// [os.Environ]. Strings without "=" are ignored.
func ParseEnviron(env []string) Source { return List(parseEnviron(env)) }

func parseEnviron(env []string) []Entry {
	entries := make([]Entry, 0, len(env))
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}

		entries = append(entries, Entry{Name: name, Value: value})
	}

	return entries
}

// sorted returns the entries of src ordered by name. Entries sharing a name
// keep their relative order.
func sorted(src Source) []Entry {
	entries := slices.Clone(src.Entries())
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return entries
}
