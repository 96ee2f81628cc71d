// Package tree defines the in-memory document model shared by the YAML and
// JSON codecs.
//
// A [Node] is a tagged variant: exactly one of its payload fields is
// meaningful, selected by [Node.Kind]. Mappings preserve the insertion order
// of their keys, and every node carries presentation [Meta] (tag, style,
// anchor, comments) so a decoded document can be written back without
// losing formatting the mutation did not touch.
package tree
