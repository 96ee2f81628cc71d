// Package document loads and saves configuration documents as [tree.Node]
// trees.
//
// YAML documents round-trip through [gopkg.in/yaml.v3] nodes, so key order,
// comments, tags, anchors, and scalar styles survive a load and save. JSON
// documents keep key order and number text, and are written in the layout of
// Python's json.dump with indent 4.
package document
