package varsub

import (
	"context"

	"gopkg.in/yaml.v3"
)

// resolveNode substitutes tokens in a YAML node tree.
//
// YAML mapping nodes keep their content in document order, so this is
// the traversal to use when key order must survive a round trip. The
// input tree is never mutated: document, sequence, and mapping nodes are
// copied with substituted children, mapping keys are copied untouched,
// and only !!str scalars are substituted. Alias nodes are returned as-is
// rather than followed, which also keeps anchor-referencing documents
// from recursing.
func (c *resolution) resolveNode(ctx context.Context, n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		out := *n
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = c.resolveNode(ctx, child)
		}
		return &out

	case yaml.MappingNode:
		out := *n
		out.Content = make([]*yaml.Node, len(n.Content))
		// Content alternates key, value. Keys are never substituted.
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := *n.Content[i]
			out.Content[i] = &key
			out.Content[i+1] = c.resolveNode(ctx, n.Content[i+1])
		}
		if len(n.Content)%2 == 1 {
			// Malformed mapping with a dangling key; carry it through.
			last := *n.Content[len(n.Content)-1]
			out.Content[len(out.Content)-1] = &last
		}
		return &out

	case yaml.ScalarNode:
		out := *n
		if n.Tag == "!!str" {
			out.Value = c.resolveString(ctx, n.Value)
		}
		return &out

	default:
		// Alias and unknown kinds pass through.
		return n
	}
}
