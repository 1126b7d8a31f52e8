package compiler

import "github.com/goliatone/go-formdsl/pkg/schema"

// Normalize fills structural defaults in place: every property, array item
// schema and dynamic key/value schema without candidate types gets exactly
// [Required(Object)]. It never fails and is idempotent.
func Normalize(root *schema.Compiled) {
	if root == nil {
		return
	}
	if len(root.Types) == 0 {
		root.Types = defaultCandidates()
	}
	normalizeNode(root)
}

func normalizeNode(node *schema.Compiled) {
	for idx := range node.Properties {
		normalizeSlot(node.Properties[idx].Schema)
	}
	if node.Items != nil {
		normalizeSlot(node.Items)
	}
	if node.Dynamic != nil {
		normalizeSlot(node.Dynamic.Keys)
		normalizeSlot(node.Dynamic.Values)
	}
}

func normalizeSlot(node *schema.Compiled) {
	if node == nil {
		return
	}
	if len(node.Types) == 0 {
		node.Types = defaultCandidates()
	}
	normalizeNode(node)
}

func defaultCandidates() []schema.TypeSpec {
	return []schema.TypeSpec{schema.DefaultType()}
}
