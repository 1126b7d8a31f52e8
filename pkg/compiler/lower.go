package compiler

import "github.com/goliatone/go-formdsl/pkg/schema"

// Lower converts the parsed tree into the compiled tier. Authored types become
// single-entry candidate lists; untyped nested nodes are left with an empty
// list for Normalize to fill. The root always keeps its (possibly defaulted)
// type.
func Lower(root schema.DocumentRoot) *schema.Compiled {
	if root.Schema == nil {
		return &schema.Compiled{Types: []schema.TypeSpec{schema.DefaultType()}}
	}
	out := lowerNode(root.Schema)
	if len(out.Types) == 0 {
		out.Types = []schema.TypeSpec{root.Schema.Type}
	}
	return out
}

func lowerNode(node *schema.Node) *schema.Compiled {
	if node == nil {
		return nil
	}
	out := &schema.Compiled{
		Annotations: node.Annotations,
		Formula:     node.Formula,
	}
	if node.Enum != nil {
		out.Enum = append(make([]schema.EnumerationValue, 0, len(node.Enum)), node.Enum...)
	}
	if node.Typed {
		out.Types = []schema.TypeSpec{node.Type}
	}
	if node.Children != nil {
		out.Properties = make([]schema.Property, 0, len(node.Children))
		for _, child := range node.Children {
			out.Properties = append(out.Properties, schema.Property{
				Name:   child.Name,
				Schema: lowerNode(child.Schema),
			})
		}
	}
	out.Items = lowerNode(node.Items)
	if node.Dynamic != nil {
		out.Dynamic = &schema.CompiledDynamic{
			Keys:   lowerNode(node.Dynamic.Keys),
			Values: lowerNode(node.Dynamic.Values),
		}
	}
	return out
}
