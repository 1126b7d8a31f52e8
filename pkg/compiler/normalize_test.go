package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

func TestNormalize_Idempotent(t *testing.T) {
	root := &schema.Compiled{
		Properties: []schema.Property{
			{Name: "a", Schema: &schema.Compiled{}},
			{Name: "list", Schema: &schema.Compiled{
				Types: []schema.TypeSpec{schema.RequiredType(schema.ArrayType{})},
				Items: &schema.Compiled{},
			}},
			{Name: "map", Schema: &schema.Compiled{
				Dynamic: &schema.CompiledDynamic{Keys: &schema.Compiled{}, Values: &schema.Compiled{}},
			}},
		},
	}

	Normalize(root)
	once := cloneForCompare(root)
	Normalize(root)

	if diff := cmp.Diff(once, cloneForCompare(root)); diff != "" {
		t.Fatalf("second normalize changed the tree (-first +second):\n%s", diff)
	}

	want := []schema.TypeSpec{schema.DefaultType()}
	list, _ := root.Property("list")
	dynamic, _ := root.Property("map")
	for name, node := range map[string]*schema.Compiled{
		"root":   root,
		"items":  list.Items,
		"keys":   dynamic.Dynamic.Keys,
		"values": dynamic.Dynamic.Values,
	} {
		if diff := cmp.Diff(want, node.Types); diff != "" {
			t.Fatalf("%s types mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestNormalize_KeepsAuthoredTypes(t *testing.T) {
	authored := []schema.TypeSpec{schema.OptionalType(schema.StringType{})}
	root := &schema.Compiled{
		Types:      []schema.TypeSpec{schema.DefaultType()},
		Properties: []schema.Property{{Name: "s", Schema: &schema.Compiled{Types: authored}}},
	}
	Normalize(root)

	s, _ := root.Property("s")
	if diff := cmp.Diff(authored, s.Types); diff != "" {
		t.Fatalf("authored types changed (-want +got):\n%s", diff)
	}
}

func TestLower_PreservesEmptyEnumeration(t *testing.T) {
	doc := schema.DocumentRoot{Schema: &schema.Node{
		Type:  schema.RequiredType(schema.StringType{}),
		Typed: true,
		Enum:  []schema.EnumerationValue{},
	}}
	compiled := Lower(doc)
	if compiled.Enum == nil {
		t.Fatalf("expected empty, non-nil enumeration")
	}
}

func TestNormalize_NilRoot(t *testing.T) {
	Normalize(nil)
}

type typeShape struct {
	Types      []schema.TypeSpec
	Properties map[string]typeShape
	Items      *typeShape
	Keys       *typeShape
	Values     *typeShape
}

func cloneForCompare(node *schema.Compiled) typeShape {
	out := typeShape{Types: append([]schema.TypeSpec(nil), node.Types...)}
	if len(node.Properties) > 0 {
		out.Properties = make(map[string]typeShape, len(node.Properties))
		for _, prop := range node.Properties {
			out.Properties[prop.Name] = cloneForCompare(prop.Schema)
		}
	}
	if node.Items != nil {
		items := cloneForCompare(node.Items)
		out.Items = &items
	}
	if node.Dynamic != nil {
		keys := cloneForCompare(node.Dynamic.Keys)
		values := cloneForCompare(node.Dynamic.Values)
		out.Keys, out.Values = &keys, &values
	}
	return out
}
