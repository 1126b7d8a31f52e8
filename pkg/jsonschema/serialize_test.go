package jsonschema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func leaf(spec schema.TypeSpec) *schema.Compiled {
	return &schema.Compiled{Types: []schema.TypeSpec{spec}}
}

func encode(t *testing.T, out *Object) string {
	t.Helper()
	payload, err := Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(payload)
}

func TestSerialize_RootIsFlat(t *testing.T) {
	root := &schema.Compiled{
		Types: []schema.TypeSpec{schema.DefaultType()},
		Properties: []schema.Property{
			{Name: "b", Schema: leaf(schema.RequiredType(schema.BooleanType{}))},
			{Name: "a", Schema: leaf(schema.OptionalType(schema.StringType{}))},
		},
		Annotations: schema.Annotations{Title: schema.Text("Root")},
	}

	out, err := Serialize(root)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]string{"$schema", "type", "properties", "required", "title"}, out.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	want := `{"$schema":"http://json-schema.org/draft-04/schema#","type":"object","properties":{"b":{"type":"boolean"},"a":{"type":"string"}},"required":["b"],"title":"Root"}`
	if got := encode(t, out); got != want {
		t.Fatalf("unexpected output\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSerializeNode_Constraints(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Compiled
		want string
	}{
		{
			name: "string bounds",
			node: leaf(schema.RequiredType(schema.StringType{Config: &schema.StringConfig{MinLength: intPtr(2), MaxLength: intPtr(8), Pattern: "^a"}})),
			want: `{"type":"string","minLength":2,"maxLength":8,"pattern":"^a"}`,
		},
		{
			name: "exclusive bounds",
			node: leaf(schema.RequiredType(schema.NumberType{Config: &schema.NumberConfig{Min: floatPtr(0), Max: floatPtr(1.5), ExclusiveMax: true, MultipleOf: floatPtr(0.5)}})),
			want: `{"type":"number","minimum":0,"maximum":1.5,"exclusiveMaximum":true,"multipleOf":0.5}`,
		},
		{
			name: "exclusive flag without bound",
			node: leaf(schema.RequiredType(schema.IntegerType{Config: &schema.NumberConfig{ExclusiveMin: true}})),
			want: `{"type":"integer"}`,
		},
		{
			name: "port",
			node: leaf(schema.RequiredType(schema.PortType{})),
			want: `{"type":"integer","minimum":0,"maximum":65535}`,
		},
		{
			name: "password format",
			node: leaf(schema.RequiredType(schema.PasswordType{})),
			want: `{"type":"string","format":"password"}`,
		},
		{
			name: "datetime format",
			node: leaf(schema.RequiredType(schema.FormattedType{Of: schema.KindDateTime})),
			want: `{"type":"string","format":"date-time"}`,
		},
		{
			name: "array",
			node: &schema.Compiled{
				Types: []schema.TypeSpec{schema.RequiredType(schema.ArrayType{Config: &schema.ArrayConfig{MinItems: intPtr(1), UniqueItems: true}})},
				Items: leaf(schema.RequiredType(schema.IntegerType{})),
			},
			want: `{"type":"array","minItems":1,"uniqueItems":true,"items":{"type":"integer"}}`,
		},
		{
			name: "multiple candidates",
			node: &schema.Compiled{Types: []schema.TypeSpec{
				schema.RequiredType(schema.StringType{Config: &schema.StringConfig{MaxLength: intPtr(3)}}),
				schema.RequiredType(schema.IntegerType{}),
				schema.RequiredType(schema.TextType{Config: &schema.StringConfig{MaxLength: intPtr(9)}}),
			}},
			want: `{"type":["string","integer"],"maxLength":3}`,
		},
		{
			name: "conflicting formats are dropped",
			node: &schema.Compiled{Types: []schema.TypeSpec{
				schema.RequiredType(schema.FormattedType{Of: schema.KindEmail}),
				schema.RequiredType(schema.FormattedType{Of: schema.KindURI}),
			}},
			want: `{"type":"string"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SerializeNode(tt.node)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if got := encode(t, out); got != tt.want {
				t.Fatalf("unexpected output\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestSerializeNode_Enumeration(t *testing.T) {
	node := leaf(schema.RequiredType(schema.IntegerType{}))
	node.Enum = []schema.EnumerationValue{
		{Type: schema.RequiredType(schema.IntegerType{}), Value: schema.Text("1"), Display: schema.DisplayInformation{Title: schema.Text("One"), Help: schema.Text("the first")}},
		{Type: schema.RequiredType(schema.IntegerType{}), Value: schema.Text("2")},
	}

	out, err := SerializeNode(node)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"type":"integer","enum":[1,2],"oneOf":[{"enum":[1],"title":"One","help":"the first"},{"enum":[2]}]}`
	if got := encode(t, out); got != want {
		t.Fatalf("unexpected output\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSerializeNode_EnumerationError(t *testing.T) {
	node := leaf(schema.RequiredType(schema.BooleanType{}))
	node.Enum = []schema.EnumerationValue{{Type: schema.RequiredType(schema.BooleanType{}), Value: schema.Text("maybe")}}

	_, err := SerializeNode(node)
	if !errors.Is(err, schema.ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestSerializeNode_AnnotationsAndFormula(t *testing.T) {
	widget := schema.WidgetColor
	node := leaf(schema.RequiredType(schema.StringType{}))
	node.Annotations = schema.Annotations{
		Title:       schema.Text("Accent"),
		Help:        schema.Text("Used for links"),
		Warning:     schema.Text("Affects contrast"),
		Description: schema.Text("Theme accent color"),
		Widget:      &widget,
	}
	node.Formula = schema.Text("theme.accent")

	out, err := SerializeNode(node)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"type":"string","title":"Accent","description":"Theme accent color","help":"Used for links","warning":"Affects contrast","widget":"color","formula":"theme.accent"}`
	if got := encode(t, out); got != want {
		t.Fatalf("unexpected output\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSerializeNode_Dynamic(t *testing.T) {
	values := leaf(schema.RequiredType(schema.IntegerType{}))

	open := &schema.Compiled{
		Types:   []schema.TypeSpec{schema.DefaultType()},
		Dynamic: &schema.CompiledDynamic{Keys: leaf(schema.RequiredType(schema.StringType{})), Values: values},
	}
	out, err := SerializeNode(open)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got, want := encode(t, out), `{"type":"object","additionalProperties":{"type":"integer"}}`; got != want {
		t.Fatalf("unexpected output\nwant: %s\ngot:  %s", want, got)
	}

	patterned := &schema.Compiled{
		Types: []schema.TypeSpec{schema.DefaultType()},
		Dynamic: &schema.CompiledDynamic{
			Keys:   leaf(schema.RequiredType(schema.StringType{Config: &schema.StringConfig{Pattern: "^x-"}})),
			Values: values,
		},
	}
	out, err = SerializeNode(patterned)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got, want := encode(t, out), `{"type":"object","patternProperties":{"^x-":{"type":"integer"}},"additionalProperties":false}`; got != want {
		t.Fatalf("unexpected output\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSerialize_NilDocument(t *testing.T) {
	if _, err := Serialize(nil); !errors.Is(err, schema.ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}
