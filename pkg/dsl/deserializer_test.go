package dsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

func mustParse(t *testing.T, raw string) *yaml.Node {
	t.Helper()
	node, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return node
}

func deserialize(t *testing.T, raw string, options ...Option) schema.DocumentRoot {
	t.Helper()
	root, err := NewDeserializer(options...).DeserializeRoot(mustParse(t, raw))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	return root
}

func childNames(node *schema.Node) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

func TestDeserializeRoot_VersionDefaults(t *testing.T) {
	root := deserialize(t, "title: Settings\n")
	if root.Schema.Version == nil || *root.Schema.Version != schema.SupportedVersion {
		t.Fatalf("expected version to default to %d", schema.SupportedVersion)
	}
	if root.Schema.Typed {
		t.Fatalf("expected untyped root")
	}
	if got := root.Schema.Type; got != schema.DefaultType() {
		t.Fatalf("expected default object type, got %v", got)
	}
	if got := *root.Schema.Annotations.Title; got != "Settings" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestDeserializeRoot_PropertiesKeepOrder(t *testing.T) {
	root := deserialize(t, `
properties:
  - zeta:
      type: string
  - alpha:
      type: integer?
      min: 1
  - mid:
      properties:
        - leaf:
            type: boolean
`)
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, childNames(root.Schema)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}

	alpha, _ := root.Schema.Child("alpha")
	if alpha.Type.Requiredness != schema.Optional || alpha.Type.Kind() != schema.KindInteger {
		t.Fatalf("unexpected alpha type %v", alpha.Type)
	}
	cfg := schema.NumberConfigOf(alpha.Type.Raw)
	if cfg == nil || cfg.Min == nil || *cfg.Min != 1 {
		t.Fatalf("expected min 1, got %+v", cfg)
	}

	mid, _ := root.Schema.Child("mid")
	if mid.Typed || mid.Version != nil {
		t.Fatalf("nested untyped node must not be typed or versioned")
	}
	if _, ok := mid.Child("leaf"); !ok {
		t.Fatalf("expected nested leaf")
	}
}

func TestDeserializeRoot_TextOverridesWidget(t *testing.T) {
	root := deserialize(t, `
properties:
  - notes:
      type: text
      widget: dropdown
  - secret:
      type: password
      widget: password
`)
	notes, _ := root.Schema.Child("notes")
	if notes.Annotations.Widget == nil || *notes.Annotations.Widget != schema.WidgetTextarea {
		t.Fatalf("expected textarea widget, got %v", notes.Annotations.Widget)
	}
	secret, _ := root.Schema.Child("secret")
	if secret.Annotations.Widget == nil || *secret.Annotations.Widget != schema.WidgetPassword {
		t.Fatalf("expected authored widget to survive, got %v", secret.Annotations.Widget)
	}
}

func TestDeserializeRoot_Configs(t *testing.T) {
	root := deserialize(t, `
properties:
  - name:
      type: string
      minLength: 1
      maxLength: 20
      pattern: "^[a-z]+$"
  - ratio:
      type: number
      max: 1
      exclusiveMax: true
      multipleOf: 0.25
  - tags:
      type: array
      minItems: 1
      uniqueItems: true
      items:
        type: hostname
  - site:
      type: uri
      maxLength: 200
`)
	name, _ := root.Schema.Child("name")
	want := &schema.StringConfig{MinLength: intPtr(1), MaxLength: intPtr(20), Pattern: "^[a-z]+$"}
	if diff := cmp.Diff(want, schema.StringConfigOf(name.Type.Raw)); diff != "" {
		t.Fatalf("string config mismatch (-want +got):\n%s", diff)
	}

	ratio, _ := root.Schema.Child("ratio")
	wantNumber := &schema.NumberConfig{Max: floatPtr(1), MultipleOf: floatPtr(0.25), ExclusiveMax: true}
	if diff := cmp.Diff(wantNumber, schema.NumberConfigOf(ratio.Type.Raw)); diff != "" {
		t.Fatalf("number config mismatch (-want +got):\n%s", diff)
	}

	tags, _ := root.Schema.Child("tags")
	wantArray := &schema.ArrayConfig{MinItems: intPtr(1), UniqueItems: true}
	if diff := cmp.Diff(wantArray, schema.ArrayConfigOf(tags.Type.Raw)); diff != "" {
		t.Fatalf("array config mismatch (-want +got):\n%s", diff)
	}
	if tags.Items == nil || tags.Items.Type.Kind() != schema.KindHostname {
		t.Fatalf("expected hostname items, got %+v", tags.Items)
	}

	site, _ := root.Schema.Child("site")
	if got := site.Type.Raw.(schema.FormattedType); got.Of != schema.KindURI || got.Config == nil || *got.Config.MaxLength != 200 {
		t.Fatalf("unexpected formatted type %+v", got)
	}
}

func TestDeserializeRoot_UnconfiguredKindsHaveNilConfig(t *testing.T) {
	root := deserialize(t, "type: string\n")
	if cfg := schema.StringConfigOf(root.Schema.Type.Raw); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}

func TestDeserializeRoot_DateShapedStrings(t *testing.T) {
	root := deserialize(t, `
properties:
  - 2024-01-01:
      type: string
      pattern: 2024-01-01
  - 2024-01-01T10:00:00Z:
      type: boolean
`)
	if diff := cmp.Diff([]string{"2024-01-01", "2024-01-01T10:00:00Z"}, childNames(root.Schema)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	day, _ := root.Schema.Child("2024-01-01")
	cfg := schema.StringConfigOf(day.Type.Raw)
	if cfg == nil || cfg.Pattern != "2024-01-01" {
		t.Fatalf("expected date-shaped pattern, got %+v", cfg)
	}
}

func TestDeserializeRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind schema.ErrorKind
		path string
	}{
		{"unsupported version", "version: 2\n", schema.KindUnsupportedVersion, "/version"},
		{"non integer version", "version: one\n", schema.KindTypeMismatch, "/version"},
		{"root sequence", "- a\n- b\n", schema.KindTypeMismatch, ""},
		{"properties mapping", "properties:\n  a:\n    type: string\n", schema.KindTypeMismatch, "/properties"},
		{"property scalar", "properties:\n  - a\n", schema.KindTypeMismatch, "/properties/0"},
		{"property multi entry", "properties:\n  - a: {type: string}\n    b: {type: string}\n", schema.KindTypeMismatch, "/properties/0"},
		{"property name not string", "properties:\n  - 1: {type: string}\n", schema.KindTypeMismatch, "/properties/0"},
		{"property name boolean", "properties:\n  - true: {type: string}\n", schema.KindTypeMismatch, "/properties/0"},
		{"property name null", "properties:\n  - ~: {type: string}\n", schema.KindTypeMismatch, "/properties/0"},
		{"property not mapping", "properties:\n  - a: string\n", schema.KindTypeMismatch, "/properties/a"},
		{"nested version", "properties:\n  - a:\n      version: 1\n", schema.KindDeserialization, "/properties/a/version"},
		{"unknown type", "type: colour\n", schema.KindDeserialization, "/type"},
		{"type not string", "type: [string]\n", schema.KindTypeMismatch, "/type"},
		{"unknown widget", "widget: spinner\n", schema.KindDeserialization, ""},
		{"key for wrong kind", "type: boolean\nminLength: 3\n", schema.KindDeserialization, "/minLength"},
		{"number key on string", "type: string\nmin: 3\n", schema.KindDeserialization, "/min"},
		{"items on object", "items:\n  type: string\n", schema.KindDeserialization, "/items"},
		{"bad minLength", "type: string\nminLength: many\n", schema.KindDeserialization, "/minLength"},
		{"bad exclusive flag", "type: number\nexclusiveMin: 1\n", schema.KindDeserialization, "/exclusiveMin"},
		{"enum mapping", "enum:\n  a: 1\n", schema.KindTypeMismatch, "/enum"},
		{"enum null entry", "type: string\nenum:\n  - ~\n", schema.KindTypeMismatch, "/enum/0"},
		{"enum nested sequence", "type: string\nenum:\n  - [a]\n", schema.KindTypeMismatch, "/enum/0"},
		{"enum bad type", "type: string\nenum:\n  - {type: colour, value: red}\n", schema.KindDeserialization, "/enum/0/type"},
		{"keys without values", "keys:\n  type: string\n", schema.KindDeserialization, "/values"},
		{"values without keys", "values:\n  type: string\n", schema.KindDeserialization, "/keys"},
		{"nan formula", "formula: [.nan]\n", schema.KindSerialization, "/formula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializeRoot(mustParse(t, tt.raw))
			var compErr *schema.CompilationError
			if !errors.As(err, &compErr) {
				t.Fatalf("expected compilation error, got %v", err)
			}
			if compErr.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s (%v)", tt.kind, compErr.Kind, err)
			}
			if compErr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, compErr.Path)
			}
		})
	}
}

func TestDeserializeRoot_Aliases(t *testing.T) {
	root := deserialize(t, `
base: &port
  type: port
  title: Port
properties:
  - http: *port
  - https: *port
`)
	for _, name := range []string{"http", "https"} {
		child, ok := root.Schema.Child(name)
		if !ok || child.Type.Kind() != schema.KindPort {
			t.Fatalf("expected %s to resolve the port anchor", name)
		}
	}
}

func TestDeserializeRoot_Sanitizer(t *testing.T) {
	upper := func(s string) string { return "[" + s + "]" }
	root := deserialize(t, `
title: Root
type: string
enum:
  - a
  - value: b
    help: second
`, WithTextSanitizer(upper))

	if got := *root.Schema.Annotations.Title; got != "[Root]" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := *root.Schema.Enum[0].Display.Title; got != "[a]" {
		t.Fatalf("unexpected literal title %q", got)
	}
	if got := *root.Schema.Enum[0].Value; got != "a" {
		t.Fatalf("sanitizer must not touch values, got %q", got)
	}
	if got := *root.Schema.Enum[1].Display.Help; got != "[second]" {
		t.Fatalf("unexpected help %q", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse([]byte("  \n")); !errors.Is(err, schema.ErrDeserialization) {
		t.Fatalf("expected deserialization error for blank input, got %v", err)
	}
	if _, err := Parse([]byte("a: [")); !errors.Is(err, schema.ErrDeserialization) {
		t.Fatalf("expected deserialization error for bad syntax, got %v", err)
	}

	node := mustParse(t, `{"type": "string"}`)
	if node.Kind != yaml.MappingNode {
		t.Fatalf("expected JSON object to parse as mapping")
	}
}

func TestParseDocument_LabelsLocation(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("forms/broken.yaml"), []byte("a: ["))
	_, err := ParseDocument(doc)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var compErr *schema.CompilationError
	if !errors.As(err, &compErr) || !strings.Contains(compErr.Message, "(yaml forms/broken.yaml)") {
		t.Fatalf("expected format and location in message, got %v", err)
	}

	doc = schema.MustNewDocument(schema.SourceInline("payload"), []byte(`{"a": [`))
	if _, err = ParseDocument(doc); !errors.As(err, &compErr) || !strings.Contains(compErr.Message, "(json payload)") {
		t.Fatalf("expected sniffed json format in message, got %v", err)
	}
}

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		in           string
		kind         schema.Kind
		requiredness schema.Requiredness
		wantErr      bool
	}{
		{in: "string", kind: schema.KindString, requiredness: schema.Required},
		{in: "port?", kind: schema.KindPort, requiredness: schema.Optional},
		{in: " DateTime ", kind: schema.KindDateTime, requiredness: schema.Required},
		{in: "color?", wantErr: true},
		{in: "?", wantErr: true},
	}
	for _, tt := range tests {
		kind, requiredness, err := ParseTypeName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTypeName(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || kind != tt.kind || requiredness != tt.requiredness {
			t.Fatalf("ParseTypeName(%q) = %s, %s, %v", tt.in, kind, requiredness, err)
		}
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
