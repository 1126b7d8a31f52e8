package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdsl/pkg/schema"
	"github.com/goliatone/go-formdsl/pkg/testsupport"
)

const settingsDSL = `
version: 1
title: Settings
properties:
  - name:
      type: string
      minLength: 1
      help: Shown in the sidebar
  - notes:
      type: text?
  - retries:
      type: integer
      min: 0
      max: 5
      enum: [1, 3, 5]
  - tags:
      type: array
      items:
        type: string
  - env:
      keys:
        type: string
        pattern: "^[A-Z_]+$"
      values:
        type: string
  - total:
      type: number
      formula: price * quantity
`

func buildSettings(t *testing.T) *schema.Compiled {
	t.Helper()
	return testsupport.BuildSource(t, settingsDSL)
}

func TestExport(t *testing.T) {
	out, err := Export(context.Background(), buildSettings(t))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !out.Type.Is("object") {
		t.Fatalf("expected object root, got %v", out.Type)
	}
	if out.Title != "Settings" {
		t.Fatalf("expected title, got %q", out.Title)
	}
	if diff := cmp.Diff([]string{"name", "retries", "tags", "env", "total"}, out.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	wantOrder := []any{"name", "notes", "retries", "tags", "env", "total"}
	if diff := cmp.Diff(wantOrder, out.Extensions[ExtensionPropertyOrder]); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	name := out.Properties["name"].Value
	if name.MinLength != 1 || name.Extensions[ExtensionHelp] != "Shown in the sidebar" {
		t.Fatalf("unexpected name schema: %+v", name)
	}

	notes := out.Properties["notes"].Value
	if notes.Extensions[ExtensionWidget] != "textarea" {
		t.Fatalf("expected textarea widget, got %v", notes.Extensions[ExtensionWidget])
	}

	retries := out.Properties["retries"].Value
	if diff := cmp.Diff([]any{1.0, 3.0, 5.0}, retries.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if len(retries.OneOf) != 3 || retries.OneOf[1].Value.Title != "3" {
		t.Fatalf("unexpected oneOf: %+v", retries.OneOf)
	}
	if retries.Min == nil || *retries.Min != 0 || retries.Max == nil || *retries.Max != 5 {
		t.Fatalf("unexpected bounds: min=%v max=%v", retries.Min, retries.Max)
	}

	tags := out.Properties["tags"].Value
	if tags.Items == nil || !tags.Items.Value.Type.Is("string") {
		t.Fatalf("expected string items, got %+v", tags.Items)
	}

	env := out.Properties["env"].Value
	if env.AdditionalProperties.Schema == nil || env.Extensions[ExtensionKeyPattern] != "^[A-Z_]+$" {
		t.Fatalf("unexpected dynamic schema: %+v", env)
	}

	total := out.Properties["total"].Value
	if total.Extensions[ExtensionFormula] != "price * quantity" {
		t.Fatalf("expected formula extension, got %v", total.Extensions[ExtensionFormula])
	}
}

func TestExport_ArrayWithoutItems(t *testing.T) {
	root := &schema.Compiled{Types: []schema.TypeSpec{schema.RequiredType(schema.ArrayType{})}}
	out, err := Export(context.Background(), root)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Items == nil {
		t.Fatalf("expected permissive items schema")
	}
}

func TestExportDocument(t *testing.T) {
	doc, err := ExportDocument(context.Background(), "Settings", "", buildSettings(t))
	if err != nil {
		t.Fatalf("export document: %v", err)
	}
	if doc.Info.Version != "1.0.0" {
		t.Fatalf("expected default version, got %q", doc.Info.Version)
	}
	if _, ok := doc.Components.Schemas["Settings"]; !ok {
		t.Fatalf("expected Settings component schema")
	}
}

func TestExport_Errors(t *testing.T) {
	if _, err := Export(context.Background(), nil); !errors.Is(err, schema.ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
	if _, err := ExportDocument(context.Background(), "", "", buildSettings(t)); !errors.Is(err, schema.ErrSerialization) {
		t.Fatalf("expected serialization error for empty name, got %v", err)
	}
}
