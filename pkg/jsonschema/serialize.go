package jsonschema

import (
	"github.com/goliatone/go-formdsl/pkg/schema"
)

// Draft4URL identifies the only output dialect. Draft 4 is emitted because
// downstream form renderers support it fully.
const Draft4URL = "http://json-schema.org/draft-04/schema#"

const (
	portMinimum = 0
	portMaximum = 65535
)

// Serialize renders a validated compiled document as a flat Draft 4 schema:
// the "$schema" entry first, followed by the root node's keywords.
func Serialize(root *schema.Compiled) (*Object, error) {
	if root == nil {
		return nil, schema.NewError(schema.KindSerialization, "", "jsonschema: document is nil")
	}
	out := NewObject()
	out.Set("$schema", Draft4URL)
	if err := serializeNode(root, out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// SerializeNode renders a single compiled node without the dialect entry.
func SerializeNode(node *schema.Compiled) (*Object, error) {
	out := NewObject()
	if err := serializeNode(node, out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func serializeNode(node *schema.Compiled, out *Object, path string) error {
	if node == nil {
		return schema.NewError(schema.KindSerialization, path, "jsonschema: schema node is nil")
	}

	writeType(node.Types, out)
	writeConstraints(node.Types, out)

	if len(node.Properties) > 0 {
		props := NewObject()
		required := make([]string, 0, len(node.Properties))
		for _, prop := range node.Properties {
			child := NewObject()
			if err := serializeNode(prop.Schema, child, schema.JoinPath(path, "properties", prop.Name)); err != nil {
				return err
			}
			props.Set(prop.Name, child)
			if prop.Schema.IsRequired() {
				required = append(required, prop.Name)
			}
		}
		out.Set("properties", props)
		if len(required) > 0 {
			out.Set("required", required)
		}
	}

	if node.Items != nil {
		items := NewObject()
		if err := serializeNode(node.Items, items, schema.JoinPath(path, "items")); err != nil {
			return err
		}
		out.Set("items", items)
	}

	if len(node.Enum) > 0 {
		if err := writeEnumeration(node.Enum, out, schema.JoinPath(path, "enum")); err != nil {
			return err
		}
	}

	writeAnnotations(node.Annotations, out)

	if node.Dynamic != nil {
		if err := writeDynamic(node.Dynamic, out, path); err != nil {
			return err
		}
	}

	if node.Formula != nil {
		out.Set("formula", *node.Formula)
	}
	return nil
}

func writeType(types []schema.TypeSpec, out *Object) {
	if len(types) == 0 {
		out.Set("type", schema.KindObject.JSONType())
		return
	}

	names := make([]string, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	formats := make(map[string]struct{}, len(types))
	format := ""
	for _, spec := range types {
		name := spec.Kind().JSONType()
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		if f := spec.Kind().Format(); f != "" {
			if _, ok := formats[f]; !ok {
				formats[f] = struct{}{}
				format = f
			}
		}
	}

	if len(names) == 1 {
		out.Set("type", names[0])
	} else {
		out.Set("type", names)
	}
	if len(formats) == 1 {
		out.Set("format", format)
	}
}

func writeConstraints(types []schema.TypeSpec, out *Object) {
	for _, spec := range types {
		if cfg := schema.StringConfigOf(spec.Raw); cfg != nil {
			setOnce(out, "minLength", cfg.MinLength)
			setOnce(out, "maxLength", cfg.MaxLength)
			if cfg.Pattern != "" {
				setOnce(out, "pattern", cfg.Pattern)
			}
		}
		if cfg := schema.NumberConfigOf(spec.Raw); cfg != nil {
			setOnce(out, "minimum", cfg.Min)
			if cfg.ExclusiveMin && cfg.Min != nil {
				setOnce(out, "exclusiveMinimum", true)
			}
			setOnce(out, "maximum", cfg.Max)
			if cfg.ExclusiveMax && cfg.Max != nil {
				setOnce(out, "exclusiveMaximum", true)
			}
			setOnce(out, "multipleOf", cfg.MultipleOf)
		}
		if spec.Kind() == schema.KindPort {
			setOnce(out, "minimum", portMinimum)
			setOnce(out, "maximum", portMaximum)
		}
		if cfg := schema.ArrayConfigOf(spec.Raw); cfg != nil {
			setOnce(out, "minItems", cfg.MinItems)
			setOnce(out, "maxItems", cfg.MaxItems)
			if cfg.UniqueItems {
				setOnce(out, "uniqueItems", true)
			}
		}
	}
}

// setOnce stores value unless key is already present or value is a nil
// pointer. The first candidate type wins when several constrain one keyword.
func setOnce(out *Object, key string, value any) {
	if out.Has(key) {
		return
	}
	switch v := value.(type) {
	case *int:
		if v == nil {
			return
		}
		value = *v
	case *float64:
		if v == nil {
			return
		}
		value = *v
	}
	out.Set(key, value)
}

// writeEnumeration emits the allowed literals plus a titled "oneOf" list.
// Draft 4 has no "const", so each option is a single-valued "enum".
func writeEnumeration(values []schema.EnumerationValue, out *Object, path string) error {
	literals := make([]any, 0, len(values))
	options := make([]any, 0, len(values))
	for _, value := range values {
		literal, err := value.Literal()
		if err != nil {
			return schema.WrapError(schema.KindSerialization, path, err, "jsonschema: cannot encode enumeration value")
		}
		literals = append(literals, literal)

		option := NewObject()
		option.Set("enum", []any{literal})
		writeDisplay(value.Display, option)
		options = append(options, option)
	}
	out.Set("enum", literals)
	out.Set("oneOf", options)
	return nil
}

func writeAnnotations(ann schema.Annotations, out *Object) {
	writeDisplay(schema.DisplayInformation{
		Title:       ann.Title,
		Help:        ann.Help,
		Warning:     ann.Warning,
		Description: ann.Description,
	}, out)
	if ann.Widget != nil {
		out.Set("widget", string(*ann.Widget))
	}
}

func writeDisplay(info schema.DisplayInformation, out *Object) {
	if info.Title != nil {
		out.Set("title", *info.Title)
	}
	if info.Description != nil {
		out.Set("description", *info.Description)
	}
	if info.Help != nil {
		out.Set("help", *info.Help)
	}
	if info.Warning != nil {
		out.Set("warning", *info.Warning)
	}
}

// writeDynamic maps the key/value schema onto Draft 4: a key pattern becomes
// patternProperties, otherwise the value schema applies to every extra key.
func writeDynamic(dynamic *schema.CompiledDynamic, out *Object, path string) error {
	values := NewObject()
	if err := serializeNode(dynamic.Values, values, schema.JoinPath(path, "values")); err != nil {
		return err
	}

	pattern := ""
	if dynamic.Keys != nil {
		if cfg := schema.StringConfigOf(dynamic.Keys.Primary().Raw); cfg != nil {
			pattern = cfg.Pattern
		}
	}
	if pattern == "" {
		out.Set("additionalProperties", values)
		return nil
	}

	patterns := NewObject()
	patterns.Set(pattern, values)
	out.Set("patternProperties", patterns)
	out.Set("additionalProperties", false)
	return nil
}
