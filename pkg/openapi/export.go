package openapi

import (
	"context"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

const (
	ExtensionHelp          = "x-help"
	ExtensionWarning       = "x-warning"
	ExtensionWidget        = "x-widget"
	ExtensionFormula       = "x-formula"
	ExtensionPropertyOrder = "x-property-order"
	ExtensionKeyPattern    = "x-key-pattern"
)

// Export converts a validated compiled tree into an OpenAPI 3 schema and
// validates the result.
func Export(ctx context.Context, root *schema.Compiled) (*openapi3.Schema, error) {
	if root == nil {
		return nil, schema.NewError(schema.KindSerialization, "", "openapi: document is nil")
	}
	out, err := convert(root, "")
	if err != nil {
		return nil, err
	}
	if err := out.Validate(ctx); err != nil {
		return nil, schema.WrapError(schema.KindSerialization, "", err, "openapi: exported schema is invalid")
	}
	return out, nil
}

// ExportDocument wraps the exported schema in a minimal OpenAPI document
// under components/schemas/<name>.
func ExportDocument(ctx context.Context, name, version string, root *schema.Compiled) (*openapi3.T, error) {
	if name == "" {
		return nil, schema.NewError(schema.KindSerialization, "", "openapi: schema name is required")
	}
	if version == "" {
		version = "1.0.0"
	}
	out, err := Export(ctx, root)
	if err != nil {
		return nil, err
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   name,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{name: openapi3.NewSchemaRef("", out)},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, schema.WrapError(schema.KindSerialization, "", err, "openapi: exported document is invalid")
	}
	return doc, nil
}

func convert(node *schema.Compiled, path string) (*openapi3.Schema, error) {
	if node == nil {
		return nil, schema.NewError(schema.KindSerialization, path, "openapi: schema node is nil")
	}
	out := &openapi3.Schema{}
	applyTypes(node.Types, out)

	if len(node.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(node.Properties))
		order := make([]any, 0, len(node.Properties))
		for _, prop := range node.Properties {
			child, err := convert(prop.Schema, schema.JoinPath(path, "properties", prop.Name))
			if err != nil {
				return nil, err
			}
			out.Properties[prop.Name] = openapi3.NewSchemaRef("", child)
			order = append(order, prop.Name)
			if prop.Schema.IsRequired() {
				out.Required = append(out.Required, prop.Name)
			}
		}
		setExtension(out, ExtensionPropertyOrder, order)
	}

	if node.Items != nil {
		items, err := convert(node.Items, schema.JoinPath(path, "items"))
		if err != nil {
			return nil, err
		}
		out.Items = openapi3.NewSchemaRef("", items)
	} else if node.HasKind(schema.KindArray) {
		out.Items = openapi3.NewSchemaRef("", &openapi3.Schema{})
	}

	if len(node.Enum) > 0 {
		if err := applyEnumeration(node.Enum, out, schema.JoinPath(path, "enum")); err != nil {
			return nil, err
		}
	}

	applyAnnotations(node.Annotations, out)

	if node.Dynamic != nil {
		values, err := convert(node.Dynamic.Values, schema.JoinPath(path, "values"))
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = openapi3.AdditionalProperties{Schema: openapi3.NewSchemaRef("", values)}
		if cfg := schema.StringConfigOf(node.Dynamic.Keys.Primary().Raw); cfg != nil && cfg.Pattern != "" {
			setExtension(out, ExtensionKeyPattern, cfg.Pattern)
		}
	}

	if node.Formula != nil {
		setExtension(out, ExtensionFormula, *node.Formula)
	}
	return out, nil
}

func applyTypes(types []schema.TypeSpec, out *openapi3.Schema) {
	if len(types) == 0 {
		types = []schema.TypeSpec{schema.DefaultType()}
	}
	seen := make(map[string]struct{}, len(types))
	names := openapi3.Types{}
	for _, spec := range types {
		name := spec.Kind().JSONType()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	out.Type = &names

	primary := types[0]
	out.Format = primary.Kind().Format()
	if cfg := schema.StringConfigOf(primary.Raw); cfg != nil {
		if cfg.MinLength != nil && *cfg.MinLength > 0 {
			out.MinLength = uint64(*cfg.MinLength)
		}
		if cfg.MaxLength != nil && *cfg.MaxLength >= 0 {
			value := uint64(*cfg.MaxLength)
			out.MaxLength = &value
		}
		out.Pattern = cfg.Pattern
	}
	if cfg := schema.NumberConfigOf(primary.Raw); cfg != nil {
		out.Min = cloneFloat(cfg.Min)
		out.Max = cloneFloat(cfg.Max)
		out.MultipleOf = cloneFloat(cfg.MultipleOf)
		out.ExclusiveMin = cfg.ExclusiveMin && cfg.Min != nil
		out.ExclusiveMax = cfg.ExclusiveMax && cfg.Max != nil
	}
	if primary.Kind() == schema.KindPort {
		out.Min = floatPtr(0)
		out.Max = floatPtr(65535)
	}
	if cfg := schema.ArrayConfigOf(primary.Raw); cfg != nil {
		if cfg.MinItems != nil && *cfg.MinItems > 0 {
			out.MinItems = uint64(*cfg.MinItems)
		}
		if cfg.MaxItems != nil && *cfg.MaxItems >= 0 {
			value := uint64(*cfg.MaxItems)
			out.MaxItems = &value
		}
		out.UniqueItems = cfg.UniqueItems
	}
}

func applyEnumeration(values []schema.EnumerationValue, out *openapi3.Schema, path string) error {
	out.Enum = make([]any, 0, len(values))
	out.OneOf = make(openapi3.SchemaRefs, 0, len(values))
	for idx, value := range values {
		literal, err := value.Literal()
		if err != nil {
			return schema.WrapError(schema.KindSerialization, schema.JoinPath(path, strconv.Itoa(idx)), err, "openapi: cannot encode enumeration value")
		}
		if n, ok := literal.(int64); ok {
			// kin-openapi decodes JSON numbers as float64; match it.
			literal = float64(n)
		}
		out.Enum = append(out.Enum, literal)

		option := &openapi3.Schema{Enum: []any{literal}}
		applyDisplay(value.Display, option)
		out.OneOf = append(out.OneOf, openapi3.NewSchemaRef("", option))
	}
	return nil
}

func applyAnnotations(ann schema.Annotations, out *openapi3.Schema) {
	applyDisplay(schema.DisplayInformation{
		Title:       ann.Title,
		Help:        ann.Help,
		Warning:     ann.Warning,
		Description: ann.Description,
	}, out)
	if ann.Widget != nil {
		setExtension(out, ExtensionWidget, string(*ann.Widget))
	}
}

func applyDisplay(info schema.DisplayInformation, out *openapi3.Schema) {
	if info.Title != nil {
		out.Title = *info.Title
	}
	if info.Description != nil {
		out.Description = *info.Description
	}
	if info.Help != nil {
		setExtension(out, ExtensionHelp, *info.Help)
	}
	if info.Warning != nil {
		setExtension(out, ExtensionWarning, *info.Warning)
	}
}

func setExtension(out *openapi3.Schema, key string, value any) {
	if out.Extensions == nil {
		out.Extensions = make(map[string]any)
	}
	out.Extensions[key] = value
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return floatPtr(*value)
}

func floatPtr(value float64) *float64 {
	return &value
}
