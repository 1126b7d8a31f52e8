package dsl

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// enumeration reads the "enum" sequence. Bare literals and entries without a
// "type" inherit the enclosing node's type.
func (d *Deserializer) enumeration(mapping *yaml.Node, parent schema.TypeSpec, path string) ([]schema.EnumerationValue, error) {
	node := lookup(mapping, "enum")
	if node == nil {
		return nil, nil
	}
	enumPath := schema.JoinPath(path, "enum")
	if node.Kind != yaml.SequenceNode {
		return nil, schema.NewError(schema.KindTypeMismatch, enumPath, "`enum` is not a sequence")
	}

	values := make([]schema.EnumerationValue, 0, len(node.Content))
	for idx, raw := range node.Content {
		entry := resolve(raw)
		entryPath := schema.JoinPath(enumPath, strconv.Itoa(idx))
		switch {
		case entry == nil || isNull(entry):
			return nil, schema.NewError(schema.KindTypeMismatch, entryPath, "enumeration value must be a scalar or a mapping")
		case entry.Kind == yaml.ScalarNode:
			value := schema.EnumerationFromLiteral(entry.Value)
			value.Type = parent
			value.Display = value.Display.Map(d.sanitize)
			values = append(values, value)
		case entry.Kind == yaml.MappingNode:
			value, err := d.enumerationEntry(entry, parent, entryPath)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		default:
			return nil, schema.NewError(schema.KindTypeMismatch, entryPath, "enumeration value must be a scalar or a mapping")
		}
	}
	return values, nil
}

func (d *Deserializer) enumerationEntry(entry *yaml.Node, parent schema.TypeSpec, path string) (schema.EnumerationValue, error) {
	value := schema.EnumerationValue{Type: parent}

	if typeNode := lookup(entry, "type"); typeNode != nil {
		if !isString(typeNode) {
			return schema.EnumerationValue{}, schema.NewError(schema.KindTypeMismatch, schema.JoinPath(path, "type"), "type must be a string")
		}
		kind, requiredness, err := ParseTypeName(typeNode.Value)
		if err != nil {
			return schema.EnumerationValue{}, schema.WrapError(schema.KindDeserialization, schema.JoinPath(path, "type"), err, "cannot deserialize enumeration type")
		}
		raw, err := schema.NewRawKind(kind)
		if err != nil {
			return schema.EnumerationValue{}, schema.WrapError(schema.KindDeserialization, schema.JoinPath(path, "type"), err, "cannot deserialize enumeration type")
		}
		value.Type = schema.TypeSpec{Requiredness: requiredness, Raw: raw}
	}

	if literal := lookup(entry, "value"); literal != nil {
		if literal.Kind != yaml.ScalarNode || isNull(literal) {
			return schema.EnumerationValue{}, schema.NewError(schema.KindTypeMismatch, schema.JoinPath(path, "value"), "enumeration value must be a scalar")
		}
		value.Value = schema.Text(literal.Value)
	}

	display, err := d.display(entry, path)
	if err != nil {
		return schema.EnumerationValue{}, err
	}
	value.Display = display
	return value, nil
}
