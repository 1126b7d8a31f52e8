package dsl

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/jsonschema"
	"github.com/goliatone/go-formdsl/pkg/schema"
)

// readFormula keeps string formulas verbatim and re-encodes anything else as
// compact JSON text so formula consumers always receive a string.
func readFormula(mapping *yaml.Node, path string) (*string, error) {
	node := lookup(mapping, "formula")
	if node == nil {
		return nil, nil
	}
	formulaPath := schema.JoinPath(path, "formula")
	if isString(node) {
		return schema.Text(node.Value), nil
	}

	value, err := jsonValue(node)
	if err != nil {
		return nil, schema.WrapError(schema.KindSerialization, formulaPath, err, "error parsing formula value expression")
	}
	encoded, err := jsonschema.Marshal(value)
	if err != nil {
		return nil, schema.WrapError(schema.KindSerialization, formulaPath, err, "error parsing formula value expression")
	}
	return schema.Text(string(encoded)), nil
}

// jsonValue converts a node into a JSON-encodable value, keeping mapping
// order. Non-scalar mapping keys and non-finite floats cannot be encoded.
func jsonValue(node *yaml.Node) (any, error) {
	node = resolve(node)
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarValue(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.MappingNode:
		out := jsonschema.NewObject()
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			key := resolve(node.Content[idx])
			if key == nil || key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: key must be a scalar", node.Content[idx].Line)
			}
			value, err := jsonValue(node.Content[idx+1])
			if err != nil {
				return nil, err
			}
			out.Set(key.Value, value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", node.Line)
	}
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	case "!!int":
		var value int64
		if err := node.Decode(&value); err == nil {
			return value, nil
		}
		var unsigned uint64
		if err := node.Decode(&unsigned); err != nil {
			return nil, err
		}
		return unsigned, nil
	case "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("line %d: %s is not representable in JSON", node.Line, node.Value)
		}
		return value, nil
	default:
		return node.Value, nil
	}
}
