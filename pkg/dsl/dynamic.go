package dsl

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// DecodeFunc deserializes a nested schema found at path.
type DecodeFunc func(node *yaml.Node, path string) (*schema.Node, error)

// Extractor pulls an optional dynamic key/value schema out of a mapping node.
// It returns nil when the node declares none.
type Extractor interface {
	Extract(mapping *yaml.Node, path string, decode DecodeFunc) (*schema.Dynamic, error)
}

// ExtractorFunc adapts a function into an Extractor.
type ExtractorFunc func(mapping *yaml.Node, path string, decode DecodeFunc) (*schema.Dynamic, error)

func (fn ExtractorFunc) Extract(mapping *yaml.Node, path string, decode DecodeFunc) (*schema.Dynamic, error) {
	return fn(mapping, path, decode)
}

// KeysValuesExtractor reads the "keys" and "values" entries. Both must be
// present together.
type KeysValuesExtractor struct{}

func (KeysValuesExtractor) Extract(mapping *yaml.Node, path string, decode DecodeFunc) (*schema.Dynamic, error) {
	keysNode := lookup(mapping, "keys")
	valuesNode := lookup(mapping, "values")
	switch {
	case keysNode == nil && valuesNode == nil:
		return nil, nil
	case keysNode == nil:
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, "keys"), "`values` requires a `keys` schema")
	case valuesNode == nil:
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, "values"), "`keys` requires a `values` schema")
	}

	keys, err := decode(keysNode, schema.JoinPath(path, "keys"))
	if err != nil {
		return nil, err
	}
	values, err := decode(valuesNode, schema.JoinPath(path, "values"))
	if err != nil {
		return nil, err
	}
	return &schema.Dynamic{Keys: keys, Values: values}, nil
}
