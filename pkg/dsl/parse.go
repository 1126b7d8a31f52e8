package dsl

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// Parse decodes YAML or JSON text into the generic node tree consumed by the
// deserializer. Only the first document of a multi-document stream is used.
func Parse(raw []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, schema.NewError(schema.KindDeserialization, "", "dsl: document is empty")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, schema.WrapError(schema.KindDeserialization, "", err, "dsl: parse document")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, schema.NewError(schema.KindDeserialization, "", "dsl: document has no content")
	}
	return doc.Content[0], nil
}

// ParseDocument parses a loaded document, labelling errors with its location
// and guessed format.
func ParseDocument(doc schema.Document) (*yaml.Node, error) {
	root, err := Parse(doc.Raw())
	if err != nil {
		var compErr *schema.CompilationError
		if errors.As(err, &compErr) && doc.Location() != "" {
			compErr.Message = fmt.Sprintf("%s (%s %s)", compErr.Message, doc.Format(), doc.Location())
		}
		return nil, err
	}
	return root, nil
}

// resolve follows alias nodes to their anchors.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// lookup returns the value stored under key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for idx := 0; idx+1 < len(mapping.Content); idx += 2 {
		keyNode := resolve(mapping.Content[idx])
		if keyNode != nil && keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return resolve(mapping.Content[idx+1])
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// isString reports whether node is a string scalar. Plain scalars shaped like
// dates resolve to !!timestamp in YAML 1.1 but are kept as text here.
func isString(node *yaml.Node) bool {
	if node == nil || node.Kind != yaml.ScalarNode {
		return false
	}
	switch node.ShortTag() {
	case "!!str", "!!timestamp":
		return true
	}
	return false
}
