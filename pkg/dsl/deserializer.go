package dsl

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// Deserializer turns the generic node tree into a schema.DocumentRoot.
type Deserializer struct {
	extractor Extractor
	sanitize  func(string) string
}

// Option configures a Deserializer.
type Option func(*Deserializer)

// WithExtractor replaces the dynamic key/value schema extractor.
func WithExtractor(extractor Extractor) Option {
	return func(d *Deserializer) {
		if extractor != nil {
			d.extractor = extractor
		}
	}
}

// WithTextSanitizer runs every annotation text through fn.
func WithTextSanitizer(fn func(string) string) Option {
	return func(d *Deserializer) {
		d.sanitize = fn
	}
}

// NewDeserializer constructs a Deserializer with the keys/values extractor.
func NewDeserializer(options ...Option) *Deserializer {
	d := &Deserializer{extractor: KeysValuesExtractor{}}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// DeserializeRoot is shorthand for NewDeserializer().DeserializeRoot(root).
func DeserializeRoot(root *yaml.Node) (schema.DocumentRoot, error) {
	return NewDeserializer().DeserializeRoot(root)
}

// DeserializeRoot deserializes the document root. A missing version is
// recorded as the supported version.
func (d *Deserializer) DeserializeRoot(root *yaml.Node) (schema.DocumentRoot, error) {
	node, err := d.deserialize(root, "", true)
	if err != nil {
		return schema.DocumentRoot{}, err
	}
	if node.Version == nil {
		version := schema.SupportedVersion
		node.Version = &version
	}
	return schema.DocumentRoot{Schema: node}, nil
}

// DeserializeNode deserializes a nested schema at path. Nested schemas may not
// carry a version.
func (d *Deserializer) DeserializeNode(value *yaml.Node, path string) (*schema.Node, error) {
	return d.deserialize(value, path, false)
}

func (d *Deserializer) deserialize(value *yaml.Node, path string, root bool) (*schema.Node, error) {
	mapping := resolve(value)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil, schema.NewError(schema.KindTypeMismatch, path, "schema is not a mapping")
	}

	version, err := readVersion(mapping, path, root)
	if err != nil {
		return nil, err
	}

	spec, typed, err := typeInformation(mapping, path)
	if err != nil {
		return nil, err
	}

	annotations, err := d.annotations(mapping, path)
	if err != nil {
		return nil, err
	}
	annotations = annotations.WithTypeOverride(spec)

	children, err := d.properties(mapping, path)
	if err != nil {
		return nil, err
	}

	items, err := d.items(mapping, spec, path)
	if err != nil {
		return nil, err
	}

	enum, err := d.enumeration(mapping, spec, path)
	if err != nil {
		return nil, err
	}

	dynamic, err := d.extractor.Extract(mapping, path, d.DeserializeNode)
	if err != nil {
		return nil, err
	}

	formula, err := readFormula(mapping, path)
	if err != nil {
		return nil, err
	}

	return &schema.Node{
		Version:     version,
		Type:        spec,
		Typed:       typed,
		Children:    children,
		Items:       items,
		Dynamic:     dynamic,
		Enum:        enum,
		Annotations: annotations,
		Formula:     formula,
	}, nil
}

func readVersion(mapping *yaml.Node, path string, root bool) (*uint64, error) {
	node := lookup(mapping, "version")
	if node == nil {
		return nil, nil
	}
	if !root {
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, "version"), "version is only allowed on the document root")
	}

	var version uint64
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" || node.Decode(&version) != nil {
		return nil, schema.NewError(schema.KindTypeMismatch, schema.JoinPath(path, "version"), "version must be a positive integer")
	}
	if version != schema.SupportedVersion {
		return nil, schema.NewError(schema.KindUnsupportedVersion, schema.JoinPath(path, "version"), "invalid version number '%d' specified", version)
	}
	return &version, nil
}

func (d *Deserializer) properties(mapping *yaml.Node, path string) ([]schema.NamedChild, error) {
	node := lookup(mapping, "properties")
	if node == nil {
		return nil, nil
	}
	propsPath := schema.JoinPath(path, "properties")
	if node.Kind != yaml.SequenceNode {
		return nil, schema.NewError(schema.KindTypeMismatch, propsPath, "`properties` is not a sequence")
	}

	children := make([]schema.NamedChild, 0, len(node.Content))
	for idx, raw := range node.Content {
		entry := resolve(raw)
		entryPath := schema.JoinPath(propsPath, strconv.Itoa(idx))
		if entry == nil || entry.Kind != yaml.MappingNode {
			return nil, schema.NewError(schema.KindTypeMismatch, entryPath, "cannot deserialize property as mapping")
		}
		if len(entry.Content) != 2 {
			return nil, schema.NewError(schema.KindTypeMismatch, entryPath, "property must be a single-entry mapping, got %d entries", len(entry.Content)/2)
		}
		keyNode := resolve(entry.Content[0])
		if !isString(keyNode) {
			return nil, schema.NewError(schema.KindTypeMismatch, entryPath, "cannot deserialize property name as string")
		}
		child, err := d.DeserializeNode(entry.Content[1], schema.JoinPath(propsPath, keyNode.Value))
		if err != nil {
			return nil, err
		}
		children = append(children, schema.NamedChild{Name: keyNode.Value, Schema: child})
	}
	return children, nil
}

func (d *Deserializer) items(mapping *yaml.Node, spec schema.TypeSpec, path string) (*schema.Node, error) {
	node := lookup(mapping, "items")
	if node == nil {
		return nil, nil
	}
	if spec.Kind() != schema.KindArray {
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, "items"), "items is not valid for kind %s", spec.Kind())
	}
	return d.DeserializeNode(node, schema.JoinPath(path, "items"))
}
