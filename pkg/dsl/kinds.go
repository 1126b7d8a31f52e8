package dsl

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

type keyFamily int

const (
	familyString keyFamily = iota
	familyNumber
	familyArray
)

// kindKeys lists the kind-specific keys and the kind family that accepts them.
var kindKeys = []struct {
	key    string
	family keyFamily
}{
	{"minLength", familyString},
	{"maxLength", familyString},
	{"pattern", familyString},
	{"min", familyNumber},
	{"max", familyNumber},
	{"multipleOf", familyNumber},
	{"exclusiveMin", familyNumber},
	{"exclusiveMax", familyNumber},
	{"minItems", familyArray},
	{"maxItems", familyArray},
	{"uniqueItems", familyArray},
	{"items", familyArray},
}

func familyOf(kind schema.Kind) (keyFamily, bool) {
	switch {
	case kind == schema.KindArray:
		return familyArray, true
	case kind == schema.KindInteger || kind == schema.KindNumber:
		return familyNumber, true
	case kind == schema.KindString || kind == schema.KindText || kind == schema.KindPassword || kind.IsFormatted():
		return familyString, true
	default:
		return 0, false
	}
}

// typeInformation reads the "type" key and the kind-specific keys of the
// resolved kind. Nodes without a "type" key are required objects.
func typeInformation(mapping *yaml.Node, path string) (schema.TypeSpec, bool, error) {
	typePath := schema.JoinPath(path, "type")
	node := lookup(mapping, "type")

	kind := schema.KindObject
	requiredness := schema.Required
	typed := false
	if node != nil {
		if !isString(node) {
			return schema.TypeSpec{}, false, schema.NewError(schema.KindTypeMismatch, typePath, "type must be a string")
		}
		parsedKind, parsedRequiredness, err := ParseTypeName(node.Value)
		if err != nil {
			return schema.TypeSpec{}, false, schema.WrapError(schema.KindDeserialization, typePath, err, "cannot deserialize type")
		}
		kind, requiredness, typed = parsedKind, parsedRequiredness, true
	}

	if err := checkKindKeys(mapping, kind, path); err != nil {
		return schema.TypeSpec{}, false, err
	}

	raw, err := rawKind(mapping, kind, path)
	if err != nil {
		return schema.TypeSpec{}, false, err
	}
	return schema.TypeSpec{Requiredness: requiredness, Raw: raw}, typed, nil
}

// ParseTypeName parses "kind" or "kind?" where the trailing question mark
// marks the type optional.
func ParseTypeName(name string) (schema.Kind, schema.Requiredness, error) {
	trimmed := strings.TrimSpace(name)
	requiredness := schema.Required
	if strings.HasSuffix(trimmed, "?") {
		requiredness = schema.Optional
		trimmed = strings.TrimSuffix(trimmed, "?")
	}
	kind, ok := schema.ParseKind(trimmed)
	if !ok {
		return "", requiredness, fmt.Errorf("unknown type %q", name)
	}
	return kind, requiredness, nil
}

func checkKindKeys(mapping *yaml.Node, kind schema.Kind, path string) error {
	family, hasFamily := familyOf(kind)
	for _, entry := range kindKeys {
		if lookup(mapping, entry.key) == nil {
			continue
		}
		if !hasFamily || entry.family != family {
			return schema.NewError(schema.KindDeserialization, schema.JoinPath(path, entry.key), "%s is not valid for kind %s", entry.key, kind)
		}
	}
	return nil
}

func rawKind(mapping *yaml.Node, kind schema.Kind, path string) (schema.RawKind, error) {
	switch kind {
	case schema.KindString:
		cfg, err := stringConfig(mapping, path)
		return schema.StringType{Config: cfg}, err
	case schema.KindText:
		cfg, err := stringConfig(mapping, path)
		return schema.TextType{Config: cfg}, err
	case schema.KindPassword:
		cfg, err := stringConfig(mapping, path)
		return schema.PasswordType{Config: cfg}, err
	case schema.KindInteger:
		cfg, err := numberConfig(mapping, path)
		return schema.IntegerType{Config: cfg}, err
	case schema.KindNumber:
		cfg, err := numberConfig(mapping, path)
		return schema.NumberType{Config: cfg}, err
	case schema.KindArray:
		cfg, err := arrayConfig(mapping, path)
		return schema.ArrayType{Config: cfg}, err
	}
	if kind.IsFormatted() {
		cfg, err := stringConfig(mapping, path)
		return schema.FormattedType{Of: kind, Config: cfg}, err
	}
	return schema.NewRawKind(kind)
}

func stringConfig(mapping *yaml.Node, path string) (*schema.StringConfig, error) {
	cfg := &schema.StringConfig{}
	var err error
	if cfg.MinLength, err = optionalInt(mapping, "minLength", path); err != nil {
		return nil, err
	}
	if cfg.MaxLength, err = optionalInt(mapping, "maxLength", path); err != nil {
		return nil, err
	}
	set := cfg.MinLength != nil || cfg.MaxLength != nil
	if node := lookup(mapping, "pattern"); node != nil {
		if !isString(node) {
			return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, "pattern"), "pattern must be a string")
		}
		cfg.Pattern = node.Value
		set = true
	}
	if !set {
		return nil, nil
	}
	return cfg, nil
}

func numberConfig(mapping *yaml.Node, path string) (*schema.NumberConfig, error) {
	cfg := &schema.NumberConfig{}
	var err error
	if cfg.Min, err = optionalFloat(mapping, "min", path); err != nil {
		return nil, err
	}
	if cfg.Max, err = optionalFloat(mapping, "max", path); err != nil {
		return nil, err
	}
	if cfg.MultipleOf, err = optionalFloat(mapping, "multipleOf", path); err != nil {
		return nil, err
	}
	exclusiveMin, err := optionalBool(mapping, "exclusiveMin", path)
	if err != nil {
		return nil, err
	}
	exclusiveMax, err := optionalBool(mapping, "exclusiveMax", path)
	if err != nil {
		return nil, err
	}
	if cfg.Min == nil && cfg.Max == nil && cfg.MultipleOf == nil && exclusiveMin == nil && exclusiveMax == nil {
		return nil, nil
	}
	cfg.ExclusiveMin = exclusiveMin != nil && *exclusiveMin
	cfg.ExclusiveMax = exclusiveMax != nil && *exclusiveMax
	return cfg, nil
}

func arrayConfig(mapping *yaml.Node, path string) (*schema.ArrayConfig, error) {
	cfg := &schema.ArrayConfig{}
	var err error
	if cfg.MinItems, err = optionalInt(mapping, "minItems", path); err != nil {
		return nil, err
	}
	if cfg.MaxItems, err = optionalInt(mapping, "maxItems", path); err != nil {
		return nil, err
	}
	unique, err := optionalBool(mapping, "uniqueItems", path)
	if err != nil {
		return nil, err
	}
	if cfg.MinItems == nil && cfg.MaxItems == nil && unique == nil {
		return nil, nil
	}
	cfg.UniqueItems = unique != nil && *unique
	return cfg, nil
}

func optionalInt(mapping *yaml.Node, key, path string) (*int, error) {
	node := lookup(mapping, key)
	if node == nil {
		return nil, nil
	}
	var value int
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" || node.Decode(&value) != nil {
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, key), "%s must be an integer", key)
	}
	return &value, nil
}

func optionalFloat(mapping *yaml.Node, key, path string) (*float64, error) {
	node := lookup(mapping, key)
	if node == nil {
		return nil, nil
	}
	tag := node.ShortTag()
	var value float64
	if node.Kind != yaml.ScalarNode || (tag != "!!int" && tag != "!!float") || node.Decode(&value) != nil {
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, key), "%s must be a number", key)
	}
	return &value, nil
}

func optionalBool(mapping *yaml.Node, key, path string) (*bool, error) {
	node := lookup(mapping, key)
	if node == nil {
		return nil, nil
	}
	var value bool
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" || node.Decode(&value) != nil {
		return nil, schema.NewError(schema.KindDeserialization, schema.JoinPath(path, key), "%s must be a boolean", key)
	}
	return &value, nil
}
