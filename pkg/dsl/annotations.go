package dsl

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// annotations decodes display metadata from the whole node; keys owned by
// other extractors are ignored.
func (d *Deserializer) annotations(mapping *yaml.Node, path string) (schema.Annotations, error) {
	var ann schema.Annotations
	if err := mapping.Decode(&ann); err != nil {
		return schema.Annotations{}, schema.WrapError(schema.KindDeserialization, path, err, "cannot deserialize schema annotations")
	}
	return ann.Map(d.sanitize), nil
}

func (d *Deserializer) display(mapping *yaml.Node, path string) (schema.DisplayInformation, error) {
	var info schema.DisplayInformation
	if err := mapping.Decode(&info); err != nil {
		return schema.DisplayInformation{}, schema.WrapError(schema.KindDeserialization, path, err, "cannot deserialize enumeration annotations")
	}
	return info.Map(d.sanitize), nil
}
