package schema

// Compiled is the normalized-form schema tree consumed by the validator and
// serializers. Each node holds an ordered list of candidate types; an empty
// list means "not yet defaulted" and only exists before normalization.
type Compiled struct {
	Types       []TypeSpec
	Properties  []Property
	Items       *Compiled
	Dynamic     *CompiledDynamic
	Enum        []EnumerationValue
	Annotations Annotations
	Formula     *string
}

// Property pairs a declared name with its compiled schema.
type Property struct {
	Name   string
	Schema *Compiled
}

// CompiledDynamic is the compiled counterpart of Dynamic.
type CompiledDynamic struct {
	Keys   *Compiled
	Values *Compiled
}

// Primary returns the first candidate type, or the default object type when
// there are none.
func (c *Compiled) Primary() TypeSpec {
	if c == nil || len(c.Types) == 0 {
		return DefaultType()
	}
	return c.Types[0]
}

// IsRequired reports whether every candidate type is required. A property
// with any optional candidate is left out of its parent's required list.
func (c *Compiled) IsRequired() bool {
	if c == nil || len(c.Types) == 0 {
		return true
	}
	for _, spec := range c.Types {
		if !spec.IsRequired() {
			return false
		}
	}
	return true
}

// HasKind reports whether any candidate resolves to kind.
func (c *Compiled) HasKind(kind Kind) bool {
	if c == nil {
		return false
	}
	if len(c.Types) == 0 {
		return kind == KindObject
	}
	for _, spec := range c.Types {
		if spec.Kind() == kind {
			return true
		}
	}
	return false
}

// Property looks up a direct property by name.
func (c *Compiled) Property(name string) (*Compiled, bool) {
	if c == nil {
		return nil, false
	}
	for _, prop := range c.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}
