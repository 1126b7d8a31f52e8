package schema

// SupportedVersion is the only DSL document version this module compiles.
const SupportedVersion uint64 = 1

// Node is a deserialized DSL schema node. It carries exactly one type; Typed
// records whether that type was authored or defaulted.
type Node struct {
	// Version is only ever set on the root.
	Version     *uint64
	Type        TypeSpec
	Typed       bool
	Children    []NamedChild
	Items       *Node
	Dynamic     *Dynamic
	Enum        []EnumerationValue
	Annotations Annotations
	Formula     *string
}

// NamedChild is one declared property. Children are kept in authoring order.
type NamedChild struct {
	Name   string
	Schema *Node
}

// Dynamic describes map-like nodes whose keys are not individually declared.
type Dynamic struct {
	Keys   *Node
	Values *Node
}

// DocumentRoot is the root node of a deserialized document.
type DocumentRoot struct {
	Schema *Node
}

// Version returns the effective document version.
func (d DocumentRoot) Version() uint64 {
	if d.Schema == nil || d.Schema.Version == nil {
		return SupportedVersion
	}
	return *d.Schema.Version
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child.Schema, true
		}
	}
	return nil, false
}
