package schema

// EnumerationValue is one allowed literal for a property.
type EnumerationValue struct {
	Type    TypeSpec
	Display DisplayInformation
	Value   *string
}

// EnumerationFromLiteral builds an enumeration value from a bare literal. The
// literal becomes both the title and the value; the type defaults to a
// required string until the enclosing property's type is applied.
func EnumerationFromLiteral(literal string) EnumerationValue {
	return EnumerationValue{
		Type:    RequiredType(StringType{}),
		Display: DisplayInformation{Title: Text(literal)},
		Value:   Text(literal),
	}
}
