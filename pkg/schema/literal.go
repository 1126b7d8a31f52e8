package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Literal converts the enumeration value into the JSON value matching its
// type: numbers for numeric kinds, booleans for boolean kinds and strings for
// everything else.
func (e EnumerationValue) Literal() (any, error) {
	if e.Value == nil {
		return nil, fmt.Errorf("enumeration value has no literal")
	}
	return ConvertLiteral(e.Type.Kind(), *e.Value)
}

// ConvertLiteral converts a textual literal into the JSON value for kind.
func ConvertLiteral(kind Kind, literal string) (any, error) {
	trimmed := strings.TrimSpace(literal)
	switch kind {
	case KindInteger, KindPort:
		value, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not an integer", literal)
		}
		if kind == KindPort && (value < 0 || value > 65535) {
			return nil, fmt.Errorf("literal %q is not a valid port", literal)
		}
		return value, nil
	case KindNumber:
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("literal %q is not a number", literal)
		}
		return value, nil
	case KindBoolean:
		value, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not a boolean", literal)
		}
		return value, nil
	case KindObject, KindArray:
		return nil, fmt.Errorf("%s kinds cannot carry enumeration literals", kind)
	default:
		return literal, nil
	}
}
