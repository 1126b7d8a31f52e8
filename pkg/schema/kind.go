package schema

import "strings"

// Kind enumerates the concrete DSL type kinds.
type Kind string

const (
	KindObject   Kind = "object"
	KindArray    Kind = "array"
	KindString   Kind = "string"
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindBoolean  Kind = "boolean"
	KindInteger  Kind = "integer"
	KindNumber   Kind = "number"
	KindPort     Kind = "port"
	KindEmail    Kind = "email"
	KindHostname Kind = "hostname"
	KindURI      Kind = "uri"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
	KindIPv4     Kind = "ipv4"
	KindIPv6     Kind = "ipv6"
)

var knownKinds = map[Kind]struct{}{
	KindObject:   {},
	KindArray:    {},
	KindString:   {},
	KindText:     {},
	KindPassword: {},
	KindBoolean:  {},
	KindInteger:  {},
	KindNumber:   {},
	KindPort:     {},
	KindEmail:    {},
	KindHostname: {},
	KindURI:      {},
	KindDate:     {},
	KindTime:     {},
	KindDateTime: {},
	KindIPv4:     {},
	KindIPv6:     {},
}

// ParseKind resolves a DSL kind name.
func ParseKind(name string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	_, ok := knownKinds[kind]
	return kind, ok
}

// JSONType returns the JSON Schema primitive type the kind serializes to.
func (k Kind) JSONType() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindBoolean:
		return "boolean"
	case KindInteger, KindPort:
		return "integer"
	case KindNumber:
		return "number"
	default:
		return "string"
	}
}

// Format returns the "format" keyword emitted for the kind, if any.
func (k Kind) Format() string {
	switch k {
	case KindPassword:
		return "password"
	case KindEmail:
		return "email"
	case KindHostname:
		return "hostname"
	case KindURI:
		return "uri"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "date-time"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	default:
		return ""
	}
}

// IsStringLike reports whether values of the kind are JSON strings.
func (k Kind) IsStringLike() bool {
	return k.JSONType() == "string"
}

// IsNumeric reports whether values of the kind are JSON numbers.
func (k Kind) IsNumeric() bool {
	switch k.JSONType() {
	case "integer", "number":
		return true
	default:
		return false
	}
}

// IsFormatted reports whether the kind maps onto FormattedType.
func (k Kind) IsFormatted() bool {
	switch k {
	case KindEmail, KindHostname, KindURI, KindDate, KindTime, KindDateTime, KindIPv4, KindIPv6:
		return true
	default:
		return false
	}
}
