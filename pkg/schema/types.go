package schema

import "fmt"

// RawKind is the closed set of concrete type variants. Each variant may carry
// its own configuration; new kinds are added as new variants.
type RawKind interface {
	Kind() Kind
	rawKind()
}

// StringConfig constrains string-like kinds.
type StringConfig struct {
	MinLength *int
	MaxLength *int
	Pattern   string
}

// NumberConfig constrains integer and number kinds. Exclusive bounds follow the
// Draft 4 boolean form.
type NumberConfig struct {
	Min          *float64
	Max          *float64
	MultipleOf   *float64
	ExclusiveMin bool
	ExclusiveMax bool
}

// ArrayConfig constrains array kinds.
type ArrayConfig struct {
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

type ObjectType struct{}

type ArrayType struct {
	Config *ArrayConfig
}

type StringType struct {
	Config *StringConfig
}

// TextType is a multi-line string. Nodes of this kind always render with the
// textarea widget.
type TextType struct {
	Config *StringConfig
}

type PasswordType struct {
	Config *StringConfig
}

type BooleanType struct{}

type IntegerType struct {
	Config *NumberConfig
}

type NumberType struct {
	Config *NumberConfig
}

// PortType is an integer constrained to the TCP/UDP port range.
type PortType struct{}

// FormattedType covers string kinds that only differ by their format keyword.
type FormattedType struct {
	Of     Kind
	Config *StringConfig
}

func (ObjectType) Kind() Kind      { return KindObject }
func (ArrayType) Kind() Kind       { return KindArray }
func (StringType) Kind() Kind      { return KindString }
func (TextType) Kind() Kind        { return KindText }
func (PasswordType) Kind() Kind    { return KindPassword }
func (BooleanType) Kind() Kind     { return KindBoolean }
func (IntegerType) Kind() Kind     { return KindInteger }
func (NumberType) Kind() Kind      { return KindNumber }
func (PortType) Kind() Kind        { return KindPort }
func (t FormattedType) Kind() Kind { return t.Of }

func (ObjectType) rawKind()    {}
func (ArrayType) rawKind()     {}
func (StringType) rawKind()    {}
func (TextType) rawKind()      {}
func (PasswordType) rawKind()  {}
func (BooleanType) rawKind()   {}
func (IntegerType) rawKind()   {}
func (NumberType) rawKind()    {}
func (PortType) rawKind()      {}
func (FormattedType) rawKind() {}

// NewRawKind builds the unconfigured variant for kind.
func NewRawKind(kind Kind) (RawKind, error) {
	switch kind {
	case KindObject:
		return ObjectType{}, nil
	case KindArray:
		return ArrayType{}, nil
	case KindString:
		return StringType{}, nil
	case KindText:
		return TextType{}, nil
	case KindPassword:
		return PasswordType{}, nil
	case KindBoolean:
		return BooleanType{}, nil
	case KindInteger:
		return IntegerType{}, nil
	case KindNumber:
		return NumberType{}, nil
	case KindPort:
		return PortType{}, nil
	}
	if kind.IsFormatted() {
		return FormattedType{Of: kind}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// StringConfigOf returns the string constraints carried by raw, if any.
func StringConfigOf(raw RawKind) *StringConfig {
	switch t := raw.(type) {
	case StringType:
		return t.Config
	case TextType:
		return t.Config
	case PasswordType:
		return t.Config
	case FormattedType:
		return t.Config
	default:
		return nil
	}
}

// NumberConfigOf returns the numeric constraints carried by raw, if any.
func NumberConfigOf(raw RawKind) *NumberConfig {
	switch t := raw.(type) {
	case IntegerType:
		return t.Config
	case NumberType:
		return t.Config
	default:
		return nil
	}
}

// ArrayConfigOf returns the array constraints carried by raw, if any.
func ArrayConfigOf(raw RawKind) *ArrayConfig {
	if t, ok := raw.(ArrayType); ok {
		return t.Config
	}
	return nil
}

// Requiredness marks whether a typed value must be present.
type Requiredness int

const (
	Required Requiredness = iota
	Optional
)

func (r Requiredness) String() string {
	if r == Optional {
		return "optional"
	}
	return "required"
}

// TypeSpec wraps a RawKind with its requiredness.
type TypeSpec struct {
	Requiredness Requiredness
	Raw          RawKind
}

// RequiredType wraps raw as a required type.
func RequiredType(raw RawKind) TypeSpec {
	return TypeSpec{Requiredness: Required, Raw: raw}
}

// OptionalType wraps raw as an optional type.
func OptionalType(raw RawKind) TypeSpec {
	return TypeSpec{Requiredness: Optional, Raw: raw}
}

// DefaultType is the type assumed for nodes without explicit type information.
func DefaultType() TypeSpec {
	return RequiredType(ObjectType{})
}

// Kind returns the resolved kind; an unset RawKind resolves to object.
func (t TypeSpec) Kind() Kind {
	if t.Raw == nil {
		return KindObject
	}
	return t.Raw.Kind()
}

// IsRequired reports whether the type is marked required.
func (t TypeSpec) IsRequired() bool {
	return t.Requiredness == Required
}

func (t TypeSpec) String() string {
	if t.IsRequired() {
		return string(t.Kind())
	}
	return string(t.Kind()) + "?"
}
