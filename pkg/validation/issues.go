package validation

import (
	"fmt"
	"strings"
)

// Issue codes reported by the built-in rules.
const (
	CodeUntyped           = "untyped"
	CodeEnumEmpty         = "enum_empty"
	CodeEnumMissingValue  = "enum_missing_value"
	CodeEnumLiteral       = "enum_literal"
	CodeEnumKindMismatch  = "enum_kind_mismatch"
	CodeEnumDuplicate     = "enum_duplicate"
	CodeEnumUnsupported   = "enum_unsupported_kind"
	CodeDuplicateProperty = "duplicate_property"
	CodePropertiesKind    = "properties_kind"
	CodeItemsKind         = "items_kind"
	CodeBounds            = "invalid_bounds"
	CodePattern           = "invalid_pattern"
	CodeDynamicKeys       = "dynamic_keys_kind"
	CodeDynamicKeyLength  = "dynamic_keys_length"
	CodeFormula           = "invalid_formula"
)

// Issue represents a validation error with location metadata. Path is a
// slash separated pointer into the DSL document; Field is the dotted property
// path derived from it.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: %s at %s", i.Code, i.Message, i.Path)
}

// Issues is a collection of validation issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	limit := len(iss)
	if limit > maxShown {
		limit = maxShown
	}
	for idx := 0; idx < limit; idx++ {
		if idx > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[idx].String())
	}
	if len(iss) > limit {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Result captures validation outcomes for tooling that wants every issue
// rather than an error.
type Result struct {
	Valid  bool   `json:"valid"`
	Issues Issues `json:"issues,omitempty"`
}

// fieldPathFromPointer converts "/properties/network/properties/ssid" into
// "network.ssid".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescape(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescape(parts[idx+1]))
				idx++
			}
		case "items", "keys", "values":
			out = append(out, segment)
		case "enum":
			if idx+1 < len(parts) {
				idx++
			}
		default:
			if segment != "" {
				out = append(out, segment)
			}
		}
	}
	return strings.Join(out, ".")
}

func unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
