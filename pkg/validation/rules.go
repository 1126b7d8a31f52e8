package validation

import (
	"regexp"
	"strconv"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc{RuleName: "candidates", Fn: checkCandidates},
		RuleFunc{RuleName: "enumeration", Fn: checkEnumeration},
		RuleFunc{RuleName: "properties", Fn: checkProperties},
		RuleFunc{RuleName: "items", Fn: checkItems},
		RuleFunc{RuleName: "bounds", Fn: checkBounds},
		RuleFunc{RuleName: "pattern", Fn: checkPattern},
		RuleFunc{RuleName: "dynamic", Fn: checkDynamic},
	}
}

// checkCandidates guards against trees that skipped normalization.
func checkCandidates(node *schema.Compiled, path string, report Reporter) {
	if len(node.Types) == 0 {
		report(path, CodeUntyped, "schema has no candidate types")
	}
}

func checkEnumeration(node *schema.Compiled, path string, report Reporter) {
	if node.Enum == nil {
		return
	}
	enumPath := schema.JoinPath(path, "enum")
	if len(node.Enum) == 0 {
		report(enumPath, CodeEnumEmpty, "enumeration has no values")
		return
	}
	if node.HasKind(schema.KindObject) || node.HasKind(schema.KindArray) {
		report(enumPath, CodeEnumUnsupported, "enumerations are not supported on %s schemas", node.Primary().Kind())
		return
	}

	seen := make(map[string]int, len(node.Enum))
	for idx, value := range node.Enum {
		valuePath := schema.JoinPath(enumPath, strconv.Itoa(idx))
		if value.Value == nil {
			report(valuePath, CodeEnumMissingValue, "enumeration value has no value")
			continue
		}
		if !matchesCandidate(node, value.Type.Kind()) {
			report(valuePath, CodeEnumKindMismatch, "enumeration value of kind %s does not match schema kind %s", value.Type.Kind(), node.Primary().Kind())
			continue
		}
		if _, err := value.Literal(); err != nil {
			report(valuePath, CodeEnumLiteral, "%v", err)
			continue
		}
		if prev, ok := seen[*value.Value]; ok {
			report(valuePath, CodeEnumDuplicate, "enumeration value %q duplicates entry %d", *value.Value, prev)
			continue
		}
		seen[*value.Value] = idx
	}
}

func matchesCandidate(node *schema.Compiled, kind schema.Kind) bool {
	for _, spec := range node.Types {
		if spec.Kind().JSONType() == kind.JSONType() {
			return true
		}
	}
	return false
}

func checkProperties(node *schema.Compiled, path string, report Reporter) {
	if len(node.Properties) == 0 {
		return
	}
	if !node.HasKind(schema.KindObject) {
		report(schema.JoinPath(path, "properties"), CodePropertiesKind, "properties are only allowed on object schemas, got %s", node.Primary().Kind())
	}
	seen := make(map[string]struct{}, len(node.Properties))
	for _, prop := range node.Properties {
		if _, ok := seen[prop.Name]; ok {
			report(schema.JoinPath(path, "properties", prop.Name), CodeDuplicateProperty, "property %q is declared more than once", prop.Name)
			continue
		}
		seen[prop.Name] = struct{}{}
	}
}

func checkItems(node *schema.Compiled, path string, report Reporter) {
	if node.Items != nil && !node.HasKind(schema.KindArray) {
		report(schema.JoinPath(path, "items"), CodeItemsKind, "items are only allowed on array schemas, got %s", node.Primary().Kind())
	}
}

func checkBounds(node *schema.Compiled, path string, report Reporter) {
	for _, spec := range node.Types {
		if cfg := schema.StringConfigOf(spec.Raw); cfg != nil {
			checkIntRange(path, "minLength", "maxLength", cfg.MinLength, cfg.MaxLength, report)
		}
		if cfg := schema.ArrayConfigOf(spec.Raw); cfg != nil {
			checkIntRange(path, "minItems", "maxItems", cfg.MinItems, cfg.MaxItems, report)
		}
		if cfg := schema.NumberConfigOf(spec.Raw); cfg != nil {
			if cfg.Min != nil && cfg.Max != nil && *cfg.Min > *cfg.Max {
				report(schema.JoinPath(path, "min"), CodeBounds, "min %v is greater than max %v", *cfg.Min, *cfg.Max)
			}
			if cfg.MultipleOf != nil && *cfg.MultipleOf <= 0 {
				report(schema.JoinPath(path, "multipleOf"), CodeBounds, "multipleOf must be greater than zero")
			}
		}
	}
}

func checkIntRange(path, minKey, maxKey string, min, max *int, report Reporter) {
	if min != nil && *min < 0 {
		report(schema.JoinPath(path, minKey), CodeBounds, "%s must not be negative", minKey)
	}
	if max != nil && *max < 0 {
		report(schema.JoinPath(path, maxKey), CodeBounds, "%s must not be negative", maxKey)
	}
	if min != nil && max != nil && *min > *max {
		report(schema.JoinPath(path, minKey), CodeBounds, "%s %d is greater than %s %d", minKey, *min, maxKey, *max)
	}
}

// checkPattern compiles patterns with Go's RE2 engine, which accepts the
// common subset of ECMA 262 used in form schemas.
func checkPattern(node *schema.Compiled, path string, report Reporter) {
	for _, spec := range node.Types {
		cfg := schema.StringConfigOf(spec.Raw)
		if cfg == nil || cfg.Pattern == "" {
			continue
		}
		if _, err := regexp.Compile(cfg.Pattern); err != nil {
			report(schema.JoinPath(path, "pattern"), CodePattern, "pattern %q does not compile: %v", cfg.Pattern, err)
		}
	}
}

func checkDynamic(node *schema.Compiled, path string, report Reporter) {
	if node.Dynamic == nil || node.Dynamic.Keys == nil {
		return
	}
	keysPath := schema.JoinPath(path, "keys")
	for _, spec := range node.Dynamic.Keys.Types {
		if !spec.Kind().IsStringLike() {
			report(keysPath, CodeDynamicKeys, "dynamic keys must be string-like, got %s", spec.Kind())
			return
		}
	}
	// Draft 4 can only constrain keys through patternProperties.
	for _, spec := range node.Dynamic.Keys.Types {
		cfg := schema.StringConfigOf(spec.Raw)
		if cfg == nil {
			continue
		}
		if cfg.MinLength != nil {
			report(schema.JoinPath(keysPath, "minLength"), CodeDynamicKeyLength, "key length limits cannot be expressed, use pattern instead")
		}
		if cfg.MaxLength != nil {
			report(schema.JoinPath(keysPath, "maxLength"), CodeDynamicKeyLength, "key length limits cannot be expressed, use pattern instead")
		}
		return
	}
}
