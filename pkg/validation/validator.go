package validation

import (
	"fmt"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// Validator is the last gate before serialization. Implementations must not
// mutate the tree.
type Validator interface {
	Validate(root *schema.Compiled) error
}

// Reporter receives issues found by a rule.
type Reporter func(path, code, format string, args ...any)

// Rule checks a single compiled node. Rules are called for every node in the
// tree, depth first.
type Rule interface {
	Name() string
	Check(node *schema.Compiled, path string, report Reporter)
}

// RuleFunc adapts a function into a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(node *schema.Compiled, path string, report Reporter)
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Check(node *schema.Compiled, path string, report Reporter) {
	if r.Fn != nil {
		r.Fn(node, path, report)
	}
}

// RuleSet runs a list of rules over the whole tree.
type RuleSet struct {
	rules []Rule
}

var _ Validator = (*RuleSet)(nil)

// New returns a RuleSet with the default rules followed by extra.
func New(extra ...Rule) *RuleSet {
	rules := DefaultRules()
	for _, rule := range extra {
		if rule != nil {
			rules = append(rules, rule)
		}
	}
	return &RuleSet{rules: rules}
}

// NewRuleSet returns a RuleSet with exactly the supplied rules.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: append([]Rule(nil), rules...)}
}

// Rules returns the configured rule names in evaluation order.
func (v *RuleSet) Rules() []string {
	names := make([]string, 0, len(v.rules))
	for _, rule := range v.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Check runs every rule and collects all issues.
func (v *RuleSet) Check(root *schema.Compiled) Result {
	var issues Issues
	report := func(path, code, format string, args ...any) {
		issues = append(issues, newIssue(path, code, format, args...))
	}
	if root == nil {
		report("", CodeUntyped, "document is empty")
	} else {
		v.walk(root, "", report)
	}
	return Result{Valid: len(issues) == 0, Issues: issues}
}

// Validate returns a validation CompilationError wrapping every issue found.
func (v *RuleSet) Validate(root *schema.Compiled) error {
	result := v.Check(root)
	if result.Valid {
		return nil
	}
	first := result.Issues[0]
	return schema.WrapError(schema.KindValidation, first.Path, result.Issues, "schema is invalid")
}

func (v *RuleSet) walk(node *schema.Compiled, path string, report Reporter) {
	if node == nil {
		return
	}
	for _, rule := range v.rules {
		rule.Check(node, path, report)
	}
	for _, prop := range node.Properties {
		v.walk(prop.Schema, schema.JoinPath(path, "properties", prop.Name), report)
	}
	v.walk(node.Items, schema.JoinPath(path, "items"), report)
	if node.Dynamic != nil {
		v.walk(node.Dynamic.Keys, schema.JoinPath(path, "keys"), report)
		v.walk(node.Dynamic.Values, schema.JoinPath(path, "values"), report)
	}
}

func newIssue(path, code, format string, args ...any) Issue {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Issue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Code:    code,
		Message: msg,
	}
}
