package validation

import (
	"strings"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// FormulaRule checks that formulas parse as expr-lang expressions. Variables
// are resolved at evaluation time by the form runtime, so unknown identifiers
// are allowed; only syntax is checked.
type FormulaRule struct {
	mu    sync.Mutex
	cache map[string]error
}

// NewFormulaRule returns a FormulaRule with an empty compile cache.
func NewFormulaRule() *FormulaRule {
	return &FormulaRule{cache: make(map[string]error)}
}

func (r *FormulaRule) Name() string { return "formula" }

func (r *FormulaRule) Check(node *schema.Compiled, path string, report Reporter) {
	if node.Formula == nil {
		return
	}
	formula := strings.TrimSpace(*node.Formula)
	if formula == "" {
		report(schema.JoinPath(path, "formula"), CodeFormula, "formula is empty")
		return
	}
	if err := r.compile(formula); err != nil {
		report(schema.JoinPath(path, "formula"), CodeFormula, "formula does not compile: %v", err)
	}
}

func (r *FormulaRule) compile(formula string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		r.cache = make(map[string]error)
	}
	if err, ok := r.cache[formula]; ok {
		return err
	}
	_, err := expr.Compile(formula, expr.AllowUndefinedVariables())
	r.cache[formula] = err
	return err
}
