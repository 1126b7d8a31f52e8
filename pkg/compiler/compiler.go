package compiler

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdsl/pkg/dsl"
	"github.com/goliatone/go-formdsl/pkg/jsonschema"
	"github.com/goliatone/go-formdsl/pkg/schema"
	"github.com/goliatone/go-formdsl/pkg/validation"
)

// Compiler runs the deserialize, normalize, validate and serialize stages.
// Each stage's error aborts the pipeline unchanged.
type Compiler struct {
	validator    validation.Validator
	rules        []validation.Rule
	formulaCheck bool
	sanitize     bool
	extractor    dsl.Extractor
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithValidator replaces the default rule set. Rules added with WithRules
// and WithFormulaCheck are ignored when a custom validator is supplied.
func WithValidator(v validation.Validator) Option {
	return func(c *Compiler) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithRules appends rules to the default rule set.
func WithRules(rules ...validation.Rule) Option {
	return func(c *Compiler) {
		c.rules = append(c.rules, rules...)
	}
}

// WithFormulaCheck enables the expr-lang formula syntax rule.
func WithFormulaCheck(enabled bool) Option {
	return func(c *Compiler) {
		c.formulaCheck = enabled
	}
}

// WithSanitizedAnnotations strips unsafe markup from titles, help, warnings
// and descriptions while deserializing.
func WithSanitizedAnnotations(enabled bool) Option {
	return func(c *Compiler) {
		c.sanitize = enabled
	}
}

// WithExtractor replaces the dynamic key/value schema extractor.
func WithExtractor(extractor dsl.Extractor) Option {
	return func(c *Compiler) {
		c.extractor = extractor
	}
}

// New constructs a Compiler with the default validator.
func New(options ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.validator == nil {
		rules := append([]validation.Rule(nil), c.rules...)
		if c.formulaCheck {
			rules = append(rules, validation.NewFormulaRule())
		}
		c.validator = validation.New(rules...)
	}
	return c
}

// Build runs every stage except serialization and returns the validated tree.
func (c *Compiler) Build(root *yaml.Node) (*schema.Compiled, error) {
	doc, err := c.deserializer().DeserializeRoot(root)
	if err != nil {
		return nil, err
	}
	compiled := Lower(doc)
	Normalize(compiled)
	if err := c.validator.Validate(compiled); err != nil {
		return nil, err
	}
	return compiled, nil
}

// Compile turns a parsed DSL document into a Draft 4 JSON Schema.
func (c *Compiler) Compile(root *yaml.Node) (*jsonschema.Object, error) {
	compiled, err := c.Build(root)
	if err != nil {
		return nil, err
	}
	return jsonschema.Serialize(compiled)
}

// CompileBytes parses YAML or JSON text and compiles it.
func (c *Compiler) CompileBytes(raw []byte) (*jsonschema.Object, error) {
	root, err := dsl.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.Compile(root)
}

// CompileDocument compiles a loaded document.
func (c *Compiler) CompileDocument(doc schema.Document) (*jsonschema.Object, error) {
	root, err := dsl.ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	return c.Compile(root)
}

// BuildDocument parses a loaded document and returns the validated tree.
func (c *Compiler) BuildDocument(doc schema.Document) (*schema.Compiled, error) {
	root, err := dsl.ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	return c.Build(root)
}

func (c *Compiler) deserializer() *dsl.Deserializer {
	options := []dsl.Option{dsl.WithExtractor(c.extractor)}
	if c.sanitize {
		options = append(options, dsl.WithTextSanitizer(SanitizeText))
	}
	return dsl.NewDeserializer(options...)
}

// Compile is shorthand for New(options...).Compile(root).
func Compile(root *yaml.Node, options ...Option) (*jsonschema.Object, error) {
	return New(options...).Compile(root)
}
