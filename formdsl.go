// Package formdsl compiles the form schema DSL into JSON Schema Draft 4
// documents with UI annotations. It wires the loader, compiler and
// serializer packages behind a small facade.
package formdsl

import (
	"context"
	"errors"

	internalLoader "github.com/goliatone/go-formdsl/internal/loader"
	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/jsonschema"
	"github.com/goliatone/go-formdsl/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewCompiler constructs a compiler with the supplied options.
func NewCompiler(options ...compiler.Option) *compiler.Compiler {
	return compiler.New(options...)
}

// Option configures the facade entry points.
type Option func(*config)

type config struct {
	loader          schema.Loader
	loaderOptions   []schema.LoaderOption
	compilerOptions []compiler.Option
}

// WithLoader replaces the default loader.
func WithLoader(loader schema.Loader) Option {
	return func(c *config) {
		c.loader = loader
	}
}

// WithLoaderOptions configures the default loader.
func WithLoaderOptions(options ...schema.LoaderOption) Option {
	return func(c *config) {
		c.loaderOptions = append(c.loaderOptions, options...)
	}
}

// WithCompilerOptions forwards options to the compiler.
func WithCompilerOptions(options ...compiler.Option) Option {
	return func(c *config) {
		c.compilerOptions = append(c.compilerOptions, options...)
	}
}

func newConfig(options []Option) *config {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.loader == nil {
		cfg.loader = NewLoader(cfg.loaderOptions...)
	}
	return cfg
}

// Load fetches the DSL document behind src.
func Load(ctx context.Context, src schema.Source, options ...Option) (schema.Document, error) {
	return load(ctx, newConfig(options), src)
}

// Compile loads src and compiles it into a Draft 4 schema.
func Compile(ctx context.Context, src schema.Source, options ...Option) (*jsonschema.Object, error) {
	cfg := newConfig(options)
	doc, err := load(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return compiler.New(cfg.compilerOptions...).CompileDocument(doc)
}

// Build loads src and returns the validated compiled tree.
func Build(ctx context.Context, src schema.Source, options ...Option) (*schema.Compiled, error) {
	cfg := newConfig(options)
	doc, err := load(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return compiler.New(cfg.compilerOptions...).BuildDocument(doc)
}

// CompileBytes compiles in-memory YAML or JSON text.
func CompileBytes(raw []byte, options ...compiler.Option) (*jsonschema.Object, error) {
	return compiler.New(options...).CompileBytes(raw)
}

func load(ctx context.Context, cfg *config, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("formdsl: source is required")
	}
	return cfg.loader.Load(ctx, src)
}
