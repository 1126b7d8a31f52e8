package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/jsonschema"
	"github.com/goliatone/go-formdsl/pkg/openapi"
)

type openAPIConfig struct {
	*cli.Command
	ctx context.Context

	Name     string `cli:"name=name desc='component schema name (default: input file name)'"`
	Version  string `cli:"name=version desc='info.version of the generated document'"`
	Document bool   `cli:"name=doc desc='wrap the schema in an OpenAPI document'"`
	Output   string `cli:"name=o aliases=output desc='output file (default stdout)'"`
	NoColor  bool   `cli:"name=nocolor desc='disable colored diagnostics'"`
}

// OpenAPICommand returns the openapi subcommand.
func OpenAPICommand(ctx context.Context) *cli.Command {
	cfg := &openAPIConfig{ctx: ctx}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "openapi").
		WithAliases("oa").
		WithSynopsis("openapi [-doc] [-name Name] input").
		WithDescription("export a DSL document as an OpenAPI 3 schema").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *openAPIConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: openapi takes exactly one input, got %v", cli.ErrUsage, args)
	}
	input := args[0]

	doc, err := loadInput(cfg.ctx, cc.In, input)
	if err == nil {
		err = cfg.export(cc, input, doc.Raw())
	}
	if err != nil {
		reportError(os.Stderr, input, err, useColor(os.Stderr, cfg.NoColor))
		return cli.ExitCodeErr(1)
	}
	return nil
}

func (cfg *openAPIConfig) export(cc *cli.Context, input string, raw []byte) error {
	compiled, err := buildBytes(compiler.New(), raw)
	if err != nil {
		return err
	}

	var value any
	if cfg.Document {
		name := cfg.Name
		if name == "" {
			name = componentName(input)
		}
		value, err = openapi.ExportDocument(cfg.ctx, name, cfg.Version, compiled)
	} else {
		value, err = openapi.Export(cfg.ctx, compiled)
	}
	if err != nil {
		return err
	}

	payload, err := jsonschema.MarshalIndent(value, "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}
	return writeOutput(cc.Out, cfg.Output, append(payload, '\n'))
}

var invalidComponentChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// componentName derives an OpenAPI component key from an input path.
func componentName(input string) string {
	if input == stdinName {
		return "Schema"
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := invalidComponentChars.ReplaceAllString(base, "_")
	if name == "" || name == "_" || name == "." {
		return "Schema"
	}
	return name
}
