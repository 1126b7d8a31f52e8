package commands

import (
	"context"

	"github.com/scott-cotton/cli"
)

const usageText = `formdsl compiles form schema DSL documents (YAML or JSON) into
JSON Schema Draft 4 with UI annotations.

Inputs are file paths, http(s) URLs, or "-" for stdin.

Examples:
  formdsl compile settings.yaml
  formdsl compile -o settings.schema.json -sanitize settings.yaml
  formdsl check -golden testdata/settings.golden.json settings.yaml
  formdsl openapi -name Settings settings.yaml
  formdsl dump settings.yaml`

// Root returns the root command for formdsl.
func Root(ctx context.Context) *cli.Command {
	return cli.NewCommand("formdsl").
		WithSynopsis("formdsl <command> [opts] inputs").
		WithDescription(usageText).
		WithSubs(
			CompileCommand(ctx),
			CheckCommand(ctx),
			OpenAPICommand(ctx),
			DumpCommand(ctx),
		)
}
