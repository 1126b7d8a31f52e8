package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/jsonschema"
)

type compileConfig struct {
	*cli.Command
	ctx context.Context

	Output   string `cli:"name=o aliases=output desc='output file (default stdout)'"`
	Compact  bool   `cli:"name=compact desc='emit compact JSON'"`
	Sanitize bool   `cli:"name=sanitize desc='strip unsafe markup from annotation text'"`
	Formulas bool   `cli:"name=formulas desc='check formula syntax'"`
	NoColor  bool   `cli:"name=nocolor desc='disable colored diagnostics'"`
}

// CompileCommand returns the compile subcommand.
func CompileCommand(ctx context.Context) *cli.Command {
	cfg := &compileConfig{ctx: ctx}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "compile").
		WithAliases("c").
		WithSynopsis("compile [-o file] [-sanitize] [-formulas] [-compact] inputs").
		WithDescription("compile DSL documents into JSON Schema Draft 4").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *compileConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	c := compiler.New(compilerOptions(cfg.Sanitize, cfg.Formulas)...)
	var out bytes.Buffer
	failed := false
	for _, arg := range inputArgs(args) {
		payload, err := compileInput(cfg.ctx, c, cc.In, arg, cfg.Compact)
		if err != nil {
			reportError(os.Stderr, arg, err, useColor(os.Stderr, cfg.NoColor))
			failed = true
			continue
		}
		out.Write(payload)
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return writeOutput(cc.Out, cfg.Output, out.Bytes())
}

// compileInput compiles one input and returns the encoded schema followed by
// a newline.
func compileInput(ctx context.Context, c *compiler.Compiler, in io.Reader, arg string, compact bool) ([]byte, error) {
	doc, err := loadInput(ctx, in, arg)
	if err != nil {
		return nil, err
	}
	out, err := c.CompileDocument(doc)
	if err != nil {
		return nil, err
	}
	var payload []byte
	if compact {
		payload, err = jsonschema.Marshal(out)
	} else {
		payload, err = jsonschema.MarshalIndent(out, "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", arg, err)
	}
	return append(payload, '\n'), nil
}

func writeOutput(stdout io.Writer, path string, payload []byte) error {
	if path == "" || path == stdinName {
		_, err := stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(len(payload))))
	return nil
}
