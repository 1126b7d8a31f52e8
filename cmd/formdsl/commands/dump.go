package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/dsl"
	"github.com/goliatone/go-formdsl/pkg/schema"
)

type dumpConfig struct {
	*cli.Command
	ctx context.Context

	Parsed  bool `cli:"name=parsed desc='dump the parsed tree instead of the compiled one'"`
	NoColor bool `cli:"name=nocolor desc='disable colors'"`
}

// DumpCommand returns the dump subcommand.
func DumpCommand(ctx context.Context) *cli.Command {
	cfg := &dumpConfig{ctx: ctx}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "dump").
		WithSynopsis("dump [-parsed] input").
		WithDescription("pretty-print the intermediate schema tree").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *dumpConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: dump takes exactly one input, got %v", cli.ErrUsage, args)
	}
	input := args[0]

	doc, err := loadInput(cfg.ctx, cc.In, input)
	if err == nil {
		err = dumpDocument(cc.Out, doc.Raw(), cfg.Parsed, useColor(os.Stdout, cfg.NoColor))
	}
	if err != nil {
		reportError(os.Stderr, input, err, useColor(os.Stderr, cfg.NoColor))
		return cli.ExitCodeErr(1)
	}
	return nil
}

func dumpDocument(w io.Writer, raw []byte, parsed, colored bool) error {
	pp.ColoringEnabled = colored

	if parsed {
		root, err := dsl.Parse(raw)
		if err != nil {
			return err
		}
		doc, err := dsl.DeserializeRoot(root)
		if err != nil {
			return err
		}
		_, err = pp.Fprintln(w, doc)
		return err
	}

	compiled, err := buildBytes(compiler.New(), raw)
	if err != nil {
		return err
	}
	_, err = pp.Fprintln(w, compiled)
	return err
}

func buildBytes(c *compiler.Compiler, raw []byte) (*schema.Compiled, error) {
	root, err := dsl.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.Build(root)
}
