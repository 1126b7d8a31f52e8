package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/goliatone/go-formdsl/pkg/compiler"
)

type checkConfig struct {
	*cli.Command
	ctx context.Context

	Golden   string `cli:"name=golden desc='expected JSON Schema output'"`
	Sanitize bool   `cli:"name=sanitize desc='strip unsafe markup from annotation text'"`
	Formulas bool   `cli:"name=formulas desc='check formula syntax'"`
	NoColor  bool   `cli:"name=nocolor desc='disable colored diagnostics'"`
}

// CheckCommand returns the check subcommand.
func CheckCommand(ctx context.Context) *cli.Command {
	cfg := &checkConfig{ctx: ctx}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check [-golden file] input").
		WithDescription("compile an input and compare it with a golden file; without -golden only report errors").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: check takes a single input, got %v", cli.ErrUsage, args)
	}
	input := stdinName
	if len(args) == 1 {
		input = args[0]
	}

	c := compiler.New(compilerOptions(cfg.Sanitize, cfg.Formulas)...)
	got, err := compileInput(cfg.ctx, c, cc.In, input, false)
	if err != nil {
		reportError(os.Stderr, input, err, useColor(os.Stderr, cfg.NoColor))
		return cli.ExitCodeErr(1)
	}
	if cfg.Golden == "" {
		fmt.Fprintf(cc.Out, "%s: ok\n", input)
		return nil
	}

	want, err := os.ReadFile(cfg.Golden)
	if err != nil {
		return fmt.Errorf("read golden: %w", err)
	}
	if diff, ok := goldenDiff(want, got); !ok {
		fmt.Fprintf(cc.Out, "--- %s\n+++ %s\n%s", cfg.Golden, input, diff)
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "%s: matches %s\n", input, cfg.Golden)
	return nil
}

// goldenDiff compares documents line by line, ignoring trailing whitespace
// at the end of the file. The returned patch is empty when they match.
func goldenDiff(want, got []byte) (string, bool) {
	wantText := string(bytes.TrimRight(want, " \t\r\n")) + "\n"
	gotText := string(bytes.TrimRight(got, " \t\r\n")) + "\n"
	if wantText == gotText {
		return "", true
	}

	dmp := diffpatch.New()
	wantChars, gotChars, lines := dmp.DiffLinesToChars(wantText, gotText)
	diffs := dmp.DiffMain(wantChars, gotChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	patches := dmp.PatchMake(wantText, diffs)
	return dmp.PatchToText(patches), false
}
