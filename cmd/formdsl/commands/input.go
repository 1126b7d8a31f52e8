package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-formdsl"
	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/schema"
	"github.com/goliatone/go-formdsl/pkg/validation"
)

const (
	stdinName   = "-"
	httpTimeout = 10 * time.Second
)

func compilerOptions(sanitize, formulas bool) []compiler.Option {
	return []compiler.Option{
		compiler.WithSanitizedAnnotations(sanitize),
		compiler.WithFormulaCheck(formulas),
	}
}

// loadInput reads a DSL document from a path, URL or stdin.
func loadInput(ctx context.Context, in io.Reader, arg string) (schema.Document, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == stdinName {
		data, err := io.ReadAll(in)
		if err != nil {
			return schema.Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return schema.NewDocument(schema.SourceInline("<stdin>"), data)
	}

	src, err := schema.ParseSource(arg)
	if err != nil {
		return schema.Document{}, err
	}
	doc, err := formdsl.Load(ctx, src, formdsl.WithLoaderOptions(schema.WithHTTPFallback(httpTimeout)))
	if err != nil {
		return schema.Document{}, err
	}
	log.Printf("loaded %s (%s)", doc.Location(), humanize.Bytes(uint64(len(doc.Raw()))))
	return doc, nil
}

func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{stdinName}
	}
	return args
}

// useColor reports whether diagnostics written to w should be colored.
func useColor(w io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reportError prints a compilation failure, one line per validation issue.
func reportError(w io.Writer, input string, err error, colored bool) {
	label := color.New(color.FgRed, color.Bold)
	detail := color.New(color.FgYellow)
	if !colored {
		label.DisableColor()
		detail.DisableColor()
	}

	var issues validation.Issues
	if errors.As(err, &issues) {
		label.Fprintf(w, "%s: schema is invalid\n", input)
		for _, issue := range issues {
			location := issue.Path
			if location == "" {
				location = "/"
			}
			fmt.Fprintf(w, "  %s %s (%s)\n", detail.Sprint(location), issue.Message, issue.Code)
		}
		return
	}

	kind := "error"
	if k, ok := schema.ErrorKindOf(err); ok {
		kind = strings.ReplaceAll(string(k), "_", " ")
	}
	label.Fprintf(w, "%s: %s\n", input, kind)
	fmt.Fprintf(w, "  %v\n", err)
}
