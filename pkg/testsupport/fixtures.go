// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Helpers fail the test instead of returning errors.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdsl/pkg/compiler"
	"github.com/goliatone/go-formdsl/pkg/dsl"
	"github.com/goliatone/go-formdsl/pkg/jsonschema"
	"github.com/goliatone/go-formdsl/pkg/schema"
)

// UpdateGoldensEnv rewrites golden files instead of comparing when set.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// BuildSource compiles DSL text up to the validated tree.
func BuildSource(t testing.TB, raw string, options ...compiler.Option) *schema.Compiled {
	t.Helper()

	root, err := dsl.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse dsl: %v", err)
	}
	compiled, err := compiler.New(options...).Build(root)
	if err != nil {
		t.Fatalf("build dsl: %v", err)
	}
	return compiled
}

// CompileFixture reads a DSL file and compiles it to a Draft 4 schema.
func CompileFixture(t testing.TB, path string, options ...compiler.Option) *jsonschema.Object {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	out, err := compiler.New(options...).CompileDocument(doc)
	if err != nil {
		t.Fatalf("compile %s: %v", path, err)
	}
	return out
}

// MarshalSchema encodes a schema the way golden files store it: two-space
// indentation and a trailing newline.
func MarshalSchema(t testing.TB, out *jsonschema.Object) []byte {
	t.Helper()

	payload, err := jsonschema.MarshalIndent(out, "  ")
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	return append(payload, '\n')
}

// AssertGolden compares got with the golden file at path line by line.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden (set %s=1 to create it): %v", UpdateGoldensEnv, err)
	}
	if diff := cmp.Diff(lines(want), lines(got)); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", filepath.Base(path), diff)
	}
}

func lines(data []byte) []string {
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
