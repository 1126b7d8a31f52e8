package dsl

import "testing"

func TestReadFormula(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string kept verbatim", "formula: \"a + b\"\n", "a + b"},
		{"number re-encoded", "formula: 42\n", "42"},
		{"boolean re-encoded", "formula: true\n", "true"},
		{"null re-encoded", "formula: null\n", "null"},
		{"sequence", "formula: [1, two, 3.5]\n", `[1,"two",3.5]`},
		{"mapping keeps order", "formula:\n  z: 1\n  a: [x]\n", `{"z":1,"a":["x"]}`},
		{"html is not escaped", "formula:\n  expr: \"a < b && c\"\n", `{"expr":"a < b && c"}`},
		{"date kept verbatim", "formula: 2024-01-01\n", "2024-01-01"},
		{"timestamp kept verbatim", "formula: 2024-01-01T10:00:00Z\n", "2024-01-01T10:00:00Z"},
		{"date inside sequence", "formula: [2024-01-01]\n", `["2024-01-01"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := deserialize(t, tt.raw)
			if root.Schema.Formula == nil {
				t.Fatalf("expected formula")
			}
			if got := *root.Schema.Formula; got != tt.want {
				t.Fatalf("unexpected formula\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestReadFormula_Absent(t *testing.T) {
	if root := deserialize(t, "type: string\n"); root.Schema.Formula != nil {
		t.Fatalf("expected no formula, got %q", *root.Schema.Formula)
	}
}
