package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var examples = filepath.Join("..", "..", "schemas", "v1", "examples")

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}
	return v
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestValidate_Examples(t *testing.T) {
	v := newValidator(t)
	for _, name := range []string{"tree.json", "colours.yaml", "problems.json"} {
		errs := v.Validate(filepath.Join(examples, name))
		for _, e := range errs {
			t.Errorf("%s: unexpected schema error %s", name, e)
		}
	}
}

func TestValidate_MissingVersion(t *testing.T) {
	v := newValidator(t)
	errs := v.ValidateDocument(map[string]any{"sorts": []any{}})
	if len(errs) == 0 {
		t.Fatal("expected errors for missing version")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "version") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error mentioning version, got %v", errs)
	}
}

func TestValidate_SortShorthand(t *testing.T) {
	v := newValidator(t)
	doc := map[string]any{
		"version": "1",
		"sorts": []any{
			map[string]any{"sort": "Colour"},
			map[string]any{"sort": map[string]any{"kind": "basic", "name": "Shade"}},
			map[string]any{"sort": map[string]any{"kind": "set", "element": "Colour"}},
		},
	}
	if errs := v.ValidateDocument(doc); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_RejectsMalformedSorts(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		name string
		sort any
	}{
		{"unknown kind", map[string]any{"kind": "tuple", "element": "Nat"}},
		{"container without element", map[string]any{"kind": "list"}},
		{"function without domain", map[string]any{"kind": "function", "domain": []any{}, "codomain": "Nat"}},
		{"struct without constructors", map[string]any{"kind": "struct", "constructors": []any{}}},
		{"bad name", "1Colour"},
		{"extra property", map[string]any{"kind": "basic", "name": "Nat", "finite": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"version": "1",
				"sorts":   []any{map[string]any{"sort": tt.sort}},
			}
			if errs := v.ValidateDocument(doc); len(errs) == 0 {
				t.Error("expected schema errors")
			}
		})
	}
}

func TestValidate_RejectsMalformedExpressions(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		name string
		expr map[string]any
	}{
		{"symbol without sort", map[string]any{"kind": "symbol", "name": "f"}},
		{"numeral without value", map[string]any{"kind": "numeral", "sort": "Nat"}},
		{"non-numeric numeral", map[string]any{"kind": "numeral", "value": "ten", "sort": "Nat"}},
		{"application without arguments", map[string]any{
			"kind":      "application",
			"head":      map[string]any{"kind": "symbol", "name": "f", "sort": "Nat"},
			"arguments": []any{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"version": "1",
				"equations": []any{map[string]any{
					"lhs": tt.expr,
					"rhs": map[string]any{"kind": "variable", "name": "x"},
				}},
			}
			if errs := v.ValidateDocument(doc); len(errs) == 0 {
				t.Error("expected schema errors")
			}
		})
	}
}

func TestValidate_ErrorPath(t *testing.T) {
	v := newValidator(t)
	doc := map[string]any{
		"version":      "1",
		"constructors": []any{map[string]any{"name": "zero"}},
	}
	errs := v.ValidateDocument(doc)
	if len(errs) == 0 {
		t.Fatal("expected errors for constructor without sort")
	}
	for _, e := range errs {
		if !strings.HasPrefix(e.Path, "/constructors/0") {
			t.Errorf("error path = %q, want prefix /constructors/0", e.Path)
		}
	}
}

func TestValidate_YAMLDocument(t *testing.T) {
	v := newValidator(t)
	good := writeFile(t, "good.yml", "version: \"1\"\nsorts:\n  - sort: Colour\n    finite: true\n")
	if errs := v.Validate(good); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	// An unquoted version is a number, not the string "1".
	bad := writeFile(t, "bad.yaml", "version: 1\n")
	if errs := v.Validate(bad); len(errs) == 0 {
		t.Error("expected an error for a numeric version")
	}
}

func TestValidate_NonexistentFile(t *testing.T) {
	v := newValidator(t)
	errs := v.Validate("/nonexistent/file.json")
	if len(errs) != 1 || !errs[0].ParseError {
		t.Fatalf("expected one parse error, got %v", errs)
	}
}

func TestValidate_InvalidSyntax(t *testing.T) {
	v := newValidator(t)
	for name, content := range map[string]string{
		"invalid.json": "{bad json}",
		"invalid.yaml": "sorts: [unclosed\n",
	} {
		errs := v.Validate(writeFile(t, name, content))
		if len(errs) != 1 || !errs[0].ParseError {
			t.Errorf("%s: expected one parse error, got %v", name, errs)
		}
	}
}

func TestYAMLToJSONRejectsNonStringKeys(t *testing.T) {
	if _, err := yamlToJSON([]byte("1: one\n")); err == nil {
		t.Error("expected an error for an integer mapping key")
	}
	doc, err := yamlToJSON([]byte("version: \"1\"\nsorts:\n  - sort: {kind: list, element: Nat}\n"))
	if err != nil {
		t.Fatalf("yamlToJSON: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok || m["version"] != "1" {
		t.Errorf("got %#v", doc)
	}
}

func TestSchemaErrorString(t *testing.T) {
	if got := (SchemaError{Path: "/sorts/0", Message: "missing sort"}).String(); got != "/sorts/0: missing sort" {
		t.Errorf("String() = %q", got)
	}
	if got := (SchemaError{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}
