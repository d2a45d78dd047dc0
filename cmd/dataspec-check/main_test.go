package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	examples = filepath.Join("..", "..", "schemas", "v1", "examples")
	tree     = filepath.Join(examples, "tree.json")
	colours  = filepath.Join(examples, "colours.yaml")
	problems = filepath.Join(examples, "problems.json")
)

func runCapture(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunValidFiles(t *testing.T) {
	for _, path := range []string{tree, colours} {
		if code, out, _ := runCapture(path); code != 0 {
			t.Errorf("run(%s) = %d, want 0\n%s", path, code, out)
		}
	}
}

func TestRunTextOutput(t *testing.T) {
	_, out, _ := runCapture(colours)
	for _, want := range []string{"File: " + colours, "Sorts:", "Colour", "0 errors, 0 warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunProblems(t *testing.T) {
	code, out, _ := runCapture(problems)
	if code != 1 {
		t.Errorf("run(problems) = %d, want 1", code)
	}
	for _, rule := range []string{"SORT-01", "SYM-01", "EQN-01", "SORT-02", "FIN-01"} {
		if !strings.Contains(out, "["+rule+"]") {
			t.Errorf("output missing rule %s:\n%s", rule, out)
		}
	}
}

func TestRunSchemaOnly(t *testing.T) {
	if code, _, _ := runCapture("--schema-only", problems); code != 0 {
		t.Errorf("run(--schema-only problems) = %d, want 0", code)
	}
}

func TestRunRuleFilter(t *testing.T) {
	// Only warnings remain, so the exit code depends on --strict.
	if code, _, _ := runCapture("--rules", "SORT-02,fin", problems); code != 0 {
		t.Errorf("run(--rules SORT-02,FIN) = %d, want 0", code)
	}
	if code, _, _ := runCapture("--strict", "--rules", "SORT-02,FIN", problems); code != 1 {
		t.Errorf("run(--strict --rules SORT-02,FIN) = %d, want 1", code)
	}
	if code, _, _ := runCapture("--rules", "SYM", problems); code != 1 {
		t.Errorf("run(--rules SYM) = %d, want 1", code)
	}
}

func TestRunInvalidRules(t *testing.T) {
	for _, rules := range []string{"abc", "SORT-99", "SOR"} {
		if code, _, _ := runCapture("--rules", rules, tree); code != 2 {
			t.Errorf("run(--rules %s) = %d, want 2", rules, code)
		}
	}
}

func TestRunNonexistentFile(t *testing.T) {
	if code, _, _ := runCapture("/nonexistent/spec.json"); code != 2 {
		t.Errorf("run(nonexistent) = %d, want 2", code)
	}
}

func TestRunInvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": "2"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, _ := runCapture(path); code != 1 {
		t.Errorf("run(invalid schema) = %d, want 1", code)
	}
}

func TestRunNoArgs(t *testing.T) {
	code, _, stderr := runCapture()
	if code != 2 {
		t.Errorf("run(no args) = %d, want 2", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q, want an error message", stderr)
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCapture("version")
	if code != 0 {
		t.Errorf("run(version) = %d, want 0", code)
	}
	if strings.TrimSpace(out) != appName+" "+version {
		t.Errorf("version output = %q", out)
	}
}

func TestRunInvalidFormat(t *testing.T) {
	if code, _, _ := runCapture("--format", "xml", tree); code != 2 {
		t.Errorf("run(--format xml) = %d, want 2", code)
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	if code, _, _ := runCapture("--log-level", "loud", tree); code != 2 {
		t.Errorf("run(--log-level loud) = %d, want 2", code)
	}
}

func TestRunDebugLogging(t *testing.T) {
	_, _, stderr := runCapture("--quiet", "--log-level", "debug", tree)
	if !strings.Contains(stderr, "pass finished") {
		t.Errorf("debug log should report passes:\n%s", stderr)
	}
}

func TestRunQuiet(t *testing.T) {
	code, out, _ := runCapture("--quiet", problems)
	if code != 1 {
		t.Errorf("run(--quiet problems) = %d, want 1", code)
	}
	if out != "" {
		t.Errorf("--quiet should print nothing, got:\n%s", out)
	}
}

func TestRunJSONFormat(t *testing.T) {
	code, out, _ := runCapture("--format", "json", tree)
	if code != 0 {
		t.Errorf("run(--format json) = %d, want 0", code)
	}
	var r map[string]any
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	if r["schema_valid"] != true {
		t.Errorf("schema_valid = %v", r["schema_valid"])
	}
}

func TestRunJSONFormatMultipleFiles(t *testing.T) {
	_, out, _ := runCapture("--format", "json", tree, colours)
	var rs []map[string]any
	if err := json.Unmarshal([]byte(out), &rs); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out)
	}
	if len(rs) != 2 {
		t.Errorf("got %d reports, want 2", len(rs))
	}
}

func TestRunMultipleFiles(t *testing.T) {
	// The worst file decides the exit code.
	if code, _, _ := runCapture(tree, problems, "/nonexistent.json"); code != 2 {
		t.Errorf("run(valid + problems + nonexistent) = %d, want 2", code)
	}
	if code, _, _ := runCapture(tree, colours); code != 0 {
		t.Errorf("run(valid + valid) = %d, want 0", code)
	}
}

func TestParseRuleFilter(t *testing.T) {
	known := []string{"EQN-01", "SORT-01", "SYM-01"}
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"sort-01", "SORT-01"},
		{" SYM , EQN-01 ", "SYM EQN-01"},
		{"SCHEMA,DECL", "SCHEMA DECL"},
	}
	for _, tt := range tests {
		got, err := parseRuleFilter(tt.in, known)
		if err != nil {
			t.Errorf("parseRuleFilter(%q): %v", tt.in, err)
			continue
		}
		if strings.Join(got, " ") != tt.want {
			t.Errorf("parseRuleFilter(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := parseRuleFilter("FIN-01", known); err == nil {
		t.Error("expected an error for an unknown rule")
	}
}
