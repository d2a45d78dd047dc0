package report

import (
	"strings"
	"testing"
)

func TestFormatTextEmpty(t *testing.T) {
	r := NewReport("clean.json")
	r.SchemaValid = true
	out := FormatText(r)

	if !strings.Contains(out, "File: clean.json") {
		t.Error("output should contain the file name")
	}
	if strings.Contains(out, "Sorts:") {
		t.Errorf("no sort section expected:\n%s", out)
	}
	if !strings.Contains(out, "0 errors, 0 warnings, 0 sorts") {
		t.Errorf("expected zero summary, got:\n%s", out)
	}
}

func TestFormatTextWithFindings(t *testing.T) {
	r := NewReport("bad.yaml")
	r.AddFinding(NewWarning("FIN-01", "sort Colour is declared finite", Location{
		File: "bad.yaml",
		Path: "$.sorts[1]",
	}))
	r.AddFinding(NewError("SORT-01", "sort Nut is not declared", Location{
		File: "bad.yaml",
		Path: "$.mappings[0].sort",
		Line: 12,
	}))

	out := FormatText(r)

	errIdx := strings.Index(out, "SORT-01")
	warnIdx := strings.Index(out, "FIN-01")
	if errIdx < 0 || warnIdx < 0 {
		t.Fatalf("missing rule IDs in output:\n%s", out)
	}
	if errIdx > warnIdx {
		t.Error("errors should appear before warnings")
	}
	if !strings.Contains(out, "[SORT-01] error: sort Nut is not declared at $.mappings[0].sort (line 12)") {
		t.Errorf("error finding not formatted correctly:\n%s", out)
	}
	if !strings.Contains(out, "[FIN-01] warning: sort Colour is declared finite at $.sorts[1]\n") {
		t.Errorf("warning finding not formatted correctly:\n%s", out)
	}
	if !strings.Contains(out, "1 errors, 1 warnings, 0 sorts") {
		t.Errorf("summary wrong:\n%s", out)
	}
}

func TestFormatTextRootLocation(t *testing.T) {
	r := NewReport("x.json")
	r.AddFinding(NewError("INPUT", "cannot read", Location{File: "x.json"}))
	if out := FormatText(r); !strings.Contains(out, "cannot read at $\n") {
		t.Errorf("empty path should print as $:\n%s", out)
	}
}

func TestFormatTextSorts(t *testing.T) {
	r := NewReport("nat.json")
	r.AddSort(SortInfo{Sort: "Colour", Origin: OriginUser, Finite: true})
	r.AddSort(SortInfo{Sort: "Nat", Origin: OriginSystem})

	out := FormatText(r)
	if !strings.Contains(out, "Sorts:\n") {
		t.Fatalf("missing sort section:\n%s", out)
	}
	if !strings.Contains(out, "Colour (finite)") {
		t.Errorf("Colour should be listed as finite:\n%s", out)
	}
	if !strings.Contains(out, "Nat (infinite or unknown)") {
		t.Errorf("Nat should be listed as not finite:\n%s", out)
	}
	if strings.Index(out, "Colour") > strings.Index(out, "Nat (") {
		t.Error("sorts should keep their order")
	}
	if !strings.Contains(out, "0 errors, 0 warnings, 2 sorts") {
		t.Errorf("summary wrong:\n%s", out)
	}
}
