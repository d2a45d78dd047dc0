package semantic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/foundry-zero/dataspec/internal/report"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// CheckWarnings reports conditions that do not make a document invalid.
// All findings have Severity=SeverityWarning.
func CheckWarnings(m *Model) []report.Finding {
	var findings []report.Finding
	findings = checkAliasCycles(findings, m)
	findings = checkDeclaredFinite(findings, m)
	return findings
}

// SORT-02: aliases between basic names that lead back to themselves. The
// cycle collapses to its first-declared name, which has no values unless
// constructors are declared for it.
func checkAliasCycles(findings []report.Finding, m *Model) []report.Finding {
	for _, cycle := range m.Spec.AliasCycles() {
		path := ""
		if paths := m.AliasesNamed[cycle[0]]; len(paths) > 0 {
			path = paths[0]
		}
		findings = append(findings, report.NewWarning("SORT-02",
			fmt.Sprintf("aliases %s form a cycle without an underlying sort", strings.Join(slices.Concat(cycle, cycle[:1]), " -> ")),
			m.Location(path)))
	}
	return findings
}

// FIN-01: a sort declared finite that cannot be shown to be finite.
// Sorts with undeclared references are left to SORT-01.
func checkDeclaredFinite(findings []report.Finding, m *Model) []report.Finding {
	for _, ref := range m.FiniteSorts {
		finite, err := m.Spec.IsCertainlyFinite(ref.Sort)
		if err != nil || finite {
			continue
		}
		findings = append(findings, report.NewWarning("FIN-01",
			fmt.Sprintf("sort %s is declared finite but is not certainly finite", describe(m, ref.Sort)),
			m.Location(ref.Path)))
	}
	return findings
}

// describe names s and, when it differs, its normal form.
func describe(m *Model, s sorts.Sort) string {
	n, err := m.Spec.NormaliseSorts(s)
	if err != nil || sorts.Equal(n, s) {
		return s.String()
	}
	return fmt.Sprintf("%s (%s)", s, n)
}
