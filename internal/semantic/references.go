package semantic

import (
	"errors"

	"github.com/foundry-zero/dataspec/internal/dataspec"
	"github.com/foundry-zero/dataspec/internal/report"
)

// CheckReferences reports every sort expression of the document that
// mentions a sort which is neither built in, declared as a sort or context
// sort, nor an alias name (SORT-01). Equations are checked through their
// variable and symbol sorts.
func CheckReferences(m *Model) []report.Finding {
	var findings []report.Finding
	for _, ref := range m.SortRefs {
		if _, err := m.Spec.NormaliseSorts(ref.Sort); err != nil {
			findings = appendUndeclared(findings, m, ref.Path, err)
		}
	}
	for _, ref := range m.Equations {
		if err := m.Spec.WellTyped(ref.Equation); err != nil {
			findings = appendUndeclared(findings, m, ref.Path, err)
		}
	}
	return findings
}

func appendUndeclared(findings []report.Finding, m *Model, path string, err error) []report.Finding {
	var undeclared *dataspec.UndeclaredSortError
	if !errors.As(err, &undeclared) {
		return findings
	}
	return append(findings, report.NewError("SORT-01", undeclared.Error(), m.Location(path)))
}
