package semantic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/report"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// CheckUniqueness reports conflicting and repeated declarations:
//
//   - SYM-01: a symbol declared as a constructor and as a mapping with the
//     same name and sort. The declaration that was refused is reported,
//     or, for two generated symbols, the alias whose theory produced them.
//   - SYM-02: the same symbol declared twice in the same role (warning).
//   - SORT-03: an alias name declared more than once; only the last
//     declaration takes effect (warning).
func CheckUniqueness(m *Model) []report.Finding {
	var findings []report.Finding
	findings = checkRoleConflicts(findings, m)
	findings = checkDuplicateSymbols(findings, m)
	findings = checkDuplicateAliases(findings, m)
	return findings
}

func checkRoleConflicts(findings []report.Finding, m *Model) []report.Finding {
	for _, ref := range m.Symbols {
		f := ref.Symbol
		var stored bool
		var other string
		if f.Role() == data.RoleConstructor {
			stored, other = m.Spec.HasConstructor(f), "mapping"
		} else {
			stored, other = m.Spec.HasMapping(f), "constructor"
		}
		if stored {
			continue
		}
		findings = append(findings, report.NewError("SYM-01",
			fmt.Sprintf("%s %s is already declared as a %s", f.Role(), f.Key(), other),
			m.Location(ref.Path)))
	}
	for _, f := range m.Spec.BlockedSymbols() {
		other := "mapping"
		if f.Role() == data.RoleMapping {
			other = "constructor"
		}
		findings = append(findings, report.NewError("SYM-01",
			fmt.Sprintf("generated %s %s is already generated as a %s", f.Role(), f.Key(), other),
			m.Location(m.aliasPath(f))))
	}
	return findings
}

// aliasPath returns the effective declaration of the first alias named in
// the sort of f, or the document root.
func (m *Model) aliasPath(f *data.FunctionSymbol) string {
	for _, x := range append([]sorts.Sort{f.Range()}, f.Domain()...) {
		b, ok := x.(*sorts.Basic)
		if !ok {
			continue
		}
		if paths := m.AliasesNamed[b.Name()]; len(paths) > 0 {
			return paths[len(paths)-1]
		}
	}
	return ""
}

func checkDuplicateSymbols(findings []report.Finding, m *Model) []report.Finding {
	first := make(map[string]string, len(m.Symbols))
	for _, ref := range m.Symbols {
		n, err := m.Spec.NormaliseSorts(ref.Symbol.Sort())
		if err != nil {
			continue
		}
		key := ref.Symbol.Role().String() + " " + ref.Symbol.WithSort(n).Key()
		if prev, ok := first[key]; ok {
			findings = append(findings, report.NewWarning("SYM-02",
				fmt.Sprintf("%s %s is already declared at %s", ref.Symbol.Role(), ref.Symbol.Key(), prev),
				m.Location(ref.Path)))
			continue
		}
		first[key] = ref.Path
	}
	return findings
}

func checkDuplicateAliases(findings []report.Finding, m *Model) []report.Finding {
	var names []string
	for name, paths := range m.AliasesNamed {
		if len(paths) > 1 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		paths := m.AliasesNamed[name]
		for i, p := range paths[:len(paths)-1] {
			findings = append(findings, report.NewWarning("SORT-03",
				fmt.Sprintf("alias %s is redeclared at %s", name, strings.Join(paths[i+1:], ", ")),
				m.Location(p)))
		}
	}
	return findings
}
