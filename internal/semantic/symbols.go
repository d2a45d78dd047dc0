// Package semantic implements the analysis passes run over a declaration
// document once it has been lowered to a specification.
package semantic

import (
	"fmt"

	"github.com/foundry-zero/dataspec/internal/ast"
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/dataspec"
	"github.com/foundry-zero/dataspec/internal/report"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// SortRef is a sort expression of the document with its location.
type SortRef struct {
	Path string
	Sort sorts.Sort
}

// SymbolRef is a constructor or mapping declaration with its location.
type SymbolRef struct {
	Path   string
	Symbol *data.FunctionSymbol
}

// EquationRef is an equation declaration with its location.
type EquationRef struct {
	Path     string
	Equation *data.Equation
}

// Model indexes the declarations of a document together with the
// specification they lower to. Declarations that could not be lowered are
// left out.
type Model struct {
	File string
	Doc  *ast.Document
	Spec *dataspec.Specification

	SortRefs     []SortRef   // every sort written in a sort, alias, context or symbol declaration
	FiniteSorts  []SortRef   // sorts declared with finite: true
	Symbols      []SymbolRef // constructors then mappings, in document order
	Equations    []EquationRef
	AliasesNamed map[string][]string // alias name to the paths declaring it
}

// BuildModel lowers every declaration of doc on its own and records where
// it came from.
func BuildModel(file string, doc *ast.Document, spec *dataspec.Specification) *Model {
	m := &Model{
		File:         file,
		Doc:          doc,
		Spec:         spec,
		AliasesNamed: make(map[string][]string, len(doc.Aliases)),
	}

	for i, d := range doc.Sorts {
		path := fmt.Sprintf("%s[%d].sort", ast.PathSorts, i)
		s, err := ast.LowerSort(d.Sort, path)
		if err != nil {
			continue
		}
		m.SortRefs = append(m.SortRefs, SortRef{Path: path, Sort: s})
		if d.Finite {
			m.FiniteSorts = append(m.FiniteSorts, SortRef{Path: fmt.Sprintf("%s[%d]", ast.PathSorts, i), Sort: s})
		}
	}
	for i, d := range doc.Aliases {
		path := fmt.Sprintf("%s[%d]", ast.PathAliases, i)
		a, err := ast.LowerAlias(d, path)
		if err != nil {
			continue
		}
		m.AliasesNamed[d.Name] = append(m.AliasesNamed[d.Name], path)
		m.SortRefs = append(m.SortRefs, SortRef{Path: path + ".sort", Sort: a.Target()})
	}
	for i, x := range doc.ContextSorts {
		path := fmt.Sprintf("%s[%d]", ast.PathContextSorts, i)
		if s, err := ast.LowerSort(x, path); err == nil {
			m.SortRefs = append(m.SortRefs, SortRef{Path: path, Sort: s})
		}
	}
	m.addSymbols(doc.Constructors, ast.PathConstructors, data.RoleConstructor)
	m.addSymbols(doc.Mappings, ast.PathMappings, data.RoleMapping)
	for i, d := range doc.Equations {
		path := fmt.Sprintf("%s[%d]", ast.PathEquations, i)
		if e, err := ast.LowerEquation(d, path); err == nil {
			m.Equations = append(m.Equations, EquationRef{Path: path, Equation: e})
		}
	}
	return m
}

func (m *Model) addSymbols(decls []ast.SymbolDecl, list string, role data.Role) {
	for i, d := range decls {
		path := fmt.Sprintf("%s[%d]", list, i)
		f, err := ast.LowerSymbol(d, path, role)
		if err != nil {
			continue
		}
		m.Symbols = append(m.Symbols, SymbolRef{Path: path, Symbol: f})
		m.SortRefs = append(m.SortRefs, SortRef{Path: path + ".sort", Sort: f.Sort()})
	}
}

// Location returns the report location of path in the document.
func (m *Model) Location(path string) report.Location {
	return report.Location{File: m.File, Path: path, Line: m.Doc.Line(path)}
}
