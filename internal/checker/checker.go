// Package checker runs schema validation, loading and the semantic passes
// over declaration documents, producing one report per document.
package checker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/ast"
	"github.com/foundry-zero/dataspec/internal/dataspec"
	"github.com/foundry-zero/dataspec/internal/report"
	"github.com/foundry-zero/dataspec/internal/schema"
	"github.com/foundry-zero/dataspec/internal/semantic"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Rules raised by the checker itself rather than by a pass.
const (
	RuleInput       = "INPUT"
	RuleSchema      = "SCHEMA"
	RuleDeclaration = "DECL"
)

// PassFunc is a semantic pass over a lowered document.
type PassFunc func(*semantic.Model) []report.Finding

// CheckOptions controls which validation passes to run.
type CheckOptions struct {
	SchemaOnly bool     // Only run JSON Schema validation.
	Rules      []string // If non-empty, only report these rules or rule families such as "SORT".
	Strict     bool     // Treat warnings as errors for exit-code purposes.
}

type passEntry struct {
	Name  string
	Rules []string
	Fn    PassFunc
}

// Checker validates declaration documents.
type Checker struct {
	sv     *schema.Validator
	passes []passEntry
	log    *slog.Logger
}

// NewChecker creates a Checker with the embedded schema and all passes
// registered. A nil logger means slog.Default().
func NewChecker(logger *slog.Logger) (*Checker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sv, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("initialize schema validator: %w", err)
	}
	c := &Checker{sv: sv, log: logger}
	registerPasses(c)
	return c, nil
}

// RegisterPass adds a semantic pass covering the given rules.
func (c *Checker) RegisterPass(name string, rules []string, fn PassFunc) {
	c.passes = append(c.passes, passEntry{Name: name, Rules: rules, Fn: fn})
}

// Rules lists the rules covered by the registered passes.
func (c *Checker) Rules() []string {
	var out []string
	for _, p := range c.passes {
		out = append(out, p.Rules...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Check validates the document at path. Semantic passes run only when the
// document matches the schema and SchemaOnly is not set.
func (c *Checker) Check(path string, opts CheckOptions) *report.Report {
	r := report.NewReport(path)
	log := c.log.With("file", path)

	if _, err := os.Stat(path); err != nil {
		r.AddFinding(report.NewError(RuleInput, fmt.Sprintf("cannot access file: %v", err),
			report.Location{File: path}))
		return r
	}

	schemaErrors := c.sv.Validate(path)
	r.SchemaValid = len(schemaErrors) == 0
	for _, se := range schemaErrors {
		rule := RuleSchema
		if se.ParseError {
			rule = RuleInput
		}
		r.AddFinding(report.NewError(rule, se.Message, report.Location{File: path, Path: pointerToPath(se.Path)}))
	}
	log.Debug("schema validated", "errors", len(schemaErrors))
	if !r.SchemaValid || opts.SchemaOnly {
		return r
	}

	doc, err := ast.LoadDocument(path)
	if err != nil {
		r.AddFinding(report.NewError(RuleInput, fmt.Sprintf("failed to load document: %v", err),
			report.Location{File: path}))
		return r
	}

	spec, err := ast.Lower(doc)
	for _, e := range multierr.Errors(err) {
		// Role conflicts are reported by the uniqueness pass.
		if ast.IsRoleConflict(e) {
			continue
		}
		loc := report.Location{File: path}
		var de *ast.DeclarationError
		if errors.As(e, &de) {
			loc.Path, loc.Line = de.Path, doc.Line(de.Path)
			e = de.Err
		}
		if ruleSelected(RuleDeclaration, opts.Rules) {
			r.AddFinding(report.NewError(RuleDeclaration, e.Error(), loc))
		}
	}

	m := semantic.BuildModel(path, doc, spec)
	for _, p := range c.passes {
		if !passMatchesFilter(p.Rules, opts.Rules) {
			continue
		}
		findings := p.Fn(m)
		log.Debug("pass finished", "pass", p.Name, "findings", len(findings))
		for _, f := range findings {
			if ruleSelected(f.Rule, opts.Rules) {
				r.AddFinding(f)
			}
		}
	}

	addSorts(r, spec)
	return r
}

// pointerToPath turns a JSON pointer such as "/sorts/0/sort" into the
// "$.sorts[0].sort" form used by the semantic passes.
func pointerToPath(pointer string) string {
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("$")
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if tok != "" && strings.Trim(tok, "0123456789") == "" {
			b.WriteString("[" + tok + "]")
		} else {
			b.WriteString("." + tok)
		}
	}
	return b.String()
}

// addSorts lists every sort of spec with its origin and finiteness.
func addSorts(r *report.Report, spec *dataspec.Specification) {
	user := sortKeys(spec.UserSorts())
	ctx := sortKeys(spec.ContextSorts())
	for _, s := range spec.Sorts() {
		origin := report.OriginSystem
		switch k := sorts.Key(s); {
		case user[k]:
			origin = report.OriginUser
		case ctx[k]:
			origin = report.OriginContext
		}
		finite, err := spec.IsCertainlyFinite(s)
		r.AddSort(report.SortInfo{Sort: s.String(), Origin: origin, Finite: err == nil && finite})
	}
}

func sortKeys(xs []sorts.Sort) map[string]bool {
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		out[sorts.Key(x)] = true
	}
	return out
}

// ruleSelected reports whether rule is in the filter, directly or through
// its family prefix. An empty filter selects every rule.
func ruleSelected(rule string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if rule == f || strings.HasPrefix(rule, f+"-") {
			return true
		}
	}
	return false
}

// passMatchesFilter reports whether any of the pass's rules is selected.
func passMatchesFilter(passRules []string, filter []string) bool {
	return slices.ContainsFunc(passRules, func(r string) bool { return ruleSelected(r, filter) })
}

func registerPasses(c *Checker) {
	c.RegisterPass("references", []string{"SORT-01"}, semantic.CheckReferences)
	c.RegisterPass("uniqueness", []string{"SYM-01", "SYM-02", "SORT-03"}, semantic.CheckUniqueness)
	c.RegisterPass("expressions", []string{"EQN-01", "EQN-02"}, semantic.CheckExpressions)
	c.RegisterPass("warnings", []string{"SORT-02", "FIN-01"}, semantic.CheckWarnings)
}
