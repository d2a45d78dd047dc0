// Package builtin generates the system-defined constructors, mappings and
// equations that realise the built-in theories: booleans, the numeric
// sorts Pos, Nat, Int and Real, the List, Set and Bag containers, and
// user structured sorts. Every sort additionally receives equality,
// inequality and if-then-else.
package builtin

import (
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Theory is the generated support of one sort. All entries are
// system-defined and appear in a fixed order.
type Theory struct {
	Sort         sorts.Sort
	Constructors []*data.FunctionSymbol
	Mappings     []*data.FunctionSymbol
	Equations    []*data.Equation
}

// Signature is what theory generation needs to know about the surrounding
// specification.
type Signature interface {
	// Normalise returns the canonical form of a sort.
	Normalise(sorts.Sort) sorts.Sort
	// Definition returns the structure a canonical sort name stands for.
	Definition(name string) (sorts.Sort, bool)
}

// Requirement names a sort that needs generated support. Sort is the
// canonical sort used in symbol signatures; Definition is the structure it
// stands for, which differs from Sort only when Sort is an alias name.
type Requirement struct {
	Sort       sorts.Sort
	Definition sorts.Sort
}

func (r Requirement) key() string {
	return sorts.Key(r.Sort) + " = " + sorts.Key(r.Definition)
}

// Generate returns the theory of the required sort.
func Generate(r Requirement, sig Signature) *Theory {
	th := &Theory{Sort: r.Sort}
	th.standard(r.Sort)
	switch def := r.Definition.(type) {
	case *sorts.Basic:
		if !sorts.Equal(def, r.Sort) {
			break
		}
		switch def.Name() {
		case sorts.BoolName:
			th.boolean()
		case sorts.PosName:
			th.positive()
		case sorts.NatName:
			th.natural()
		case sorts.IntName:
			th.integer()
		case sorts.RealName:
			th.real()
		}
	case *sorts.Container:
		elem := def.Element()
		switch def.Kind() {
		case sorts.List:
			th.list(r.Sort, elem)
		case sorts.Set:
			th.set(r.Sort, elem)
		case sorts.Bag:
			th.bag(r.Sort, elem, sig.Normalise(sorts.NewSet(elem)))
		}
	case *sorts.Structured:
		th.structured(r.Sort, def)
	}
	return th
}

// dependencies lists the sorts whose theories the theory of def refers to,
// other than its own components.
func dependencies(def sorts.Sort) []sorts.Sort {
	switch def := def.(type) {
	case *sorts.Basic:
		switch def.Name() {
		case sorts.NatName:
			return []sorts.Sort{sorts.Pos()}
		case sorts.IntName:
			return []sorts.Sort{sorts.Nat(), sorts.Pos()}
		case sorts.RealName:
			return []sorts.Sort{sorts.Int(), sorts.Nat(), sorts.Pos()}
		}
	case *sorts.Container:
		switch def.Kind() {
		case sorts.List, sorts.Set:
			return []sorts.Sort{sorts.Nat()}
		case sorts.Bag:
			return []sorts.Sort{sorts.Nat(), sorts.NewSet(def.Element())}
		}
	}
	return nil
}

func arrow(codomain sorts.Sort, domain ...sorts.Sort) sorts.Sort {
	if len(domain) == 0 {
		return codomain
	}
	return sorts.NewFunction(domain, codomain)
}

func (th *Theory) constructor(name string, s sorts.Sort) *data.Symbol {
	f := data.NewFunctionSymbol(name, s, data.RoleConstructor, data.SystemDefined)
	th.Constructors = append(th.Constructors, f)
	return f.Symbol()
}

func (th *Theory) mapping(name string, s sorts.Sort) *data.Symbol {
	f := data.NewFunctionSymbol(name, s, data.RoleMapping, data.SystemDefined)
	th.Mappings = append(th.Mappings, f)
	return f.Symbol()
}

func (th *Theory) equation(vars []*data.Variable, cond, lhs, rhs data.Expression) {
	th.Equations = append(th.Equations, data.NewEquation(vars, cond, lhs, rhs).WithOrigin(data.SystemDefined))
}

// eq adds an unconditional equation.
func (th *Theory) eq(vars []*data.Variable, lhs, rhs data.Expression) {
	th.equation(vars, nil, lhs, rhs)
}

func vars(vs ...*data.Variable) []*data.Variable { return vs }

func v(name string, s sorts.Sort) *data.Variable { return data.NewVariable(name, s) }

func app(head data.Expression, args ...data.Expression) data.Expression {
	return data.Apply(head, args...)
}

func equalTo(s sorts.Sort) *data.Symbol {
	return data.NewSymbol("==", arrow(sorts.Bool(), s, s))
}

func ifThenElse(s sorts.Sort) *data.Symbol {
	return data.NewSymbol("if", arrow(s, sorts.Bool(), s, s))
}

// standard adds ==, != and if for s.
func (th *Theory) standard(s sorts.Sort) {
	eqOp := th.mapping("==", arrow(sorts.Bool(), s, s))
	neqOp := th.mapping("!=", arrow(sorts.Bool(), s, s))
	ifOp := th.mapping("if", arrow(s, sorts.Bool(), s, s))

	x, y, b := v("x", s), v("y", s), v("b", sorts.Bool())
	th.eq(vars(x), app(eqOp, x, x), trueExpr())
	th.eq(vars(x, y), app(neqOp, x, y), app(notOp(), app(eqOp, x, y)))
	th.eq(vars(x, y), app(ifOp, trueExpr(), x, y), x)
	th.eq(vars(x, y), app(ifOp, falseExpr(), x, y), y)
	th.eq(vars(b, x), app(ifOp, b, x, x), x)
}

// conjunction folds && over the given boolean terms; empty means true.
func conjunction(terms []data.Expression) data.Expression {
	if len(terms) == 0 {
		return trueExpr()
	}
	out := terms[0]
	for _, t := range terms[1:] {
		out = app(andOp(), out, t)
	}
	return out
}
