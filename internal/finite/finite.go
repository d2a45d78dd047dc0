// Package finite decides whether a sort certainly has finitely many
// values. The answer is conservative: false means finiteness could not be
// established, not that the sort is known to be infinite.
package finite

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Definitions resolves canonical alias names to the structure they stand
// for.
type Definitions interface {
	Definition(name string) (sorts.Sort, bool)
}

// Constructors lists the constructors whose range is a given sort.
type Constructors interface {
	ConstructorsOf(sorts.Sort) []*data.FunctionSymbol
}

// Analyzer answers finiteness queries over one state of a specification.
// Results are cached, so an Analyzer must be discarded once the
// specification changes.
type Analyzer struct {
	defs Definitions
	cons Constructors
	memo map[string]bool
}

// New creates an analyzer reading definitions and constructors from the
// given sources.
func New(defs Definitions, cons Constructors) *Analyzer {
	return &Analyzer{defs: defs, cons: cons, memo: make(map[string]bool)}
}

// IsFinite reports whether the normalised sort s certainly has finitely
// many values:
//
//   - Bool is finite; Pos, Nat, Int and Real are not.
//   - List and Bag sorts are infinite; Set(T) is finite when T is.
//   - A function sort is finite when its domain and codomain are.
//   - A structured sort is finite when every constructor argument is.
//   - Any other sort is finite when it has at least one constructor and
//     every constructor argument sort is finite.
//
// A sort that depends on itself through constructor arguments is infinite.
func (a *Analyzer) IsFinite(s sorts.Sort) bool {
	return a.finite(s, set.New[string](8))
}

func (a *Analyzer) finite(s sorts.Sort, visiting *set.Set[string]) bool {
	k := sorts.Key(s)
	if r, ok := a.memo[k]; ok {
		return r
	}
	if !visiting.Insert(k) {
		return false
	}
	r := a.compute(s, visiting)
	visiting.Remove(k)
	a.memo[k] = r
	return r
}

func (a *Analyzer) compute(s sorts.Sort, visiting *set.Set[string]) bool {
	switch s := s.(type) {
	case *sorts.Basic:
		switch {
		case sorts.IsBool(s):
			return true
		case sorts.IsNumeric(s):
			return false
		}
		if def, ok := a.defs.Definition(s.Name()); ok {
			return a.compute(def, visiting)
		}
		cons := a.cons.ConstructorsOf(s)
		if len(cons) == 0 {
			return false
		}
		for _, c := range cons {
			if !a.all(c.Domain(), visiting) {
				return false
			}
		}
		return true
	case *sorts.Container:
		if s.Kind() != sorts.Set {
			return false
		}
		return a.finite(s.Element(), visiting)
	case *sorts.Function, *sorts.Structured:
		return a.all(sorts.Components(s), visiting)
	}
	return false
}

func (a *Analyzer) all(ss []sorts.Sort, visiting *set.Set[string]) bool {
	for _, s := range ss {
		if !a.finite(s, visiting) {
			return false
		}
	}
	return true
}
