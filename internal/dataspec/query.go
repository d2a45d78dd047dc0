package dataspec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/finite"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Sorts returns every sort of the specification in normal form: user sorts
// in declaration order, then the sorts reached from them and from the
// other declarations, including Bool.
func (s *Specification) Sorts() []sorts.Sort {
	return slices.Clone(s.closure)
}

// UserSorts returns the declared sorts in normal form and declaration
// order.
func (s *Specification) UserSorts() []sorts.Sort {
	return s.normaliseAll(s.sorts)
}

// ContextSorts returns the declared context sorts in normal form.
func (s *Specification) ContextSorts() []sorts.Sort {
	return s.normaliseAll(s.contextSorts)
}

func (s *Specification) normaliseAll(xs []sorts.Sort) []sorts.Sort {
	out := make([]sorts.Sort, len(xs))
	for i, x := range xs {
		out[i] = s.normalise(x)
	}
	return sorts.Dedup(out)
}

// Constructors returns all constructors: user-defined ones in declaration
// order, then system-defined ones in generation order.
func (s *Specification) Constructors() []*data.FunctionSymbol {
	return s.store.Constructors()
}

// ConstructorsOf returns the constructors whose range normalises to the
// same sort as x.
func (s *Specification) ConstructorsOf(x sorts.Sort) []*data.FunctionSymbol {
	return s.store.ConstructorsOf(s.normalise(x))
}

// Mappings returns all mappings, user-defined first.
func (s *Specification) Mappings() []*data.FunctionSymbol {
	return s.store.Mappings()
}

// MappingsOf returns the mappings whose range normalises to the same sort
// as x.
func (s *Specification) MappingsOf(x sorts.Sort) []*data.FunctionSymbol {
	return s.store.MappingsOf(s.normalise(x))
}

// HasConstructor reports whether f, with its sort normalised, is a
// constructor of s.
func (s *Specification) HasConstructor(f *data.FunctionSymbol) bool {
	return s.store.HasConstructor(s.userSymbol(f, data.RoleConstructor))
}

// HasMapping reports whether f, with its sort normalised, is a mapping of s.
func (s *Specification) HasMapping(f *data.FunctionSymbol) bool {
	return s.store.HasMapping(s.userSymbol(f, data.RoleMapping))
}

// BlockedSymbols returns the generated symbols left out of s because
// another generated symbol holds the same name and sort in the other role.
func (s *Specification) BlockedSymbols() []*data.FunctionSymbol {
	return s.expander.Blocked()
}

// Equations returns all equations, user-defined first.
func (s *Specification) Equations() []*data.Equation {
	return s.store.Equations()
}

// EquationsOf returns the equations whose left-hand side is headed by f.
func (s *Specification) EquationsOf(f *data.FunctionSymbol) []*data.Equation {
	return s.store.EquationsOf(f.WithSort(s.normalise(f.Sort())))
}

// Aliases returns the alias declarations in declaration order.
func (s *Specification) Aliases() []*sorts.Alias {
	return s.aliases.Aliases()
}

// AliasesOf returns the aliases that normalise to the same sort as x.
func (s *Specification) AliasesOf(x sorts.Sort) []*sorts.Alias {
	return s.aliases.AliasesOf(x)
}

// AliasCycles returns the chains of aliases between basic names that lead
// back to themselves and so stand for no underlying sort. Each chain starts
// at its first-declared member.
func (s *Specification) AliasCycles() [][]string {
	return s.aliases.Cycles()
}

// NormaliseSorts returns the normal form of x. It fails with an
// *UndeclaredSortError if x, or the definition of an alias it reaches,
// refers to a sort that is not declared.
func (s *Specification) NormaliseSorts(x sorts.Sort) (sorts.Sort, error) {
	n := s.normalise(x)
	if name, ok := s.undeclared(n, s.declaredNames()); ok {
		return nil, &UndeclaredSortError{Sort: x, Name: name}
	}
	return n, nil
}

// NormaliseExpression returns e with every sort annotation normalised.
func (s *Specification) NormaliseExpression(e data.Expression) data.Expression {
	return data.MapSorts(e, s.normalise)
}

// IsCertainlyFinite reports whether x certainly has finitely many values.
// False means finiteness could not be established.
func (s *Specification) IsCertainlyFinite(x sorts.Sort) (bool, error) {
	n, err := s.NormaliseSorts(x)
	if err != nil {
		return false, err
	}
	return finite.New(s.aliases, s.store).IsFinite(n), nil
}

// WellTyped checks that both sides of e have the same normalised sort,
// that its condition, if any, is boolean, and that every application in it
// matches the sort of its head. It returns an *IllTypedEquationError
// otherwise, or an *UndeclaredSortError if e mentions an undeclared sort.
func (s *Specification) WellTyped(e *data.Equation) error {
	n := e.MapSorts(s.normalise)
	declared := s.declaredNames()
	for _, x := range n.Sorts() {
		if name, ok := s.undeclared(x, declared); ok {
			return &UndeclaredSortError{Sort: x, Name: name}
		}
	}
	for _, side := range []data.Expression{n.Condition(), n.LHS(), n.RHS()} {
		if side == nil {
			continue
		}
		if err := data.CheckApplications(side); err != nil {
			return &IllTypedEquationError{Equation: e, Reason: err.Error()}
		}
	}
	if c := n.Condition(); c != nil && !sorts.IsBool(c.Sort()) {
		return &IllTypedEquationError{Equation: e, Reason: fmt.Sprintf("condition has sort %s, not Bool", c.Sort())}
	}
	if l, r := n.LHS().Sort(), n.RHS().Sort(); !sorts.Equal(l, r) {
		return &IllTypedEquationError{Equation: e, Reason: fmt.Sprintf("left-hand side has sort %s, right-hand side has sort %s", l, r)}
	}
	return nil
}

// Validate reports every undeclared sort reference, every user or
// generated symbol left out because of a role conflict and every
// ill-typed user equation, combined with multierr.
func (s *Specification) Validate() error {
	var errs error
	declared := s.declaredNames()
	reported := set.New[string](8)
	check := func(x sorts.Sort) {
		if name, ok := s.undeclared(s.normalise(x), declared); ok && reported.Insert(sorts.Key(x)+"|"+name) {
			errs = multierr.Append(errs, &UndeclaredSortError{Sort: x, Name: name})
		}
	}

	for _, x := range slices.Concat(s.sorts, s.contextSorts) {
		check(x)
	}
	for _, a := range s.aliases.Aliases() {
		check(a.Target())
	}
	for _, f := range s.constructors {
		check(f.Sort())
		if n := s.userSymbol(f, data.RoleConstructor); !s.store.HasConstructor(n) {
			errs = multierr.Append(errs, &RoleConflictError{Symbol: n, Existing: data.RoleMapping})
		}
	}
	for _, f := range s.mappings {
		check(f.Sort())
		if n := s.userSymbol(f, data.RoleMapping); !s.store.HasMapping(n) {
			errs = multierr.Append(errs, &RoleConflictError{Symbol: n, Existing: data.RoleConstructor})
		}
	}
	for _, f := range s.expander.Blocked() {
		errs = multierr.Append(errs, &RoleConflictError{Symbol: f, Existing: otherRole(f.Role())})
	}
	for _, e := range s.equations {
		err := s.WellTyped(e)
		var undeclared *UndeclaredSortError
		if errors.As(err, &undeclared) {
			for _, x := range e.Sorts() {
				check(x)
			}
			continue
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}

func otherRole(r data.Role) data.Role {
	if r == data.RoleConstructor {
		return data.RoleMapping
	}
	return data.RoleConstructor
}

// declaredNames returns the basic sort names declared directly as sorts or
// context sorts, together with all alias names.
func (s *Specification) declaredNames() *set.Set[string] {
	names := set.New[string](len(s.sorts) + len(s.contextSorts) + s.aliases.Len())
	for _, x := range slices.Concat(s.sorts, s.contextSorts) {
		if b, ok := x.(*sorts.Basic); ok {
			names.Insert(b.Name())
		}
	}
	for _, a := range s.aliases.Aliases() {
		names.Insert(a.Name().Name())
	}
	return names
}

// undeclared returns the first basic name in the normalised sort n, or in
// the definition of an alias it reaches, that is neither built in nor
// declared.
func (s *Specification) undeclared(n sorts.Sort, declared *set.Set[string]) (string, bool) {
	visited := set.New[string](4)
	var walk func(sorts.Sort) (string, bool)
	walk = func(x sorts.Sort) (string, bool) {
		for _, name := range sorts.BasicNames(x) {
			if !sorts.IsBuiltinName(name) && !declared.Contains(name) {
				return name, true
			}
			if !visited.Insert(name) {
				continue
			}
			if def, ok := s.aliases.Definition(name); ok {
				if bad, found := walk(def); found {
					return bad, true
				}
			}
		}
		return "", false
	}
	return walk(n)
}

// Equal reports whether s and o have the same sorts, constructors,
// mappings and equations after normalisation, regardless of declaration
// order and of the alias names used to declare them.
func (s *Specification) Equal(o *Specification) bool {
	return sameKeys(s.Sorts(), o.Sorts(), sorts.Key) &&
		sameKeys(s.Constructors(), o.Constructors(), symbolIdentity) &&
		sameKeys(s.Mappings(), o.Mappings(), symbolIdentity) &&
		sameKeys(s.Equations(), o.Equations(), equationIdentity)
}

func symbolIdentity(f *data.FunctionSymbol) string {
	return f.Origin().String() + " " + f.Key()
}

func equationIdentity(e *data.Equation) string {
	return e.Origin().String() + " " + e.Key()
}

func sameKeys[T any](a, b []T, key func(T) string) bool {
	x := set.New[string](len(a))
	for _, v := range a {
		x.Insert(key(v))
	}
	y := set.New[string](len(b))
	for _, v := range b {
		if !x.Contains(key(v)) {
			return false
		}
		y.Insert(key(v))
	}
	return x.Size() == y.Size()
}
