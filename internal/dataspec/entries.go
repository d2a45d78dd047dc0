package dataspec

import (
	"go.uber.org/multierr"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Entries is the full content of a specification, enough to rebuild an
// equal one. Sorts, context sorts and aliases are the user declarations as
// given; symbols and equations are normalised and carry their origin so a
// loader can skip the system-defined ones.
type Entries struct {
	Sorts        []sorts.Sort
	Aliases      []*sorts.Alias
	ContextSorts []sorts.Sort
	Constructors []*data.FunctionSymbol
	Mappings     []*data.FunctionSymbol
	Equations    []*data.Equation
}

// Entries returns the content of s.
func (s *Specification) Entries() Entries {
	return Entries{
		Sorts:        append([]sorts.Sort(nil), s.sorts...),
		Aliases:      s.aliases.Aliases(),
		ContextSorts: append([]sorts.Sort(nil), s.contextSorts...),
		Constructors: s.store.Constructors(),
		Mappings:     s.store.Mappings(),
		Equations:    s.store.Equations(),
	}
}

// Restore builds a specification from entries, regenerating every
// system-defined entry rather than trusting the recorded ones.
func Restore(e Entries) (*Specification, error) {
	s := New()
	for _, a := range e.Aliases {
		s.AddAlias(a)
	}
	s.AddSorts(e.Sorts...)
	s.AddContextSorts(e.ContextSorts...)

	var errs error
	errs = multierr.Append(errs, s.AddConstructors(userDefined(e.Constructors)...))
	errs = multierr.Append(errs, s.AddMappings(userDefined(e.Mappings)...))
	for _, eq := range e.Equations {
		if eq.Origin() == data.UserDefined {
			s.AddEquation(eq)
		}
	}
	return s, errs
}

func userDefined(fs []*data.FunctionSymbol) []*data.FunctionSymbol {
	var out []*data.FunctionSymbol
	for _, f := range fs {
		if f.Origin() == data.UserDefined {
			out = append(out, f)
		}
	}
	return out
}
