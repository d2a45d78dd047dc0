// Package data defines function symbols, data expressions and rewrite
// equations over the sorts of a data specification.
package data

import (
	"fmt"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Role tells whether a function symbol builds values or computes on them.
type Role int

const (
	RoleConstructor Role = iota
	RoleMapping
)

// String returns "constructor" or "mapping".
func (r Role) String() string {
	switch r {
	case RoleConstructor:
		return "constructor"
	case RoleMapping:
		return "mapping"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Origin records whether an entry was declared by the user or generated to
// realise a built-in theory.
type Origin int

const (
	UserDefined Origin = iota
	SystemDefined
)

// String returns "user" or "system".
func (o Origin) String() string {
	switch o {
	case UserDefined:
		return "user"
	case SystemDefined:
		return "system"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Origin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "user":
		*o = UserDefined
	case "system":
		*o = SystemDefined
	default:
		return fmt.Errorf("unknown origin %q", text)
	}
	return nil
}

// FunctionSymbol is a named operator with a sort. Constants have a
// non-function sort. Symbols are immutable once constructed.
type FunctionSymbol struct {
	name   string
	sort   sorts.Sort
	role   Role
	origin Origin
}

// NewFunctionSymbol creates a function symbol.
func NewFunctionSymbol(name string, s sorts.Sort, role Role, origin Origin) *FunctionSymbol {
	return &FunctionSymbol{name: name, sort: s, role: role, origin: origin}
}

// NewConstructor creates a user-defined constructor.
func NewConstructor(name string, s sorts.Sort) *FunctionSymbol {
	return NewFunctionSymbol(name, s, RoleConstructor, UserDefined)
}

// NewMapping creates a user-defined mapping.
func NewMapping(name string, s sorts.Sort) *FunctionSymbol {
	return NewFunctionSymbol(name, s, RoleMapping, UserDefined)
}

// Name returns the symbol name.
func (f *FunctionSymbol) Name() string { return f.name }

// Sort returns the symbol sort.
func (f *FunctionSymbol) Sort() sorts.Sort { return f.sort }

// Role returns the symbol role.
func (f *FunctionSymbol) Role() Role { return f.role }

// Origin returns where the symbol came from.
func (f *FunctionSymbol) Origin() Origin { return f.origin }

// Domain returns the argument sorts, empty for constants.
func (f *FunctionSymbol) Domain() []sorts.Sort { return sorts.Domain(f.sort) }

// Range returns the sort of values built or computed by the symbol.
func (f *FunctionSymbol) Range() sorts.Sort { return sorts.Range(f.sort) }

// Key identifies the symbol by name and sort; role and origin do not
// take part.
func (f *FunctionSymbol) Key() string {
	return f.name + ": " + sorts.Key(f.sort)
}

// WithSort returns a copy of f with a different sort.
func (f *FunctionSymbol) WithSort(s sorts.Sort) *FunctionSymbol {
	return &FunctionSymbol{name: f.name, sort: s, role: f.role, origin: f.origin}
}

// WithOrigin returns a copy of f with a different origin.
func (f *FunctionSymbol) WithOrigin(o Origin) *FunctionSymbol {
	return &FunctionSymbol{name: f.name, sort: f.sort, role: f.role, origin: o}
}

// Symbol returns an expression referring to f.
func (f *FunctionSymbol) Symbol() *Symbol {
	return NewSymbol(f.name, f.sort)
}

func (f *FunctionSymbol) String() string {
	return f.Key()
}
