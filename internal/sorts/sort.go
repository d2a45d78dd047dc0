// Package sorts implements the sort expression model of a data specification.
// Sorts are immutable values compared by structure, never by identity.
package sorts

import "strings"

// Sort is the interface implemented by all sort expressions.
type Sort interface {
	// String returns the canonical textual form of the sort. Two sorts are
	// equal exactly when their canonical forms are equal.
	String() string

	// aSort is a marker method to restrict implementations to this package.
	aSort()
}

// sort is a base struct for all sort implementations.
type sort struct{}

func (sort) aSort() {}

// Reserved names of the built-in basic sorts.
const (
	BoolName = "Bool"
	PosName  = "Pos"
	NatName  = "Nat"
	IntName  = "Int"
	RealName = "Real"
)

// Basic is a sort identified by a bare name. Built-in leaves such as Bool
// and Nat are basic sorts with reserved names.
type Basic struct {
	sort
	name string
}

// NewBasic creates a basic sort with the given name.
func NewBasic(name string) *Basic {
	return &Basic{name: name}
}

// Name returns the sort name.
func (b *Basic) Name() string {
	return b.name
}

// String implements Sort.
func (b *Basic) String() string {
	return b.name
}

// Bool returns the sort of booleans.
func Bool() *Basic { return NewBasic(BoolName) }

// Pos returns the sort of positive numbers.
func Pos() *Basic { return NewBasic(PosName) }

// Nat returns the sort of natural numbers.
func Nat() *Basic { return NewBasic(NatName) }

// Int returns the sort of integers.
func Int() *Basic { return NewBasic(IntName) }

// Real returns the sort of reals.
func Real() *Basic { return NewBasic(RealName) }

// IsBool reports whether s is the Bool sort.
func IsBool(s Sort) bool {
	b, ok := s.(*Basic)
	return ok && b.name == BoolName
}

// IsNumeric reports whether s is one of Pos, Nat, Int or Real.
func IsNumeric(s Sort) bool {
	b, ok := s.(*Basic)
	if !ok {
		return false
	}
	switch b.name {
	case PosName, NatName, IntName, RealName:
		return true
	}
	return false
}

// IsBuiltinName reports whether name is reserved for a built-in basic sort.
func IsBuiltinName(name string) bool {
	switch name {
	case BoolName, PosName, NatName, IntName, RealName:
		return true
	}
	return false
}

// Function is the sort of functions from a domain tuple to a codomain.
type Function struct {
	sort
	domain   []Sort
	codomain Sort
}

// NewFunction creates a function sort. An empty domain is allowed and
// denotes a constant of the codomain sort when used as a symbol sort.
func NewFunction(domain []Sort, codomain Sort) *Function {
	return &Function{domain: append([]Sort(nil), domain...), codomain: codomain}
}

// Domain returns a copy of the domain sorts.
func (f *Function) Domain() []Sort {
	return append([]Sort(nil), f.domain...)
}

// Arity returns the number of domain sorts.
func (f *Function) Arity() int {
	return len(f.domain)
}

// Codomain returns the range sort.
func (f *Function) Codomain() Sort {
	return f.codomain
}

// String implements Sort.
func (f *Function) String() string {
	var buf strings.Builder
	for i, d := range f.domain {
		if i > 0 {
			buf.WriteString(" # ")
		}
		writeOperand(&buf, d)
	}
	buf.WriteString(" -> ")
	buf.WriteString(f.codomain.String())
	return buf.String()
}

// writeOperand wraps sorts whose text would be ambiguous in a domain position.
func writeOperand(buf *strings.Builder, s Sort) {
	switch s.(type) {
	case *Function, *Structured:
		buf.WriteString("(")
		buf.WriteString(s.String())
		buf.WriteString(")")
	default:
		buf.WriteString(s.String())
	}
}

// ContainerKind identifies a container family.
type ContainerKind int

const (
	List ContainerKind = iota
	Set
	Bag
)

// String returns "List", "Set" or "Bag".
func (k ContainerKind) String() string {
	switch k {
	case List:
		return "List"
	case Set:
		return "Set"
	case Bag:
		return "Bag"
	default:
		return "Container"
	}
}

// Container is a built-in generic container applied to an element sort.
type Container struct {
	sort
	kind    ContainerKind
	element Sort
}

// NewContainer creates a container sort of the given kind.
func NewContainer(kind ContainerKind, element Sort) *Container {
	return &Container{kind: kind, element: element}
}

// NewList creates List(element).
func NewList(element Sort) *Container { return NewContainer(List, element) }

// NewSet creates Set(element).
func NewSet(element Sort) *Container { return NewContainer(Set, element) }

// NewBag creates Bag(element).
func NewBag(element Sort) *Container { return NewContainer(Bag, element) }

// Kind returns the container family.
func (c *Container) Kind() ContainerKind {
	return c.kind
}

// Element returns the element sort.
func (c *Container) Element() Sort {
	return c.element
}

// String implements Sort.
func (c *Container) String() string {
	return c.kind.String() + "(" + c.element.String() + ")"
}

// Projection is a constructor argument, optionally named. A named
// projection gives rise to a projection mapping of the same name.
type Projection struct {
	name string
	sort Sort
}

// NewProjection creates a projection argument. name may be empty.
func NewProjection(name string, s Sort) *Projection {
	return &Projection{name: name, sort: s}
}

// Name returns the projection name, or "" for an anonymous argument.
func (p *Projection) Name() string {
	return p.name
}

// Sort returns the argument sort.
func (p *Projection) Sort() Sort {
	return p.sort
}

// StructConstructor is one alternative of a structured sort.
type StructConstructor struct {
	name       string
	arguments  []*Projection
	recogniser string
}

// NewStructConstructor creates a constructor alternative. recogniser may
// be empty when no recogniser mapping is wanted.
func NewStructConstructor(name, recogniser string, arguments ...*Projection) *StructConstructor {
	return &StructConstructor{name: name, arguments: arguments, recogniser: recogniser}
}

// Name returns the constructor name.
func (c *StructConstructor) Name() string {
	return c.name
}

// Arguments returns a copy of the constructor's projection arguments.
func (c *StructConstructor) Arguments() []*Projection {
	return append([]*Projection(nil), c.arguments...)
}

// Recogniser returns the recogniser name, or "".
func (c *StructConstructor) Recogniser() string {
	return c.recogniser
}

// ArgumentSorts returns the sorts of the constructor arguments in order.
func (c *StructConstructor) ArgumentSorts() []Sort {
	out := make([]Sort, len(c.arguments))
	for i, a := range c.arguments {
		out[i] = a.sort
	}
	return out
}

func (c *StructConstructor) String() string {
	var buf strings.Builder
	buf.WriteString(c.name)
	if len(c.arguments) > 0 {
		buf.WriteString("(")
		for i, a := range c.arguments {
			if i > 0 {
				buf.WriteString(", ")
			}
			if a.name != "" {
				buf.WriteString(a.name)
				buf.WriteString(": ")
			}
			buf.WriteString(a.sort.String())
		}
		buf.WriteString(")")
	}
	if c.recogniser != "" {
		buf.WriteString("?")
		buf.WriteString(c.recogniser)
	}
	return buf.String()
}

// Structured is an algebraic data type given by an ordered list of
// constructor alternatives.
type Structured struct {
	sort
	constructors []*StructConstructor
}

// NewStructured creates a structured sort.
func NewStructured(constructors ...*StructConstructor) *Structured {
	return &Structured{constructors: constructors}
}

// Constructors returns a copy of the constructor alternatives.
func (s *Structured) Constructors() []*StructConstructor {
	return append([]*StructConstructor(nil), s.constructors...)
}

// String implements Sort.
func (s *Structured) String() string {
	parts := make([]string, len(s.constructors))
	for i, c := range s.constructors {
		parts[i] = c.String()
	}
	return "struct " + strings.Join(parts, " | ")
}

// Alias binds a name to a target sort, one level deep. Aliases are
// declarations, not sort expressions; occurrences of the alias name in
// other sorts are basic sorts.
type Alias struct {
	name   *Basic
	target Sort
}

// NewAlias creates the alias declaration name = target.
func NewAlias(name string, target Sort) *Alias {
	return &Alias{name: NewBasic(name), target: target}
}

// Name returns the alias name as a basic sort.
func (a *Alias) Name() *Basic {
	return a.name
}

// Target returns the aliased sort.
func (a *Alias) Target() Sort {
	return a.target
}

func (a *Alias) String() string {
	return a.name.String() + " = " + a.target.String()
}
