package data

import (
	"strings"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Expression is a data term: a variable, a function symbol, a numeral or
// an application.
type Expression interface {
	// Sort returns the sort of the term. For an application whose head is
	// not of function sort, the head sort is returned unchanged.
	Sort() sorts.Sort

	// String returns a readable rendering without sort annotations.
	String() string

	anExpression()
}

type expression struct{}

func (expression) anExpression() {}

// Variable is a typed variable.
type Variable struct {
	expression
	name string
	sort sorts.Sort
}

// NewVariable creates a variable.
func NewVariable(name string, s sorts.Sort) *Variable {
	return &Variable{name: name, sort: s}
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Sort implements Expression.
func (v *Variable) Sort() sorts.Sort { return v.sort }

// String implements Expression.
func (v *Variable) String() string { return v.name }

// Symbol references a function symbol by name and sort.
type Symbol struct {
	expression
	name string
	sort sorts.Sort
}

// NewSymbol creates a symbol reference.
func NewSymbol(name string, s sorts.Sort) *Symbol {
	return &Symbol{name: name, sort: s}
}

// Name returns the symbol name.
func (s *Symbol) Name() string { return s.name }

// Sort implements Expression.
func (s *Symbol) Sort() sorts.Sort { return s.sort }

// String implements Expression.
func (s *Symbol) String() string { return s.name }

// Key identifies the referenced symbol the same way FunctionSymbol.Key does.
func (s *Symbol) Key() string { return s.name + ": " + sorts.Key(s.sort) }

// Numeral is a numeric literal of a numeric sort.
type Numeral struct {
	expression
	value string
	sort  sorts.Sort
}

// NewNumeral creates a numeral.
func NewNumeral(value string, s sorts.Sort) *Numeral {
	return &Numeral{value: value, sort: s}
}

// Value returns the literal digits.
func (n *Numeral) Value() string { return n.value }

// Sort implements Expression.
func (n *Numeral) Sort() sorts.Sort { return n.sort }

// String implements Expression.
func (n *Numeral) String() string { return n.value }

// Application applies a head expression to arguments.
type Application struct {
	expression
	head      Expression
	arguments []Expression
}

// Apply creates head(arguments...).
func Apply(head Expression, arguments ...Expression) *Application {
	return &Application{head: head, arguments: arguments}
}

// Head returns the applied expression.
func (a *Application) Head() Expression { return a.head }

// Arguments returns a copy of the arguments.
func (a *Application) Arguments() []Expression {
	return append([]Expression(nil), a.arguments...)
}

// Sort implements Expression.
func (a *Application) Sort() sorts.Sort {
	return sorts.Range(a.head.Sort())
}

// String implements Expression.
func (a *Application) String() string {
	var buf strings.Builder
	buf.WriteString(a.head.String())
	buf.WriteString("(")
	for i, arg := range a.arguments {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(arg.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// Key returns an identity for e that includes every sort annotation, so
// overloaded symbols remain distinct.
func Key(e Expression) string {
	var buf strings.Builder
	writeKey(&buf, e)
	return buf.String()
}

func writeKey(buf *strings.Builder, e Expression) {
	switch e := e.(type) {
	case nil:
		buf.WriteString("<nil>")
	case *Variable:
		buf.WriteString("$" + e.name + ":" + sorts.Key(e.sort))
	case *Symbol:
		buf.WriteString(e.name + ":" + sorts.Key(e.sort))
	case *Numeral:
		buf.WriteString("#" + e.value + ":" + sorts.Key(e.sort))
	case *Application:
		writeKey(buf, e.head)
		buf.WriteString("(")
		for i, arg := range e.arguments {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeKey(buf, arg)
		}
		buf.WriteString(")")
	}
}

// MapSorts rebuilds e with every sort annotation replaced by fn(sort).
func MapSorts(e Expression, fn func(sorts.Sort) sorts.Sort) Expression {
	switch e := e.(type) {
	case *Variable:
		return NewVariable(e.name, fn(e.sort))
	case *Symbol:
		return NewSymbol(e.name, fn(e.sort))
	case *Numeral:
		return NewNumeral(e.value, fn(e.sort))
	case *Application:
		args := make([]Expression, len(e.arguments))
		for i, arg := range e.arguments {
			args[i] = MapSorts(arg, fn)
		}
		return Apply(MapSorts(e.head, fn), args...)
	}
	return e
}

// HeadSymbol returns the symbol at the head of e after stripping
// applications, or nil if the head is a variable or numeral.
func HeadSymbol(e Expression) *Symbol {
	for {
		switch x := e.(type) {
		case *Symbol:
			return x
		case *Application:
			e = x.head
		default:
			return nil
		}
	}
}

// SortsOf returns every sort annotation occurring in e.
func SortsOf(e Expression) []sorts.Sort {
	var out []sorts.Sort
	MapSorts(e, func(s sorts.Sort) sorts.Sort {
		out = append(out, s)
		return s
	})
	return out
}
