package data

import (
	"fmt"
	"strings"

	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Equation is a conditional rewrite rule `condition -> lhs = rhs` over a
// list of bound variables. A nil condition means true.
type Equation struct {
	variables []*Variable
	condition Expression
	lhs       Expression
	rhs       Expression
	origin    Origin
}

// NewEquation creates a user-defined equation.
func NewEquation(variables []*Variable, condition, lhs, rhs Expression) *Equation {
	return &Equation{
		variables: append([]*Variable(nil), variables...),
		condition: condition,
		lhs:       lhs,
		rhs:       rhs,
		origin:    UserDefined,
	}
}

// Variables returns a copy of the bound variables.
func (e *Equation) Variables() []*Variable {
	return append([]*Variable(nil), e.variables...)
}

// Condition returns the condition, or nil when unconditional.
func (e *Equation) Condition() Expression { return e.condition }

// LHS returns the left-hand pattern.
func (e *Equation) LHS() Expression { return e.lhs }

// RHS returns the right-hand replacement.
func (e *Equation) RHS() Expression { return e.rhs }

// Origin returns where the equation came from.
func (e *Equation) Origin() Origin { return e.origin }

// Head returns the head symbol of the left-hand side, or nil if the
// left-hand side is headed by a variable or numeral.
func (e *Equation) Head() *Symbol {
	return HeadSymbol(e.lhs)
}

// WithOrigin returns a copy of e with a different origin.
func (e *Equation) WithOrigin(o Origin) *Equation {
	c := *e
	c.origin = o
	return &c
}

// MapSorts returns a copy of e with every sort annotation replaced by fn.
func (e *Equation) MapSorts(fn func(sorts.Sort) sorts.Sort) *Equation {
	vars := make([]*Variable, len(e.variables))
	for i, v := range e.variables {
		vars[i] = NewVariable(v.name, fn(v.sort))
	}
	c := &Equation{variables: vars, lhs: MapSorts(e.lhs, fn), rhs: MapSorts(e.rhs, fn), origin: e.origin}
	if e.condition != nil {
		c.condition = MapSorts(e.condition, fn)
	}
	return c
}

// Sorts returns every sort annotation occurring in the equation.
func (e *Equation) Sorts() []sorts.Sort {
	var out []sorts.Sort
	for _, v := range e.variables {
		out = append(out, v.sort)
	}
	if e.condition != nil {
		out = append(out, SortsOf(e.condition)...)
	}
	out = append(out, SortsOf(e.lhs)...)
	return append(out, SortsOf(e.rhs)...)
}

// Key identifies the equation independently of its origin.
func (e *Equation) Key() string {
	var buf strings.Builder
	buf.WriteString("var ")
	for i, v := range e.variables {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(v.name + ":" + sorts.Key(v.sort))
	}
	buf.WriteString("; ")
	if e.condition != nil {
		buf.WriteString(Key(e.condition))
		buf.WriteString(" -> ")
	}
	buf.WriteString(Key(e.lhs))
	buf.WriteString(" = ")
	buf.WriteString(Key(e.rhs))
	return buf.String()
}

func (e *Equation) String() string {
	var buf strings.Builder
	if e.condition != nil {
		buf.WriteString(e.condition.String())
		buf.WriteString(" -> ")
	}
	buf.WriteString(e.lhs.String())
	buf.WriteString(" = ")
	buf.WriteString(e.rhs.String())
	return buf.String()
}

// CheckApplications verifies that every application in e supplies as many
// arguments as its head expects, each of the expected sort. Sorts are
// compared as given; callers normalise them first.
func CheckApplications(e Expression) error {
	app, ok := e.(*Application)
	if !ok {
		return nil
	}
	if err := CheckApplications(app.head); err != nil {
		return err
	}
	f, ok := app.head.Sort().(*sorts.Function)
	if !ok {
		return fmt.Errorf("%s is applied but has non-function sort %s", app.head, app.head.Sort())
	}
	if f.Arity() != len(app.arguments) {
		return fmt.Errorf("%s expects %d arguments, got %d", app.head, f.Arity(), len(app.arguments))
	}
	domain := f.Domain()
	for i, arg := range app.arguments {
		if err := CheckApplications(arg); err != nil {
			return err
		}
		if !sorts.Equal(arg.Sort(), domain[i]) {
			return fmt.Errorf("argument %d of %s has sort %s, want %s", i+1, app.head, arg.Sort(), domain[i])
		}
	}
	return nil
}
