package dataspec

import (
	"fmt"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
	"github.com/foundry-zero/dataspec/internal/store"
)

// UndeclaredSortError reports a sort expression that refers to a basic
// sort name that is neither built in, declared as a sort or context sort,
// nor declared as an alias.
type UndeclaredSortError struct {
	Sort sorts.Sort
	Name string
}

func (e *UndeclaredSortError) Error() string {
	if b, ok := e.Sort.(*sorts.Basic); ok && b.Name() == e.Name {
		return fmt.Sprintf("sort %s is not declared", e.Name)
	}
	return fmt.Sprintf("sort %s refers to undeclared sort %s", e.Sort, e.Name)
}

// IllTypedEquationError reports an equation whose sides have different
// sorts, whose condition is not boolean, or which applies a symbol to
// arguments of the wrong number or sort.
type IllTypedEquationError struct {
	Equation *data.Equation
	Reason   string
}

func (e *IllTypedEquationError) Error() string {
	return fmt.Sprintf("equation %s is ill-typed: %s", e.Equation, e.Reason)
}

// RoleConflictError is returned when a name and sort pair is declared both
// as a constructor and as a mapping.
type RoleConflictError = store.RoleConflictError
