package semantic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/dataspec"
	"github.com/foundry-zero/dataspec/internal/report"
)

// CheckExpressions checks the user equations of the document:
//
//   - EQN-01: both sides must have the same sort, a condition must be
//     boolean and every application must match its head.
//   - EQN-02: a variable used on the right-hand side or in the condition
//     but not on the left-hand side leaves the rule unusable for rewriting.
func CheckExpressions(m *Model) []report.Finding {
	var findings []report.Finding
	for _, ref := range m.Equations {
		err := m.Spec.WellTyped(ref.Equation)
		var illTyped *dataspec.IllTypedEquationError
		if errors.As(err, &illTyped) {
			findings = append(findings, report.NewError("EQN-01", illTyped.Error(), m.Location(ref.Path)))
		}
		if free := unboundVariables(ref.Equation); len(free) > 0 {
			findings = append(findings, report.NewWarning("EQN-02",
				fmt.Sprintf("variables %s do not occur on the left-hand side of %s", strings.Join(free, ", "), ref.Equation),
				m.Location(ref.Path)))
		}
	}
	return findings
}

// unboundVariables lists, in order of first occurrence, the variables of
// the condition and right-hand side of e missing from its left-hand side.
func unboundVariables(e *data.Equation) []string {
	bound := set.New[string](len(e.Variables()))
	collectVariables(e.LHS(), func(v *data.Variable) { bound.Insert(v.Name()) })

	reported := set.New[string](0)
	var free []string
	visit := func(v *data.Variable) {
		if !bound.Contains(v.Name()) && reported.Insert(v.Name()) {
			free = append(free, v.Name())
		}
	}
	if c := e.Condition(); c != nil {
		collectVariables(c, visit)
	}
	collectVariables(e.RHS(), visit)
	return free
}

func collectVariables(e data.Expression, fn func(*data.Variable)) {
	switch x := e.(type) {
	case *data.Variable:
		fn(x)
	case *data.Application:
		collectVariables(x.Head(), fn)
		for _, a := range x.Arguments() {
			collectVariables(a, fn)
		}
	}
}
