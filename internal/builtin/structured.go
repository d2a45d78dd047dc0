package builtin

import (
	"fmt"

	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// structured adds constructors, projections and recognisers for the
// structured sort def, whose canonical sort is s.
func (th *Theory) structured(s sorts.Sort, def *sorts.Structured) {
	cons := def.Constructors()
	heads := make([]*data.Symbol, len(cons))
	for i, c := range cons {
		heads[i] = th.constructor(c.Name(), arrow(s, c.ArgumentSorts()...))
	}

	// Terms c(v1, ..., vn) and c(w1, ..., wn) for each constructor.
	left := make([]data.Expression, len(cons))
	right := make([]data.Expression, len(cons))
	leftVars := make([][]*data.Variable, len(cons))
	rightVars := make([][]*data.Variable, len(cons))
	for i, c := range cons {
		left[i], leftVars[i] = term(heads[i], c, "v")
		right[i], rightVars[i] = term(heads[i], c, "w")
	}

	for i, c := range cons {
		for j, p := range c.Arguments() {
			if p.Name() == "" {
				continue
			}
			proj := th.mapping(p.Name(), arrow(p.Sort(), s))
			th.eq(leftVars[i], app(proj, left[i]), leftVars[i][j])
		}
	}

	for i, c := range cons {
		if c.Recogniser() == "" {
			continue
		}
		rec := th.mapping(c.Recogniser(), arrow(sorts.Bool(), s))
		for k := range cons {
			result := falseExpr()
			if k == i {
				result = trueExpr()
			}
			th.eq(leftVars[k], app(rec, left[k]), result)
		}
	}

	eq := equalTo(s)
	for i, c := range cons {
		for k := range cons {
			vs := append(append([]*data.Variable(nil), leftVars[i]...), rightVars[k]...)
			if i != k {
				th.eq(vs, app(eq, left[i], right[k]), falseExpr())
				continue
			}
			args := c.ArgumentSorts()
			terms := make([]data.Expression, len(args))
			for a, as := range args {
				terms[a] = app(equalTo(as), leftVars[i][a], rightVars[i][a])
			}
			th.eq(vs, app(eq, left[i], right[i]), conjunction(terms))
		}
	}
}

// term applies head to fresh variables prefix1..prefixN of the argument
// sorts of c; a constant constructor yields head itself.
func term(head *data.Symbol, c *sorts.StructConstructor, prefix string) (data.Expression, []*data.Variable) {
	args := c.ArgumentSorts()
	if len(args) == 0 {
		return head, nil
	}
	vs := make([]*data.Variable, len(args))
	exprs := make([]data.Expression, len(args))
	for i, a := range args {
		vs[i] = v(fmt.Sprintf("%s%d", prefix, i+1), a)
		exprs[i] = vs[i]
	}
	return app(head, exprs...), vs
}
