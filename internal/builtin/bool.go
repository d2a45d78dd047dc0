package builtin

import (
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

func trueExpr() *data.Symbol  { return data.NewSymbol("true", sorts.Bool()) }
func falseExpr() *data.Symbol { return data.NewSymbol("false", sorts.Bool()) }

func notOp() *data.Symbol {
	return data.NewSymbol("!", arrow(sorts.Bool(), sorts.Bool()))
}

func andOp() *data.Symbol {
	return data.NewSymbol("&&", arrow(sorts.Bool(), sorts.Bool(), sorts.Bool()))
}

func orOp() *data.Symbol {
	return data.NewSymbol("||", arrow(sorts.Bool(), sorts.Bool(), sorts.Bool()))
}

func (th *Theory) boolean() {
	b := sorts.Bool()
	tt := th.constructor("true", b)
	ff := th.constructor("false", b)
	not := th.mapping("!", arrow(b, b))
	and := th.mapping("&&", arrow(b, b, b))
	or := th.mapping("||", arrow(b, b, b))
	implies := th.mapping("=>", arrow(b, b, b))
	eq := equalTo(b)

	x := v("b", b)
	th.eq(nil, app(not, tt), ff)
	th.eq(nil, app(not, ff), tt)
	th.eq(vars(x), app(not, app(not, x)), x)

	th.eq(vars(x), app(and, tt, x), x)
	th.eq(vars(x), app(and, ff, x), ff)
	th.eq(vars(x), app(and, x, tt), x)
	th.eq(vars(x), app(and, x, ff), ff)

	th.eq(vars(x), app(or, tt, x), tt)
	th.eq(vars(x), app(or, ff, x), x)
	th.eq(vars(x), app(or, x, tt), tt)
	th.eq(vars(x), app(or, x, ff), x)

	th.eq(vars(x), app(implies, ff, x), tt)
	th.eq(vars(x), app(implies, tt, x), x)
	th.eq(vars(x), app(implies, x, tt), tt)
	th.eq(vars(x), app(implies, x, ff), app(not, x))

	th.eq(vars(x), app(eq, tt, x), x)
	th.eq(vars(x), app(eq, ff, x), app(not, x))
	th.eq(vars(x), app(eq, x, tt), x)
	th.eq(vars(x), app(eq, x, ff), app(not, x))
}
