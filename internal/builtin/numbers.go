package builtin

import (
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// Numbers use a binary representation: a positive number is @c1 or
// @cDub(b, p) meaning 2p+b; a natural is @c0 or @cNat(p); an integer is
// @cInt(n) or @cNeg(p); a real is the fraction @cReal(x, p) = x/p.

func c1() *data.Symbol { return data.NewSymbol("@c1", sorts.Pos()) }

func cDub() *data.Symbol {
	return data.NewSymbol("@cDub", arrow(sorts.Pos(), sorts.Bool(), sorts.Pos()))
}

func c0() *data.Symbol { return data.NewSymbol("@c0", sorts.Nat()) }

func cNat() *data.Symbol {
	return data.NewSymbol("@cNat", arrow(sorts.Nat(), sorts.Pos()))
}

func cInt() *data.Symbol {
	return data.NewSymbol("@cInt", arrow(sorts.Int(), sorts.Nat()))
}

func cNeg() *data.Symbol {
	return data.NewSymbol("@cNeg", arrow(sorts.Int(), sorts.Pos()))
}

func binary(name string, s sorts.Sort) *data.Symbol {
	return data.NewSymbol(name, arrow(s, s, s))
}

func relation(name string, s sorts.Sort) *data.Symbol {
	return data.NewSymbol(name, arrow(sorts.Bool(), s, s))
}

func succNat() *data.Symbol {
	return data.NewSymbol("succ", arrow(sorts.Pos(), sorts.Nat()))
}

func predPos() *data.Symbol {
	return data.NewSymbol("pred", arrow(sorts.Nat(), sorts.Pos()))
}

func negInt() *data.Symbol {
	return data.NewSymbol("-", arrow(sorts.Int(), sorts.Int()))
}

func pos2Int() *data.Symbol {
	return data.NewSymbol("Pos2Int", arrow(sorts.Int(), sorts.Pos()))
}

// ordering adds <, <=, max and min over s. Only < and <= on equal
// arguments and max/min are defined here; representation specific cases
// are added by the caller.
func (th *Theory) ordering(s sorts.Sort) (lt, le *data.Symbol) {
	lt = th.mapping("<", arrow(sorts.Bool(), s, s))
	le = th.mapping("<=", arrow(sorts.Bool(), s, s))
	maxOp := th.mapping("max", arrow(s, s, s))
	minOp := th.mapping("min", arrow(s, s, s))

	x, y := v("x", s), v("y", s)
	th.eq(vars(x), app(lt, x, x), falseExpr())
	th.eq(vars(x), app(le, x, x), trueExpr())
	th.eq(vars(x, y), app(maxOp, x, y), app(ifThenElse(s), app(le, x, y), y, x))
	th.eq(vars(x, y), app(minOp, x, y), app(ifThenElse(s), app(le, x, y), x, y))
	return lt, le
}

func (th *Theory) positive() {
	pos := sorts.Pos()
	one := th.constructor("@c1", pos)
	dub := th.constructor("@cDub", arrow(pos, sorts.Bool(), pos))
	succ := th.mapping("succ", arrow(pos, pos))
	plus := th.mapping("+", arrow(pos, pos, pos))
	times := th.mapping("*", arrow(pos, pos, pos))
	lt, le := th.ordering(pos)

	b, c := v("b", sorts.Bool()), v("c", sorts.Bool())
	p, q := v("p", pos), v("q", pos)
	eq := equalTo(pos)

	th.eq(vars(b, p), app(eq, one, app(dub, b, p)), falseExpr())
	th.eq(vars(b, p), app(eq, app(dub, b, p), one), falseExpr())
	th.eq(vars(b, c, p, q), app(eq, app(dub, b, p), app(dub, c, q)),
		app(andOp(), app(equalTo(sorts.Bool()), b, c), app(eq, p, q)))

	th.eq(nil, app(succ, one), app(dub, falseExpr(), one))
	th.eq(vars(p), app(succ, app(dub, falseExpr(), p)), app(dub, trueExpr(), p))
	th.eq(vars(p), app(succ, app(dub, trueExpr(), p)), app(dub, falseExpr(), app(succ, p)))

	th.eq(vars(p), app(le, one, p), trueExpr())
	th.eq(vars(b, p), app(le, app(dub, b, p), one), falseExpr())
	th.eq(vars(p), app(lt, p, one), falseExpr())
	th.eq(vars(b, p), app(lt, one, app(dub, b, p)), trueExpr())

	th.eq(vars(p), app(plus, one, p), app(succ, p))
	th.eq(vars(p), app(plus, p, one), app(succ, p))
	th.eq(vars(p), app(times, one, p), p)
	th.eq(vars(p), app(times, p, one), p)
}

func (th *Theory) natural() {
	nat, pos := sorts.Nat(), sorts.Pos()
	zero := th.constructor("@c0", nat)
	cnat := th.constructor("@cNat", arrow(nat, pos))
	pos2nat := th.mapping("Pos2Nat", arrow(nat, pos))
	nat2pos := th.mapping("Nat2Pos", arrow(pos, nat))
	succ := th.mapping("succ", arrow(pos, nat))
	pred := th.mapping("pred", arrow(nat, pos))
	plus := th.mapping("+", arrow(nat, nat, nat))
	times := th.mapping("*", arrow(nat, nat, nat))
	div := th.mapping("div", arrow(nat, nat, pos))
	mod := th.mapping("mod", arrow(nat, nat, pos))
	lt, le := th.ordering(nat)

	n := v("n", nat)
	p, q := v("p", pos), v("q", pos)
	eq := equalTo(nat)

	th.eq(vars(p), app(eq, zero, app(cnat, p)), falseExpr())
	th.eq(vars(p), app(eq, app(cnat, p), zero), falseExpr())
	th.eq(vars(p, q), app(eq, app(cnat, p), app(cnat, q)), app(equalTo(pos), p, q))

	th.eq(vars(p), app(pos2nat, p), app(cnat, p))
	th.eq(vars(p), app(nat2pos, app(cnat, p)), p)

	th.eq(nil, app(succ, zero), c1())
	th.eq(vars(p), app(succ, app(cnat, p)), app(data.NewSymbol("succ", arrow(pos, pos)), p))
	th.eq(nil, app(pred, c1()), zero)
	th.eq(vars(p), app(pred, app(cDub(), trueExpr(), p)), app(cnat, app(cDub(), falseExpr(), p)))

	th.eq(vars(n), app(plus, zero, n), n)
	th.eq(vars(n), app(plus, n, zero), n)
	th.eq(vars(p, q), app(plus, app(cnat, p), app(cnat, q)), app(cnat, app(binary("+", pos), p, q)))
	th.eq(vars(n), app(times, zero, n), zero)
	th.eq(vars(n), app(times, n, zero), zero)
	th.eq(vars(p, q), app(times, app(cnat, p), app(cnat, q)), app(cnat, app(binary("*", pos), p, q)))

	th.eq(vars(n), app(le, zero, n), trueExpr())
	th.eq(vars(p), app(le, app(cnat, p), zero), falseExpr())
	th.eq(vars(p, q), app(le, app(cnat, p), app(cnat, q)), app(relation("<=", pos), p, q))
	th.eq(vars(n), app(lt, n, zero), falseExpr())
	th.eq(vars(p), app(lt, zero, app(cnat, p)), trueExpr())
	th.eq(vars(p, q), app(lt, app(cnat, p), app(cnat, q)), app(relation("<", pos), p, q))

	th.eq(vars(p), app(div, zero, p), zero)
	th.eq(vars(p), app(mod, zero, p), zero)
	th.eq(vars(n), app(div, n, c1()), n)
	th.eq(vars(n), app(mod, n, c1()), zero)
}

func (th *Theory) integer() {
	in, nat, pos := sorts.Int(), sorts.Nat(), sorts.Pos()
	cint := th.constructor("@cInt", arrow(in, nat))
	cneg := th.constructor("@cNeg", arrow(in, pos))
	nat2int := th.mapping("Nat2Int", arrow(in, nat))
	int2nat := th.mapping("Int2Nat", arrow(nat, in))
	p2i := th.mapping("Pos2Int", arrow(in, pos))
	neg := th.mapping("-", arrow(in, in))
	minus := th.mapping("-", arrow(in, in, in))
	plus := th.mapping("+", arrow(in, in, in))
	times := th.mapping("*", arrow(in, in, in))
	abs := th.mapping("abs", arrow(nat, in))
	lt, le := th.ordering(in)

	n, m := v("n", nat), v("m", nat)
	p, q := v("p", pos), v("q", pos)
	x, y := v("x", in), v("y", in)
	eq := equalTo(in)

	th.eq(vars(n, m), app(eq, app(cint, n), app(cint, m)), app(equalTo(nat), n, m))
	th.eq(vars(n, p), app(eq, app(cint, n), app(cneg, p)), falseExpr())
	th.eq(vars(n, p), app(eq, app(cneg, p), app(cint, n)), falseExpr())
	th.eq(vars(p, q), app(eq, app(cneg, p), app(cneg, q)), app(equalTo(pos), p, q))

	th.eq(vars(n), app(nat2int, n), app(cint, n))
	th.eq(vars(n), app(int2nat, app(cint, n)), n)
	th.eq(vars(p), app(p2i, p), app(cint, app(cNat(), p)))

	th.eq(nil, app(neg, app(cint, c0())), app(cint, c0()))
	th.eq(vars(p), app(neg, app(cint, app(cNat(), p))), app(cneg, p))
	th.eq(vars(p), app(neg, app(cneg, p)), app(cint, app(cNat(), p)))
	th.eq(vars(x, y), app(minus, x, y), app(plus, x, app(neg, y)))

	th.eq(vars(n), app(abs, app(cint, n)), n)
	th.eq(vars(p), app(abs, app(cneg, p)), app(cNat(), p))

	th.eq(vars(n, m), app(plus, app(cint, n), app(cint, m)), app(cint, app(binary("+", nat), n, m)))
	th.eq(vars(p, q), app(plus, app(cneg, p), app(cneg, q)), app(cneg, app(binary("+", pos), p, q)))
	th.eq(vars(n, m), app(times, app(cint, n), app(cint, m)), app(cint, app(binary("*", nat), n, m)))
	th.eq(vars(p, q), app(times, app(cneg, p), app(cneg, q)), app(cint, app(cNat(), app(binary("*", pos), p, q))))

	th.eq(vars(n, m), app(le, app(cint, n), app(cint, m)), app(relation("<=", nat), n, m))
	th.eq(vars(n, p), app(le, app(cneg, p), app(cint, n)), trueExpr())
	th.eq(vars(n, p), app(le, app(cint, n), app(cneg, p)), falseExpr())
	th.eq(vars(p, q), app(le, app(cneg, p), app(cneg, q)), app(relation("<=", pos), q, p))
	th.eq(vars(x, y), app(lt, x, y), app(notOp(), app(le, y, x)))
}

func (th *Theory) real() {
	rs, in, nat, pos := sorts.Real(), sorts.Int(), sorts.Nat(), sorts.Pos()
	creal := th.constructor("@cReal", arrow(rs, in, pos))
	int2real := th.mapping("Int2Real", arrow(rs, in))
	nat2real := th.mapping("Nat2Real", arrow(rs, nat))
	pos2real := th.mapping("Pos2Real", arrow(rs, pos))
	neg := th.mapping("-", arrow(rs, rs))
	minus := th.mapping("-", arrow(rs, rs, rs))
	plus := th.mapping("+", arrow(rs, rs, rs))
	times := th.mapping("*", arrow(rs, rs, rs))
	th.mapping("/", arrow(rs, rs, rs))
	floor := th.mapping("floor", arrow(in, rs))
	ceil := th.mapping("ceil", arrow(in, rs))
	th.mapping("round", arrow(in, rs))
	lt, le := th.ordering(rs)

	n := v("n", nat)
	p, q := v("p", pos), v("q", pos)
	x, y := v("x", in), v("y", in)
	r, s := v("r", rs), v("s", rs)
	intTimes := binary("*", in)

	th.eq(vars(x), app(int2real, x), app(creal, x, c1()))
	th.eq(vars(n), app(nat2real, n), app(creal, app(cInt(), n), c1()))
	th.eq(vars(p), app(pos2real, p), app(creal, app(cInt(), app(cNat(), p)), c1()))

	th.eq(vars(x, p), app(neg, app(creal, x, p)), app(creal, app(negInt(), x), p))
	th.eq(vars(r, s), app(minus, r, s), app(plus, r, app(neg, s)))
	th.eq(vars(x, y, p, q), app(plus, app(creal, x, p), app(creal, y, q)),
		app(creal,
			app(binary("+", in), app(intTimes, x, app(pos2Int(), q)), app(intTimes, y, app(pos2Int(), p))),
			app(binary("*", pos), p, q)))
	th.eq(vars(x, y, p, q), app(times, app(creal, x, p), app(creal, y, q)),
		app(creal, app(intTimes, x, y), app(binary("*", pos), p, q)))

	th.eq(vars(x, y, p, q), app(le, app(creal, x, p), app(creal, y, q)),
		app(relation("<=", in), app(intTimes, x, app(pos2Int(), q)), app(intTimes, y, app(pos2Int(), p))))
	th.eq(vars(r, s), app(lt, r, s), app(notOp(), app(le, s, r)))

	th.eq(vars(x), app(floor, app(creal, x, c1())), x)
	th.eq(vars(r), app(ceil, r), app(negInt(), app(floor, app(neg, r))))
}
