package builtin

import (
	"github.com/foundry-zero/dataspec/internal/data"
	"github.com/foundry-zero/dataspec/internal/sorts"
)

// list adds the List theory for the canonical list sort ls over elem.
func (th *Theory) list(ls, elem sorts.Sort) {
	nat := sorts.Nat()
	empty := th.constructor("[]", ls)
	cons := th.constructor("|>", arrow(ls, elem, ls))
	in := th.mapping("in", arrow(sorts.Bool(), elem, ls))
	count := th.mapping("#", arrow(nat, ls))
	snoc := th.mapping("<|", arrow(ls, ls, elem))
	concat := th.mapping("++", arrow(ls, ls, ls))
	at := th.mapping(".", arrow(elem, ls, nat))
	head := th.mapping("head", arrow(elem, ls))
	tail := th.mapping("tail", arrow(ls, ls))
	rhead := th.mapping("rhead", arrow(elem, ls))
	rtail := th.mapping("rtail", arrow(ls, ls))

	d, e := v("d", elem), v("e", elem)
	s, t := v("s", ls), v("t", ls)
	p := v("p", sorts.Pos())
	eq := equalTo(ls)

	th.eq(vars(d, s), app(eq, empty, app(cons, d, s)), falseExpr())
	th.eq(vars(d, s), app(eq, app(cons, d, s), empty), falseExpr())
	th.eq(vars(d, e, s, t), app(eq, app(cons, d, s), app(cons, e, t)),
		app(andOp(), app(equalTo(elem), d, e), app(eq, s, t)))

	th.eq(vars(d), app(in, d, empty), falseExpr())
	th.eq(vars(d, e, s), app(in, d, app(cons, e, s)), app(orOp(), app(equalTo(elem), d, e), app(in, d, s)))

	th.eq(nil, app(count, empty), c0())
	th.eq(vars(d, s), app(count, app(cons, d, s)), app(cNat(), app(succNat(), app(count, s))))

	th.eq(vars(d), app(snoc, empty, d), app(cons, d, empty))
	th.eq(vars(d, e, s), app(snoc, app(cons, e, s), d), app(cons, e, app(snoc, s, d)))

	th.eq(vars(s), app(concat, empty, s), s)
	th.eq(vars(s), app(concat, s, empty), s)
	th.eq(vars(d, s, t), app(concat, app(cons, d, s), t), app(cons, d, app(concat, s, t)))

	th.eq(vars(d, s), app(at, app(cons, d, s), c0()), d)
	th.eq(vars(d, s, p), app(at, app(cons, d, s), app(cNat(), p)), app(at, s, app(predPos(), p)))

	th.eq(vars(d, s), app(head, app(cons, d, s)), d)
	th.eq(vars(d, s), app(tail, app(cons, d, s)), s)
	th.eq(vars(d), app(rhead, app(cons, d, empty)), d)
	th.eq(vars(d, e, s), app(rhead, app(cons, d, app(cons, e, s))), app(rhead, app(cons, e, s)))
	th.eq(vars(d), app(rtail, app(cons, d, empty)), empty)
	th.eq(vars(d, e, s), app(rtail, app(cons, d, app(cons, e, s))), app(cons, d, app(rtail, app(cons, e, s))))
}

// set adds the Set theory for the canonical set sort ss over elem. Sets
// are built from {} by @set_cons without duplicates.
func (th *Theory) set(ss, elem sorts.Sort) {
	empty := th.constructor("{}", ss)
	cons := th.constructor("@set_cons", arrow(ss, elem, ss))
	in := th.mapping("in", arrow(sorts.Bool(), elem, ss))
	union := th.mapping("+", arrow(ss, ss, ss))
	inter := th.mapping("*", arrow(ss, ss, ss))
	diff := th.mapping("-", arrow(ss, ss, ss))
	subset := th.mapping("<=", arrow(sorts.Bool(), ss, ss))
	count := th.mapping("#", arrow(sorts.Nat(), ss))

	d, e := v("d", elem), v("e", elem)
	s, t := v("s", ss), v("t", ss)
	ite := ifThenElse(ss)

	th.eq(vars(d), app(in, d, empty), falseExpr())
	th.eq(vars(d, e, s), app(in, d, app(cons, e, s)), app(orOp(), app(equalTo(elem), d, e), app(in, d, s)))

	th.eq(vars(s), app(union, empty, s), s)
	th.eq(vars(s), app(union, s, empty), s)
	th.eq(vars(d, s, t), app(union, app(cons, d, s), t),
		app(ite, app(in, d, t), app(union, s, t), app(cons, d, app(union, s, t))))

	th.eq(vars(s), app(inter, empty, s), empty)
	th.eq(vars(s), app(inter, s, empty), empty)
	th.eq(vars(d, s, t), app(inter, app(cons, d, s), t),
		app(ite, app(in, d, t), app(cons, d, app(inter, s, t)), app(inter, s, t)))

	th.eq(vars(s), app(diff, empty, s), empty)
	th.eq(vars(s), app(diff, s, empty), s)
	th.eq(vars(d, s, t), app(diff, app(cons, d, s), t),
		app(ite, app(in, d, t), app(diff, s, t), app(cons, d, app(diff, s, t))))

	th.eq(vars(s), app(subset, empty, s), trueExpr())
	th.eq(vars(d, s, t), app(subset, app(cons, d, s), t), app(andOp(), app(in, d, t), app(subset, s, t)))

	th.eq(nil, app(count, empty), c0())
	th.eq(vars(d, s), app(count, app(cons, d, s)), app(cNat(), app(succNat(), app(count, s))))
}

// bag adds the Bag theory for the canonical bag sort bs over elem. A bag
// is {:} or @bag_cons(d, p, b), holding p copies of d in front of b. ss is the
// canonical set sort over elem.
func (th *Theory) bag(bs, elem, ss sorts.Sort) {
	nat, pos := sorts.Nat(), sorts.Pos()
	empty := th.constructor("{:}", bs)
	cons := th.constructor("@bag_cons", arrow(bs, elem, pos, bs))
	count := th.mapping("count", arrow(nat, elem, bs))
	in := th.mapping("in", arrow(sorts.Bool(), elem, bs))
	join := th.mapping("+", arrow(bs, bs, bs))
	diff := th.mapping("-", arrow(bs, bs, bs))
	inter := th.mapping("*", arrow(bs, bs, bs))
	size := th.mapping("#", arrow(nat, bs))
	bag2set := th.mapping("Bag2Set", arrow(ss, bs))
	set2bag := th.mapping("Set2Bag", arrow(bs, ss))

	d, e := v("d", elem), v("e", elem)
	b, c := v("b", bs), v("c", bs)
	p := v("p", pos)
	s := v("s", ss)
	natPlus := binary("+", nat)
	setEmpty := data.NewSymbol("{}", ss)
	setCons := data.NewSymbol("@set_cons", arrow(ss, elem, ss))

	th.eq(vars(d), app(count, d, empty), c0())
	th.eq(vars(d, e, p, b), app(count, d, app(cons, e, p, b)),
		app(ifThenElse(nat), app(equalTo(elem), d, e),
			app(natPlus, app(cNat(), p), app(count, d, b)),
			app(count, d, b)))
	th.eq(vars(d, b), app(in, d, b), app(relation("<", nat), c0(), app(count, d, b)))

	th.eq(vars(b), app(join, empty, b), b)
	th.eq(vars(b), app(join, b, empty), b)
	th.eq(vars(d, p, b, c), app(join, app(cons, d, p, b), c), app(cons, d, p, app(join, b, c)))

	th.eq(vars(b), app(diff, empty, b), empty)
	th.eq(vars(b), app(diff, b, empty), b)
	th.eq(vars(b), app(inter, empty, b), empty)
	th.eq(vars(b), app(inter, b, empty), empty)

	th.eq(nil, app(size, empty), c0())
	th.eq(vars(d, p, b), app(size, app(cons, d, p, b)), app(natPlus, app(cNat(), p), app(size, b)))

	th.eq(nil, app(bag2set, empty), setEmpty)
	th.eq(vars(d, p, b), app(bag2set, app(cons, d, p, b)), app(setCons, d, app(bag2set, b)))
	th.eq(nil, app(set2bag, setEmpty), empty)
	th.eq(vars(d, s), app(set2bag, app(setCons, d, s)), app(cons, d, c1(), app(set2bag, s)))
}
